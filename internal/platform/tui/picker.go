package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/encounter-tracker/internal/core"
	"github.com/vovakirdan/encounter-tracker/internal/encounter"
	"github.com/vovakirdan/encounter-tracker/internal/registry"
	"github.com/vovakirdan/encounter-tracker/internal/storage"
)

// Picker layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the system list beside the report
	sidebarWidth       = 24 // Width of system list sidebar
)

// SessionOptions is everything a picker session needs to rate an encounter.
type SessionOptions struct {
	Encounter     *encounter.Encounter
	Party         core.PlayerLevels // Overrides the encounter's party when non-empty
	Lookup        core.Lookup
	Store         *storage.Store // Optional; saving and history are disabled without it
	Logger        *log.Logger
	InitialSystem string
	Width         int
	Height        int
}

// SystemPickerModel is the Bubble Tea model that rates one encounter under
// each registered system, re-rating whenever the selection moves.
type SystemPickerModel struct {
	systems      []registry.SystemInfo
	cursor       int
	opts         SessionOptions
	report       encounter.Report
	err          error
	status       string
	keys         PickerKeyMap
	help         help.Model
	width        int
	height       int
	quitting     bool
	wantsHistory bool
	saved        int
}

// NewSystemPickerModel creates a picker positioned on opts.InitialSystem,
// or the first registered system when that is unknown.
func NewSystemPickerModel(opts SessionOptions) SystemPickerModel {
	if opts.Encounter == nil {
		opts.Encounter = &encounter.Encounter{}
	}

	m := SystemPickerModel{
		systems: registry.List(),
		opts:    opts,
		keys:    DefaultPickerKeyMap(),
		help:    help.New(),
		width:   opts.Width,
		height:  opts.Height,
	}
	for i, s := range m.systems {
		if s.ID == opts.InitialSystem {
			m.cursor = i
			break
		}
	}
	m.rate()
	return m
}

// rate rates the encounter under the selected system.
func (m *SystemPickerModel) rate() {
	if len(m.systems) == 0 {
		m.err = errors.New("no rule systems registered")
		return
	}

	sys, err := registry.Create(m.systems[m.cursor].ID, m.opts.Lookup)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.report = encounter.NewRater(sys, m.opts.Logger).Rate(m.opts.Encounter, m.opts.Party)
}

// Init initializes the picker.
func (m SystemPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m SystemPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for system navigation.
func (m SystemPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.status = ""
			m.rate()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.systems)-1 {
			m.cursor++
			m.status = ""
			m.rate()
		}

	case key.Matches(msg, m.keys.Save):
		m.save()

	case key.Matches(msg, m.keys.History):
		if m.opts.Store == nil {
			m.status = "History is disabled: no database"
			return m, nil
		}
		m.wantsHistory = true
	}

	return m, nil
}

func (m *SystemPickerModel) save() {
	if m.err != nil {
		return
	}
	if m.opts.Store == nil {
		m.status = "Not saved: no database"
		return
	}
	if _, err := m.opts.Store.SaveRating(storage.RatingFromReport(m.report)); err != nil {
		m.status = "Save failed: " + err.Error()
		return
	}
	m.saved++
	m.status = fmt.Sprintf("Saved %s rating", m.report.SystemTitle)
}

// View renders the picker.
func (m SystemPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "ENCOUNTER DIFFICULTY"
	if m.opts.Encounter.Name != "" {
		title = fmt.Sprintf("ENCOUNTER DIFFICULTY - %s", m.opts.Encounter.Name)
	}
	b.WriteString(headerStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	var body string
	if m.err != nil {
		body = dimStyle.Render(m.err.Error())
	} else {
		body = RenderReport(m.report, m.reportWidth())
	}

	if m.width >= minWidthForSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body))
	} else {
		b.WriteString(m.renderTabs())
		b.WriteString("\n\n")
		b.WriteString(body)
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m SystemPickerModel) reportWidth() int {
	if m.width >= minWidthForSidebar {
		return m.width - sidebarWidth - 6
	}
	return m.width
}

// renderSidebar renders the system list for wide terminals.
func (m SystemPickerModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Systems\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.systems {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + s.Title))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTabs renders the system list on one line for narrow terminals.
func (m SystemPickerModel) renderTabs() string {
	if len(m.systems) == 0 {
		return ""
	}
	return centerText(fmt.Sprintf("< %s >", m.systems[m.cursor].Title), m.width)
}

// Report returns the rating for the selected system.
func (m SystemPickerModel) Report() encounter.Report {
	return m.report
}

// Selected returns the selected system ID, or "" when none is registered.
func (m SystemPickerModel) Selected() string {
	if len(m.systems) == 0 {
		return ""
	}
	return m.systems[m.cursor].ID
}

// Saved returns how many ratings were saved during the session.
func (m SystemPickerModel) Saved() int {
	return m.saved
}

// IsQuitting returns true if user requested to quit.
func (m SystemPickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user asked for the rating history.
func (m SystemPickerModel) WantsHistory() bool {
	return m.wantsHistory
}
