package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/encounter-tracker/internal/registry"
	"github.com/vovakirdan/encounter-tracker/internal/storage"
)

const maxRatings = 100 // Max ratings to load

// allSystems is the history filter that shows every system.
const allSystems = ""

// HistoryModel is the Bubble Tea model for the saved-ratings screen.
type HistoryModel struct {
	filters   []string // allSystems followed by each registered system ID
	filter    int
	store     *storage.Store
	ratings   []storage.Rating
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool

	// standalone quits on back instead of handing control to the picker
	standalone bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	filters := []string{allSystems}
	for _, s := range registry.List() {
		filters = append(filters, s.ID)
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		filters: filters,
		store:   store,
		keys:    DefaultHistoryKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadRatings()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Encounter", Width: 20},
		{Title: "System", Width: 14},
		{Title: "Difficulty", Width: 11},
		{Title: "Value", Width: 12},
		{Title: "When", Width: 14},
	}

	// Give spare width to the encounter name
	if spare := m.width - 4 - 71; spare > 0 {
		columns[0].Width += min(spare, 20)
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRatings loads ratings for the current filter.
func (m *HistoryModel) loadRatings() {
	m.ratings = nil
	if m.store != nil {
		var ratings []storage.Rating
		var err error
		if id := m.filters[m.filter]; id == allSystems {
			ratings, err = m.store.RecentRatings(maxRatings)
		} else {
			ratings, err = m.store.RatingsForSystem(id, maxRatings)
		}
		if err == nil {
			m.ratings = ratings
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current ratings.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.ratings))
	for i, r := range m.ratings {
		name := r.Encounter
		if name == "" {
			name = "(unnamed)"
		}
		rows[i] = table.Row{
			name,
			r.SystemID,
			r.DisplayName,
			humanize.Commaf(r.TotalValue),
			humanize.Time(r.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// RenderRating renders one saved rating as a bordered panel.
func RenderRating(r storage.Rating) string {
	var b strings.Builder
	name := r.Encounter
	if name == "" {
		name = "(unnamed)"
	}
	b.WriteString(headerStyle.Render(name + " - " + r.SystemID))
	b.WriteString("\n\n")
	b.WriteString("Difficulty: " + BandStyle(r.StyleClass).Render(r.DisplayName) + "\n")
	if r.ValueLabel != "" {
		b.WriteString(r.ValueLabel + ": " + humanize.Commaf(r.TotalValue) + "\n")
	}
	b.WriteString("Party: " + formatParty(r.Party) + "\n")
	b.WriteString(dimStyle.Render("Saved " + humanize.Time(r.CreatedAt) + " as " + r.ID))
	return panelStyle.Render(b.String())
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextSystem):
			m.filter = (m.filter + 1) % len(m.filters)
			m.loadRatings()
			return m, nil

		case key.Matches(msg, m.keys.PrevSystem):
			m.filter--
			if m.filter < 0 {
				m.filter = len(m.filters) - 1
			}
			m.loadRatings()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RATING HISTORY - all systems"
	if id := m.filters[m.filter]; id != allSystems {
		title = "RATING HISTORY - " + id
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.ratings) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No ratings saved yet.\nPress enter in the picker to save one.")
	}

	return m.table.View()
}

// Filter returns the system ID the history is filtered to, "" for all.
func (m HistoryModel) Filter() string {
	return m.filters[m.filter]
}

// Rows returns the number of ratings shown.
func (m HistoryModel) Rows() int {
	return len(m.ratings)
}

// IsGoingBack returns true if user wants to go back to the picker.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen on its own.
func RunHistory(store *storage.Store, width, height int) error {
	m := NewHistoryModel(store, width, height)
	m.standalone = true

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
