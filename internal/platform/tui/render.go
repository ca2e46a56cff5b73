package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/encounter-tracker/internal/core"
	"github.com/vovakirdan/encounter-tracker/internal/encounter"
)

// bandStyles maps rating style classes to lipgloss styles.
var bandStyles = map[string]lipgloss.Style{
	"trivial": lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	"easy":    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	"medium":  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	"hard":    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	"deadly":  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// BandStyle returns the style for a rating's style class. Unknown classes
// render unstyled.
func BandStyle(class string) lipgloss.Style {
	if s, ok := bandStyles[class]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// RenderReport renders a rated encounter as a bordered panel. A positive
// width caps the panel width.
func RenderReport(r encounter.Report, width int) string {
	var b strings.Builder

	title := r.SystemTitle
	if r.Encounter != "" {
		title = r.Encounter + " - " + r.SystemTitle
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	band := BandStyle(r.Rating.StyleClass)
	fmt.Fprintf(&b, "Difficulty: %s\n", band.Render(r.Rating.DisplayName))
	if r.Rating.ValueLabel != "" {
		fmt.Fprintf(&b, "%s: %s\n", r.Rating.ValueLabel, r.Formatted)
	}
	for _, m := range r.Rating.ExtraMetrics {
		if m.Label == r.Rating.ValueLabel {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", m.Label, humanize.Commaf(m.Value))
	}
	fmt.Fprintf(&b, "Party: %s\n", formatParty(r.Party))

	if len(r.Creatures) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Creatures"))
		b.WriteString("\n")
		for _, c := range r.Creatures {
			b.WriteString(renderCreature(c))
			b.WriteString("\n")
		}
	}

	if len(r.Thresholds) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Thresholds"))
		for _, t := range r.Thresholds {
			line := fmt.Sprintf("%-12s %s", t.Name, FormatBound(t.MinValue))
			if t.Name == r.Rating.DisplayName {
				line = band.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString("\n")
			b.WriteString(line)
		}
	}

	style := panelStyle
	if width > 4 {
		style = style.MaxWidth(width)
	}
	return style.Render(b.String())
}

// FormatBound renders a threshold bound to two decimals. Exclusive bounds,
// published as the next float above a round number, read "above N".
func FormatBound(v float64) string {
	r := math.Round(v*100) / 100
	if r < v {
		return "above " + humanize.Commaf(r)
	}
	return humanize.Commaf(r)
}

func renderCreature(c encounter.CreatureLine) string {
	line := fmt.Sprintf("%3dx %-20s %s", c.Count, c.Name, c.Formatted)
	if !c.Difficulty.Valid() {
		return dimStyle.Render(line + " (" + c.Difficulty.Reason.String() + ")")
	}
	if len(c.Additional) > 0 {
		line += "  " + strings.Join(c.Additional, ", ")
	}
	return line
}

func formatParty(levels core.PlayerLevels) string {
	if levels.Len() == 0 {
		return "none"
	}
	parts := make([]string, levels.Len())
	for i, lv := range levels {
		parts[i] = strconv.Itoa(lv)
	}
	return fmt.Sprintf("%s (%d players)", strings.Join(parts, ", "), levels.Len())
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
