// Package dnd5e rates encounters with the DnD 5e challenge rating rules:
// each creature's CR converts to XP, the party's per-level budgets form the
// Easy/Medium/Hard/Deadly bands, and the encounter takes the highest band
// its total XP reaches.
package dnd5e

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/encounter-tracker/internal/core"
	"github.com/vovakirdan/encounter-tracker/internal/registry"
)

// ID is the registry identifier for this system.
const ID = "dnd5e"

var difficulties = []string{"Easy", "Medium", "Hard", "Deadly"}

// System implements registry.RpgSystem for DnD 5e.
type System struct {
	lookup core.Lookup
}

// New creates a DnD 5e system reading creature stats through lookup.
func New(lookup core.Lookup) *System {
	return &System{lookup: lookup}
}

// ID returns the system identifier.
func (s *System) ID() string { return ID }

// Title returns the display name.
func (s *System) Title() string { return "DnD 5e" }

// SystemDifficulties returns the band names in display order.
func (s *System) SystemDifficulties() []string {
	return append([]string(nil), difficulties...)
}

// CreatureDifficulty returns the creature's XP value. The party is ignored.
func (s *System) CreatureDifficulty(c *core.Creature, _ core.PlayerLevels) core.CreatureDifficulty {
	if s.lookup == nil {
		return core.Unrated(core.ReasonNotFound)
	}
	raw, ok := s.lookup(c, core.ExtractCR)
	if !ok {
		return core.Unrated(core.ReasonNotFound)
	}

	xp, ok := xpForCR(raw)
	if !ok {
		return core.Unrated(core.ReasonInvalid)
	}
	return core.Rated(float64(xp))
}

// xpForCR converts a raw challenge rating to XP.
func xpForCR(raw string) (int, bool) {
	cr := core.ConvertFraction(raw)
	if cr == 0 && !isZero(raw) {
		return 0, false
	}
	xp, ok := xpByCR[cr]
	return xp, ok
}

// isZero distinguishes a literal CR 0 from an unparseable rating.
func isZero(raw string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return err == nil && v == 0
}

// DifficultyThresholds sums the per-level budgets across the party.
// Levels outside 1..20 are clamped into the table.
func (s *System) DifficultyThresholds(levels core.PlayerLevels) []core.DifficultyThreshold {
	var budget [4]int
	for _, lv := range levels {
		row := levelBudgets[clampLevel(lv)]
		for i := range budget {
			budget[i] += row[i]
		}
	}

	thresholds := make([]core.DifficultyThreshold, len(difficulties))
	for i, name := range difficulties {
		thresholds[i] = core.DifficultyThreshold{Name: name, MinValue: float64(budget[i])}
	}
	return thresholds
}

func clampLevel(lv int) int {
	if lv < minLevel {
		return minLevel
	}
	if lv > maxLevel {
		return maxLevel
	}
	return lv
}

// EncounterDifficulty totals XP over the roster and picks the highest band
// reached. The encounter multiplier is reported as Adjusted XP but does not
// move the band.
func (s *System) EncounterDifficulty(counts core.CreatureCounts, levels core.PlayerLevels) core.EncounterRating {
	total := 0.0
	monsters := 0
	for c, n := range counts {
		if n <= 0 {
			continue
		}
		d := s.CreatureDifficulty(c, levels)
		if !d.Valid() {
			continue
		}
		total += d.Value * float64(n)
		monsters += n
	}

	thresholds := s.DifficultyThresholds(levels)
	name := core.HighestBand(thresholds, total, difficulties[0])
	mult := encounterMultiplier(monsters, levels.Len())
	adjusted := total * mult

	var b strings.Builder
	fmt.Fprintf(&b, "Encounter is %s\n", name)
	fmt.Fprintf(&b, "Total XP: %s\n", humanize.Commaf(total))
	fmt.Fprintf(&b, "Adjusted XP: %s (x%s)\n", humanize.Commaf(adjusted), strconv.FormatFloat(mult, 'f', -1, 64))
	b.WriteString("Threshold")
	for _, t := range thresholds {
		fmt.Fprintf(&b, "\n%s: %s", t.Name, humanize.Commaf(t.MinValue))
	}

	return core.EncounterRating{
		DisplayName: name,
		Summary:     b.String(),
		StyleClass:  strings.ToLower(name),
		TotalValue:  total,
		ValueLabel:  "Total XP",
		ExtraMetrics: []core.Metric{
			{Label: "Adjusted XP", Value: adjusted},
		},
	}
}

// AdditionalCreatureDifficultyStats has nothing to add for DnD 5e.
func (s *System) AdditionalCreatureDifficultyStats(*core.Creature, core.PlayerLevels) []string {
	return nil
}

// FormatDifficultyValue renders XP with thousands separators.
func (s *System) FormatDifficultyValue(value float64, withUnits bool) string {
	if value == 0 {
		return core.DefaultUndefined
	}
	out := humanize.Commaf(value)
	if withUnits {
		out += " XP"
	}
	return out
}

func init() {
	registry.Register(ID, func(lookup core.Lookup) registry.RpgSystem {
		return New(lookup)
	})
}

var _ registry.RpgSystem = (*System)(nil)
