// Package lazygm implements the Lazy GM's simplified DnD 5e benchmark: an
// encounter is Deadly when the summed challenge ratings exceed a fraction of
// the party's total levels, and Not Deadly otherwise.
//
// The system keeps a private DnD 5e instance purely to report XP alongside
// its own CR-based verdict; it does not use that system's bands.
package lazygm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/encounter-tracker/internal/core"
	"github.com/vovakirdan/encounter-tracker/internal/registry"
	"github.com/vovakirdan/encounter-tracker/internal/systems/dnd5e"
)

// ID is the registry identifier for this system.
const ID = "dnd5e-lazygm"

const (
	bandNotDeadly = "Not Deadly"
	bandDeadly    = "Deadly"
)

// System implements registry.RpgSystem for the Lazy GM benchmark.
type System struct {
	lookup core.Lookup
	xp     *dnd5e.System
}

// New creates a Lazy GM system reading creature stats through lookup.
func New(lookup core.Lookup) *System {
	return &System{
		lookup: lookup,
		xp:     dnd5e.New(lookup),
	}
}

// ID returns the system identifier.
func (s *System) ID() string { return ID }

// Title returns the display name.
func (s *System) Title() string { return "DnD 5e Lazy GM" }

// SystemDifficulties returns the two bands.
func (s *System) SystemDifficulties() []string {
	return []string{bandNotDeadly, bandDeadly}
}

// CreatureDifficulty returns the creature's numeric challenge rating.
func (s *System) CreatureDifficulty(c *core.Creature, _ core.PlayerLevels) core.CreatureDifficulty {
	if s.lookup == nil {
		return core.Unrated(core.ReasonNotFound)
	}
	raw, ok := s.lookup(c, core.ExtractCR)
	if !ok {
		return core.Unrated(core.ReasonNotFound)
	}

	cr := core.ConvertFraction(raw)
	if cr == 0 {
		return core.Unrated(core.ReasonInvalid)
	}
	return core.Rated(cr)
}

// AdditionalCreatureDifficultyStats reports the creature's DnD 5e XP.
func (s *System) AdditionalCreatureDifficultyStats(c *core.Creature, levels core.PlayerLevels) []string {
	d := s.xp.CreatureDifficulty(c, levels)
	return []string{s.xp.FormatDifficultyValue(d.Contribution(), true)}
}

// deadlyThreshold is half the party's total levels once the average level
// passes 4, and a quarter of it before that.
func deadlyThreshold(levels core.PlayerLevels) float64 {
	total := float64(levels.Total())
	if levels.Average() > 4 {
		return total / 2
	}
	return total / 4
}

// DifficultyThresholds returns Not Deadly at 0 and Deadly just above the
// benchmark, since a sum equal to the benchmark is still Not Deadly.
func (s *System) DifficultyThresholds(levels core.PlayerLevels) []core.DifficultyThreshold {
	return []core.DifficultyThreshold{
		{Name: bandNotDeadly, MinValue: 0},
		{Name: bandDeadly, MinValue: math.Nextafter(deadlyThreshold(levels), math.Inf(1))},
	}
}

// EncounterDifficulty sums challenge ratings over the roster. The encounter
// is Deadly only when the sum strictly exceeds the benchmark.
func (s *System) EncounterDifficulty(counts core.CreatureCounts, levels core.PlayerLevels) core.EncounterRating {
	crSum := 0.0
	xp := 0.0
	for c, n := range counts {
		if n <= 0 {
			continue
		}
		crSum += s.CreatureDifficulty(c, levels).Contribution() * float64(n)
		xp += s.xp.CreatureDifficulty(c, levels).Contribution() * float64(n)
	}

	deadly := deadlyThreshold(levels)
	name := core.HighestBand(s.DifficultyThresholds(levels), crSum, bandNotDeadly)
	style := "easy"
	if name == bandDeadly {
		style = "deadly"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Encounter is %s\n", name)
	fmt.Fprintf(&b, "Total XP: %s\n", formatNumber(xp))
	fmt.Fprintf(&b, "Total CR: %s\n", formatNumber(crSum))
	fmt.Fprintf(&b, "Total levels: %d\n", levels.Total())
	fmt.Fprintf(&b, "Deadly Threshold: above %s", formatNumber(deadly))

	return core.EncounterRating{
		DisplayName: name,
		Summary:     b.String(),
		StyleClass:  style,
		TotalValue:  crSum,
		ValueLabel:  "Total CR",
		ExtraMetrics: []core.Metric{
			{Label: "Total XP", Value: xp},
		},
	}
}

// FormatDifficultyValue renders a challenge rating.
func (s *System) FormatDifficultyValue(value float64, withUnits bool) string {
	if value == 0 {
		return core.DefaultUndefined
	}
	out := core.CRToString(value)
	if withUnits {
		out += " CR"
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func init() {
	registry.Register(ID, func(lookup core.Lookup) registry.RpgSystem {
		return New(lookup)
	})
}

var _ registry.RpgSystem = (*System)(nil)
