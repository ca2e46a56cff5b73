// Package pf2e rates encounters with the Pathfinder 2e XP budget rules:
// each creature earns XP from its level relative to the party level, and the
// encounter budget scales with party size.
package pf2e

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vovakirdan/encounter-tracker/internal/core"
	"github.com/vovakirdan/encounter-tracker/internal/registry"
)

// ID is the registry identifier for this system.
const ID = "pf2e"

// levelXP is one row of the creature XP table.
type levelXP struct {
	diff int
	xp   int
}

// creatureXP maps creature level minus party level to XP. Sorted by diff
// once at init; lookups binary search it.
var creatureXP = sortedTable([]levelXP{
	{-4, 10},
	{-3, 15},
	{-2, 20},
	{-1, 30},
	{0, 40},
	{1, 60},
	{2, 80},
	{3, 120},
	{4, 160},
})

func sortedTable(rows []levelXP) []levelXP {
	sort.Slice(rows, func(i, j int) bool { return rows[i].diff < rows[j].diff })
	return rows
}

// budgetShares are the encounter budget fractions per band, in the order
// the bands are listed.
var budgetShares = []struct {
	name  string
	share float64
}{
	{"trivial", 0.5},
	{"low", 0.75},
	{"moderate", 1},
	{"severe", 1.5},
	{"extreme", 2},
}

// styleClasses translates band names onto the cross-system style tags.
var styleClasses = map[string]string{
	"trivial":  "trivial",
	"low":      "easy",
	"moderate": "medium",
	"severe":   "hard",
	"extreme":  "deadly",
}

// title capitalises a band name. Casers keep state, so each call gets its own.
func title(name string) string {
	return cases.Title(language.English).String(name)
}

// System implements registry.RpgSystem for Pathfinder 2e.
type System struct {
	lookup core.Lookup
}

// New creates a Pathfinder 2e system reading creature stats through lookup.
func New(lookup core.Lookup) *System {
	return &System{lookup: lookup}
}

// ID returns the system identifier.
func (s *System) ID() string { return ID }

// Title returns the display name.
func (s *System) Title() string { return "Pathfinder 2e" }

// SystemDifficulties returns the band names in display order.
func (s *System) SystemDifficulties() []string {
	names := make([]string, len(budgetShares))
	for i, b := range budgetShares {
		names[i] = title(b.name)
	}
	return names
}

// partyLevel is the average party level rounded half up, 0 for no party.
func partyLevel(levels core.PlayerLevels) int {
	return int(math.Floor(levels.Average() + 0.5))
}

// parseLevel takes the last space-separated token, so both "5" and
// "Creature 5" parse.
func parseLevel(raw string) (int, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, false
	}
	lvl, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, false
	}
	return lvl, true
}

// CreatureDifficulty returns the creature's XP against the party level.
func (s *System) CreatureDifficulty(c *core.Creature, levels core.PlayerLevels) core.CreatureDifficulty {
	if s.lookup == nil {
		return core.Unrated(core.ReasonNotFound)
	}
	raw, ok := s.lookup(c, core.ExtractLevel)
	if !ok {
		return core.Unrated(core.ReasonNotFound)
	}
	lvl, ok := parseLevel(raw)
	if !ok {
		return core.Unrated(core.ReasonInvalid)
	}

	return xpForDifference(lvl - partyLevel(levels))
}

func xpForDifference(diff int) core.CreatureDifficulty {
	if diff < creatureXP[0].diff {
		return core.Unrated(core.ReasonTooEasy)
	}
	if diff > creatureXP[len(creatureXP)-1].diff {
		return core.Unrated(core.ReasonTooHard)
	}

	i := sort.Search(len(creatureXP), func(i int) bool { return creatureXP[i].diff >= diff })
	if i < len(creatureXP) && creatureXP[i].diff == diff {
		return core.Rated(float64(creatureXP[i].xp))
	}
	return core.Unrated(core.ReasonInvalid)
}

// DifficultyThresholds scales a budget of 20 XP per party member.
func (s *System) DifficultyThresholds(levels core.PlayerLevels) []core.DifficultyThreshold {
	budget := float64(levels.Len() * 20)

	thresholds := make([]core.DifficultyThreshold, len(budgetShares))
	for i, b := range budgetShares {
		thresholds[i] = core.DifficultyThreshold{
			Name:     title(b.name),
			MinValue: math.Floor(budget * b.share),
		}
	}
	sort.SliceStable(thresholds, func(i, j int) bool {
		return thresholds[i].MinValue < thresholds[j].MinValue
	})
	return thresholds
}

// EncounterDifficulty totals XP over the roster and picks the highest band
// met, Trivial when none is.
func (s *System) EncounterDifficulty(counts core.CreatureCounts, levels core.PlayerLevels) core.EncounterRating {
	total := 0.0
	for c, n := range counts {
		if n <= 0 {
			continue
		}
		total += s.CreatureDifficulty(c, levels).Contribution() * float64(n)
	}

	thresholds := s.DifficultyThresholds(levels)
	name := core.HighestBand(thresholds, total, title(budgetShares[0].name))

	style, ok := styleClasses[strings.ToLower(name)]
	if !ok {
		style = "trivial"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Encounter is %s\n", name)
	fmt.Fprintf(&b, "Total XP: %s\n", formatNumber(total))
	b.WriteString("Threshold")
	for _, t := range thresholds {
		fmt.Fprintf(&b, "\n%s: %s", t.Name, formatNumber(t.MinValue))
	}

	return core.EncounterRating{
		DisplayName: name,
		Summary:     b.String(),
		StyleClass:  style,
		TotalValue:  total,
		ValueLabel:  "Total XP",
		ExtraMetrics: []core.Metric{
			{Label: "Total XP", Value: total},
		},
	}
}

// AdditionalCreatureDifficultyStats has nothing to add for Pathfinder 2e.
func (s *System) AdditionalCreatureDifficultyStats(*core.Creature, core.PlayerLevels) []string {
	return nil
}

// FormatDifficultyValue renders XP.
func (s *System) FormatDifficultyValue(value float64, withUnits bool) string {
	if value == 0 {
		return core.DefaultUndefined
	}
	out := formatNumber(value)
	if withUnits {
		out += " XP"
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
