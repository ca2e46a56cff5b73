package pf2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/encounter-tracker/internal/bestiary"
	"github.com/vovakirdan/encounter-tracker/internal/core"
	"github.com/vovakirdan/encounter-tracker/internal/registry"
)

func newTestSystem() *System {
	b := bestiary.New(
		core.StatBlock{Name: "Goblin Warrior", Level: "Creature -1"},
		core.StatBlock{Name: "Orc Brute", Level: "Creature 5"},
		core.StatBlock{Name: "Troll", Level: "9"},
		core.StatBlock{Name: "Dragon", Level: "10"},
		core.StatBlock{Name: "Gnat", Level: "0"},
		core.StatBlock{Name: "Blob", Level: "Creature ?"},
	)
	return New(b.Lookup)
}

func TestCreatureDifficulty(t *testing.T) {
	s := newTestSystem()
	party := core.PlayerLevels{5}

	tests := []struct {
		name     string
		creature *core.Creature
		expected core.CreatureDifficulty
	}{
		{name: "same level", creature: &core.Creature{Name: "Orc Brute"}, expected: core.Rated(40)},
		{name: "plus four", creature: &core.Creature{Name: "Troll"}, expected: core.Rated(160)},
		{name: "plus five", creature: &core.Creature{Name: "Dragon"}, expected: core.Unrated(core.ReasonTooHard)},
		{name: "minus four", creature: &core.Creature{Name: "Orc Brute", Level: "1"}, expected: core.Rated(10)},
		{name: "minus five", creature: &core.Creature{Name: "Gnat"}, expected: core.Unrated(core.ReasonTooEasy)},
		{name: "far below", creature: &core.Creature{Name: "Goblin Warrior"}, expected: core.Unrated(core.ReasonTooEasy)},
		{name: "missing", creature: &core.Creature{Name: "Lich"}, expected: core.Unrated(core.ReasonNotFound)},
		{name: "unparseable level", creature: &core.Creature{Name: "Blob"}, expected: core.Unrated(core.ReasonInvalid)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := s.CreatureDifficulty(tt.creature, party)
			assert.Equal(t, tt.expected, d)
			assert.GreaterOrEqual(t, d.Value, 0.0)
			if !d.Valid() {
				assert.Zero(t, d.Value)
			}
		})
	}
}

func TestPartyLevelRounding(t *testing.T) {
	assert.Equal(t, 0, partyLevel(nil))
	assert.Equal(t, 4, partyLevel(core.PlayerLevels{4, 4, 5}))
	assert.Equal(t, 5, partyLevel(core.PlayerLevels{4, 5}))
	assert.Equal(t, 5, partyLevel(core.PlayerLevels{5, 5, 5, 6}))

	// Empty party compares against level 0
	s := newTestSystem()
	assert.Equal(t, core.Rated(40), s.CreatureDifficulty(&core.Creature{Name: "Gnat"}, nil))
}

func TestXPTableSortedOnce(t *testing.T) {
	for i := 1; i < len(creatureXP); i++ {
		require.Less(t, creatureXP[i-1].diff, creatureXP[i].diff)
	}
	assert.Equal(t, core.Rated(160), xpForDifference(4))
	assert.Equal(t, core.Unrated(core.ReasonTooHard), xpForDifference(5))
	assert.Equal(t, core.Unrated(core.ReasonTooEasy), xpForDifference(-5))
}

func TestDifficultyThresholds(t *testing.T) {
	s := newTestSystem()

	thresholds := s.DifficultyThresholds(core.PlayerLevels{3, 3, 3, 3})
	assert.Equal(t, []core.DifficultyThreshold{
		{Name: "Trivial", MinValue: 40},
		{Name: "Low", MinValue: 60},
		{Name: "Moderate", MinValue: 80},
		{Name: "Severe", MinValue: 120},
		{Name: "Extreme", MinValue: 160},
	}, thresholds)

	// 3 players: 0.75 * 60 = 45, 1.5 * 60 = 90
	odd := s.DifficultyThresholds(core.PlayerLevels{1, 1, 1})
	assert.Equal(t, 45.0, odd[1].MinValue)
	assert.Equal(t, 90.0, odd[3].MinValue)

	for size := 1; size <= 8; size++ {
		th := s.DifficultyThresholds(make(core.PlayerLevels, size))
		for i := 1; i < len(th); i++ {
			assert.Less(t, th[i-1].MinValue, th[i].MinValue, "party size %d", size)
		}
	}

	assert.Equal(t, []string{"Trivial", "Low", "Moderate", "Severe", "Extreme"}, s.SystemDifficulties())
}

func TestEncounterDifficulty(t *testing.T) {
	s := newTestSystem()
	party := core.PlayerLevels{5, 5, 5, 5}

	t.Run("empty roster", func(t *testing.T) {
		r := s.EncounterDifficulty(core.CreatureCounts{}, party)
		assert.Equal(t, "Trivial", r.DisplayName)
		assert.Equal(t, "trivial", r.StyleClass)
		assert.Equal(t, 0.0, r.TotalValue)
	})

	t.Run("empty party and roster", func(t *testing.T) {
		r := s.EncounterDifficulty(nil, nil)
		assert.Equal(t, 0.0, r.TotalValue)
		assert.Equal(t, "Trivial", r.DisplayName)
		assert.Equal(t, "trivial", r.StyleClass)
	})

	t.Run("empty party rates lowest band", func(t *testing.T) {
		counts := core.CreatureCounts{&core.Creature{Name: "Gnat"}: 3}
		r := s.EncounterDifficulty(counts, nil)
		assert.Equal(t, 120.0, r.TotalValue)
		assert.Equal(t, "Trivial", r.DisplayName)
		assert.Equal(t, "trivial", r.StyleClass)
	})

	t.Run("unratable skipped", func(t *testing.T) {
		counts := core.CreatureCounts{
			&core.Creature{Name: "Lich"}:      1,
			&core.Creature{Name: "Orc Brute"}: 3,
		}
		r := s.EncounterDifficulty(counts, party)
		assert.Equal(t, 120.0, r.TotalValue)
		assert.Equal(t, "Severe", r.DisplayName)
		assert.Equal(t, "hard", r.StyleClass)
		assert.Equal(t, "Total XP", r.ValueLabel)
		assert.Equal(t, []core.Metric{{Label: "Total XP", Value: 120}}, r.ExtraMetrics)
		assert.Contains(t, r.Summary, "Encounter is Severe")
		assert.Contains(t, r.Summary, "Extreme: 160")
	})

	t.Run("extreme", func(t *testing.T) {
		counts := core.CreatureCounts{&core.Creature{Name: "Troll"}: 1}
		r := s.EncounterDifficulty(counts, party)
		assert.Equal(t, "Extreme", r.DisplayName)
		assert.Equal(t, "deadly", r.StyleClass)
	})
}

func TestFormatDifficultyValue(t *testing.T) {
	s := newTestSystem()
	assert.Equal(t, core.DefaultUndefined, s.FormatDifficultyValue(0, false))
	assert.Equal(t, "160 XP", s.FormatDifficultyValue(160, true))
	assert.Nil(t, s.AdditionalCreatureDifficultyStats(&core.Creature{Name: "Troll"}, nil))
}

func TestRegistered(t *testing.T) {
	sys, err := registry.Create(ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pathfinder 2e", sys.Title())
}
