package dnd5e

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
		core.StatBlock{Name: "Goblin", CR: "1/4"},
		core.StatBlock{Name: "Ogre", CR: "2"},
		core.StatBlock{Name: "Commoner", CR: "0"},
		core.StatBlock{Name: "Mystery", CR: "lots"},
		core.StatBlock{Name: "Demigod", CR: "31"},
		core.StatBlock{Name: "Statless"},
	)
	return New(b.Lookup)
}

func TestCreatureDifficulty(t *testing.T) {
	s := newTestSystem()

	tests := []struct {
		name     string
		creature *core.Creature
		value    float64
		reason   core.NoValueReason
	}{
		{name: "fractional CR", creature: &core.Creature{Name: "Goblin"}, value: 50},
		{name: "whole CR", creature: &core.Creature{Name: "Ogre"}, value: 450},
		{name: "CR zero", creature: &core.Creature{Name: "Commoner"}, value: 10},
		{name: "inline override", creature: &core.Creature{Name: "Goblin", CR: "1"}, value: 200},
		{name: "decimal notation", creature: &core.Creature{Name: "Custom", CR: "0.5"}, value: 100},
		{name: "missing creature", creature: &core.Creature{Name: "Tarrasque"}, reason: core.ReasonNotFound},
		{name: "missing CR", creature: &core.Creature{Name: "Statless"}, reason: core.ReasonNotFound},
		{name: "unconvertible CR", creature: &core.Creature{Name: "Mystery"}, reason: core.ReasonInvalid},
		{name: "CR off the table", creature: &core.Creature{Name: "Demigod"}, reason: core.ReasonInvalid},
		{name: "nil creature", creature: nil, reason: core.ReasonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := s.CreatureDifficulty(tt.creature, nil)
			assert.Equal(t, tt.reason, d.Reason)
			assert.Equal(t, tt.value, d.Value)
			assert.GreaterOrEqual(t, d.Value, 0.0)
		})
	}
}

func TestCreatureDifficultyWithoutLookup(t *testing.T) {
	d := New(nil).CreatureDifficulty(&core.Creature{Name: "Goblin", CR: "1"}, nil)
	assert.Equal(t, core.ReasonNotFound, d.Reason)
}

func TestDifficultyThresholds(t *testing.T) {
	s := newTestSystem()

	thresholds := s.DifficultyThresholds(core.PlayerLevels{5, 5, 5, 5})
	require.Len(t, thresholds, 4)
	assert.Equal(t, []core.DifficultyThreshold{
		{Name: "Easy", MinValue: 1000},
		{Name: "Medium", MinValue: 2000},
		{Name: "Hard", MinValue: 3000},
		{Name: "Deadly", MinValue: 4400},
	}, thresholds)

	// Out-of-range levels are clamped
	clamped := s.DifficultyThresholds(core.PlayerLevels{0, 25})
	assert.Equal(t, float64(25+2800), clamped[0].MinValue)

	for lv := 1; lv <= 20; lv++ {
		th := s.DifficultyThresholds(core.PlayerLevels{lv, lv, lv})
		for i := 1; i < len(th); i++ {
			assert.Less(t, th[i-1].MinValue, th[i].MinValue, "level %d", lv)
		}
	}

	assert.GreaterOrEqual(t, len(s.SystemDifficulties()), 2)
}

func TestEncounterDifficulty(t *testing.T) {
	s := newTestSystem()
	party := core.PlayerLevels{1, 1, 1, 1}

	t.Run("empty roster", func(t *testing.T) {
		r := s.EncounterDifficulty(core.CreatureCounts{}, party)
		assert.Equal(t, 0.0, r.TotalValue)
		assert.Equal(t, "Easy", r.DisplayName)
		assert.Equal(t, "easy", r.StyleClass)
		assert.Equal(t, "Total XP", r.ValueLabel)
	})

	t.Run("empty party and roster", func(t *testing.T) {
		r := s.EncounterDifficulty(core.CreatureCounts{}, nil)
		assert.Equal(t, 0.0, r.TotalValue)
		assert.Equal(t, "Easy", r.DisplayName)
		assert.Equal(t, "easy", r.StyleClass)
	})

	t.Run("empty party rates lowest band", func(t *testing.T) {
		counts := core.CreatureCounts{&core.Creature{Name: "Ogre"}: 2}
		r := s.EncounterDifficulty(counts, nil)
		assert.Equal(t, 900.0, r.TotalValue)
		assert.Equal(t, "Easy", r.DisplayName)
		assert.Equal(t, "easy", r.StyleClass)
	})

	t.Run("unratable creature contributes nothing", func(t *testing.T) {
		counts := core.CreatureCounts{
			&core.Creature{Name: "Tarrasque"}: 1,
			&core.Creature{Name: "Goblin"}:    3,
		}
		r := s.EncounterDifficulty(counts, core.PlayerLevels{1, 1})
		assert.Equal(t, 150.0, r.TotalValue)
		assert.Equal(t, "Hard", r.DisplayName)
	})

	t.Run("deadly with multiplier", func(t *testing.T) {
		counts := core.CreatureCounts{&core.Creature{Name: "Ogre"}: 2}
		r := s.EncounterDifficulty(counts, party)
		assert.Equal(t, 900.0, r.TotalValue)
		assert.Equal(t, "Deadly", r.DisplayName)
		require.Len(t, r.ExtraMetrics, 1)
		assert.Equal(t, core.Metric{Label: "Adjusted XP", Value: 1350}, r.ExtraMetrics[0])
		assert.Contains(t, r.Summary, "Encounter is Deadly")
		assert.Contains(t, r.Summary, "Adjusted XP: 1,350 (x1.5)")
		assert.Contains(t, r.Summary, "Deadly: 400")
	})

	t.Run("idempotent", func(t *testing.T) {
		counts := core.CreatureCounts{
			&core.Creature{Name: "Ogre"}:   1,
			&core.Creature{Name: "Goblin"}: 4,
		}
		assert.Equal(t, s.EncounterDifficulty(counts, party), s.EncounterDifficulty(counts, party))
	})

	t.Run("non-positive counts ignored", func(t *testing.T) {
		counts := core.CreatureCounts{&core.Creature{Name: "Ogre"}: 0}
		assert.Equal(t, 0.0, s.EncounterDifficulty(counts, party).TotalValue)
	})
}

func TestEncounterMultiplier(t *testing.T) {
	tests := []struct {
		monsters, party int
		expected        float64
	}{
		{1, 4, 1},
		{2, 4, 1.5},
		{3, 4, 2},
		{6, 4, 2},
		{7, 4, 2.5},
		{11, 4, 3},
		{15, 4, 4},
		{1, 2, 1.5},
		{15, 2, 5},
		{1, 6, 0.5},
		{3, 6, 1.5},
		{2, 0, 1.5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, encounterMultiplier(tt.monsters, tt.party),
			"monsters=%d party=%d", tt.monsters, tt.party)
	}
}

func TestFormatDifficultyValue(t *testing.T) {
	s := newTestSystem()
	assert.Equal(t, core.DefaultUndefined, s.FormatDifficultyValue(0, true))
	assert.Equal(t, "1,100 XP", s.FormatDifficultyValue(1100, true))
	assert.Equal(t, "450", s.FormatDifficultyValue(450, false))
	assert.Empty(t, s.AdditionalCreatureDifficultyStats(&core.Creature{Name: "Ogre"}, nil))
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))
	sys, err := registry.Create(ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "DnD 5e", sys.Title())
}
