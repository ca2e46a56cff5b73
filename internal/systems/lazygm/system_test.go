package lazygm

import (
	"math"
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
		core.StatBlock{Name: "Troll", CR: "5"},
		core.StatBlock{Name: "Commoner", CR: "0"},
		core.StatBlock{Name: "Mystery", CR: "lots"},
	)
	return New(b.Lookup)
}

func TestDeadlyThreshold(t *testing.T) {
	s := newTestSystem()

	tests := []struct {
		name     string
		levels   core.PlayerLevels
		expected float64
	}{
		{name: "average above 4 halves", levels: core.PlayerLevels{5, 5, 5, 5}, expected: 10},
		{name: "average at most 4 quarters", levels: core.PlayerLevels{3, 3, 3, 3}, expected: 3},
		{name: "average exactly 4", levels: core.PlayerLevels{4, 4}, expected: 2},
		{name: "empty party", levels: nil, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thresholds := s.DifficultyThresholds(tt.levels)
			require.Len(t, thresholds, 2)
			assert.Equal(t, core.DifficultyThreshold{Name: "Not Deadly", MinValue: 0}, thresholds[0])
			assert.Equal(t, "Deadly", thresholds[1].Name)
			assert.Equal(t, math.Nextafter(tt.expected, math.Inf(1)), thresholds[1].MinValue)
			assert.Greater(t, thresholds[1].MinValue, tt.expected)

			// published bounds agree with the verdict at the benchmark
			assert.Equal(t, "Not Deadly", core.HighestBand(thresholds, tt.expected, "Not Deadly"))
			assert.Equal(t, "Deadly", core.HighestBand(thresholds, tt.expected+0.25, "Not Deadly"))
		})
	}

	assert.Equal(t, []string{"Not Deadly", "Deadly"}, s.SystemDifficulties())
}

func TestCreatureDifficulty(t *testing.T) {
	s := newTestSystem()

	assert.Equal(t, core.Rated(0.25), s.CreatureDifficulty(&core.Creature{Name: "Goblin"}, nil))
	assert.Equal(t, core.Rated(2), s.CreatureDifficulty(&core.Creature{Name: "Ogre"}, nil))
	assert.Equal(t, core.Unrated(core.ReasonNotFound), s.CreatureDifficulty(&core.Creature{Name: "Lich"}, nil))
	assert.Equal(t, core.Unrated(core.ReasonInvalid), s.CreatureDifficulty(&core.Creature{Name: "Commoner"}, nil))
	assert.Equal(t, core.Unrated(core.ReasonInvalid), s.CreatureDifficulty(&core.Creature{Name: "Mystery"}, nil))
	assert.Equal(t, core.Unrated(core.ReasonNotFound), New(nil).CreatureDifficulty(&core.Creature{Name: "Ogre"}, nil))
}

func TestAdditionalStatsDelegateToXP(t *testing.T) {
	s := newTestSystem()

	assert.Equal(t, []string{"450 XP"}, s.AdditionalCreatureDifficultyStats(&core.Creature{Name: "Ogre"}, nil))
	assert.Equal(t, []string{"1,800 XP"}, s.AdditionalCreatureDifficultyStats(&core.Creature{Name: "Troll"}, nil))
	assert.Equal(t, []string{core.DefaultUndefined}, s.AdditionalCreatureDifficultyStats(&core.Creature{Name: "Lich"}, nil))
}

func TestEncounterDifficulty(t *testing.T) {
	s := newTestSystem()
	party := core.PlayerLevels{3, 3, 3, 3}

	t.Run("empty roster", func(t *testing.T) {
		r := s.EncounterDifficulty(core.CreatureCounts{}, party)
		assert.Equal(t, "Not Deadly", r.DisplayName)
		assert.Equal(t, "easy", r.StyleClass)
		assert.Equal(t, 0.0, r.TotalValue)
		assert.Equal(t, "Total CR", r.ValueLabel)
	})

	t.Run("at threshold is not deadly", func(t *testing.T) {
		counts := core.CreatureCounts{
			&core.Creature{Name: "Ogre"}:   1,
			&core.Creature{Name: "Goblin"}: 4,
		}
		r := s.EncounterDifficulty(counts, party)
		assert.Equal(t, 3.0, r.TotalValue)
		assert.Equal(t, "Not Deadly", r.DisplayName)
		assert.Equal(t, r.DisplayName, core.HighestBand(s.DifficultyThresholds(party), r.TotalValue, "Not Deadly"))
		assert.Contains(t, r.Summary, "Deadly Threshold: above 3")
	})

	t.Run("above threshold is deadly", func(t *testing.T) {
		counts := core.CreatureCounts{&core.Creature{Name: "Ogre"}: 2}
		r := s.EncounterDifficulty(counts, party)
		assert.Equal(t, "Deadly", r.DisplayName)
		assert.Equal(t, "deadly", r.StyleClass)
		require.Len(t, r.ExtraMetrics, 1)
		assert.Equal(t, core.Metric{Label: "Total XP", Value: 900}, r.ExtraMetrics[0])
		assert.Contains(t, r.Summary, "Total CR: 4")
		assert.Contains(t, r.Summary, "Total levels: 12")
		assert.Contains(t, r.Summary, "Deadly Threshold: above 3")
	})

	t.Run("empty party", func(t *testing.T) {
		r := s.EncounterDifficulty(nil, nil)
		assert.Equal(t, "Not Deadly", r.DisplayName)
		assert.Equal(t, "easy", r.StyleClass)

		r = s.EncounterDifficulty(core.CreatureCounts{&core.Creature{Name: "Goblin"}: 1}, nil)
		assert.Equal(t, "Deadly", r.DisplayName)
		assert.Contains(t, r.Summary, "Deadly Threshold: above 0")
	})

	t.Run("unratable creature skipped", func(t *testing.T) {
		counts := core.CreatureCounts{
			&core.Creature{Name: "Lich"}:   1,
			&core.Creature{Name: "Goblin"}: 3,
		}
		r := s.EncounterDifficulty(counts, party)
		assert.Equal(t, 0.75, r.TotalValue)
		assert.Equal(t, core.Metric{Label: "Total XP", Value: 150}, r.ExtraMetrics[0])
	})
}

func TestFormatDifficultyValue(t *testing.T) {
	s := newTestSystem()
	assert.Equal(t, core.DefaultUndefined, s.FormatDifficultyValue(0, true))
	assert.Equal(t, "1/4 CR", s.FormatDifficultyValue(0.25, true))
	assert.Equal(t, "3", s.FormatDifficultyValue(3, false))
}

func TestRegistered(t *testing.T) {
	sys, err := registry.Create(ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "DnD 5e Lazy GM", sys.Title())
}
