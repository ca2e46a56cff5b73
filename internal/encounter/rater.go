package encounter

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/encounter-tracker/internal/core"
	"github.com/vovakirdan/encounter-tracker/internal/registry"
)

// CreatureLine is the display breakdown for one roster row.
type CreatureLine struct {
	Name       string
	Count      int
	Difficulty core.CreatureDifficulty
	Formatted  string   // Per-creature value in the system's units
	Additional []string // Secondary per-creature stats
}

// Report is everything a front end needs to show a rated encounter.
type Report struct {
	SystemID     string
	SystemTitle  string
	Encounter    string
	Party        core.PlayerLevels
	Rating       core.EncounterRating
	Thresholds   []core.DifficultyThreshold
	Difficulties []string
	Creatures    []CreatureLine
	Formatted    string // Total value in the system's units
}

// Rater runs encounters through a rule system.
type Rater struct {
	System registry.RpgSystem
	Logger *log.Logger
}

// NewRater creates a rater. A nil logger discards output.
func NewRater(system registry.RpgSystem, logger *log.Logger) *Rater {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Rater{System: system, Logger: logger}
}

// Rate rates enc against party. Unrated creatures are logged and contribute
// nothing; rating never fails.
func (r *Rater) Rate(enc *Encounter, party core.PlayerLevels) Report {
	sys := r.System
	levels := enc.Levels(party)

	lines := make([]CreatureLine, 0, len(enc.Roster))
	for _, entry := range enc.Roster {
		d := sys.CreatureDifficulty(entry.Creature, levels)
		if !d.Valid() {
			r.Logger.Debug("creature not rated",
				"system", sys.ID(),
				"creature", entry.Creature.Name,
				"reason", d.Reason,
			)
		}
		lines = append(lines, CreatureLine{
			Name:       entry.Creature.Name,
			Count:      entry.Count,
			Difficulty: d,
			Formatted:  sys.FormatDifficultyValue(d.Contribution(), true),
			Additional: sys.AdditionalCreatureDifficultyStats(entry.Creature, levels),
		})
	}

	rating := sys.EncounterDifficulty(enc.Counts(), levels)
	r.Logger.Debug("encounter rated",
		"system", sys.ID(),
		"encounter", enc.Name,
		"band", rating.DisplayName,
		"total", rating.TotalValue,
	)

	return Report{
		SystemID:     sys.ID(),
		SystemTitle:  sys.Title(),
		Encounter:    enc.Name,
		Party:        levels,
		Rating:       rating,
		Thresholds:   sys.DifficultyThresholds(levels),
		Difficulties: sys.SystemDifficulties(),
		Creatures:    lines,
		Formatted:    sys.FormatDifficultyValue(rating.TotalValue, true),
	}
}
