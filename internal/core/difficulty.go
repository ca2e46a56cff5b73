package core

// NoValueReason explains why a creature could not be rated.
type NoValueReason int

const (
	ReasonNone     NoValueReason = iota // Creature was rated
	ReasonNotFound                      // Stat missing from creature and bestiary
	ReasonTooEasy                       // Below the system's comparison range
	ReasonTooHard                       // Above the system's comparison range
	ReasonInvalid                       // Present but maps to no defined value
)

// String returns a human-readable name for the reason.
func (r NoValueReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNotFound:
		return "not found"
	case ReasonTooEasy:
		return "too easy"
	case ReasonTooHard:
		return "too hard"
	case ReasonInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// CreatureDifficulty is the result of rating one creature.
// A rated result has Reason == ReasonNone; an unrated one always has Value 0.
// Build values with Rated and Unrated so the two cases cannot be confused.
type CreatureDifficulty struct {
	Value  float64
	Reason NoValueReason
}

// Rated returns a valid difficulty.
func Rated(value float64) CreatureDifficulty {
	return CreatureDifficulty{Value: value}
}

// Unrated returns a difficulty that could not be computed.
func Unrated(reason NoValueReason) CreatureDifficulty {
	return CreatureDifficulty{Reason: reason}
}

// Valid reports whether the creature was rated.
func (d CreatureDifficulty) Valid() bool {
	return d.Reason == ReasonNone
}

// Contribution returns the value this creature adds to an aggregate.
func (d CreatureDifficulty) Contribution() float64 {
	if !d.Valid() {
		return 0
	}
	return d.Value
}

// DifficultyThreshold is a named band and its inclusive lower bound.
type DifficultyThreshold struct {
	Name     string
	MinValue float64
}

// Metric is a secondary labelled value shown next to a rating.
type Metric struct {
	Label string
	Value float64
}

// EncounterRating is the final verdict for an encounter.
type EncounterRating struct {
	DisplayName  string   // Band name, e.g. "Deadly"
	Summary      string   // Multi-line breakdown
	StyleClass   string   // Cross-system style tag: trivial, easy, medium, hard, deadly
	TotalValue   float64  // Raw aggregate score
	ValueLabel   string   // What TotalValue means, e.g. "Total XP"
	ExtraMetrics []Metric // Secondary values to display alongside
}

// HighestBand returns the name of the highest threshold whose bound is met
// by value. Thresholds must be sorted ascending. A band whose bound does not
// rise above the previous one is never reached, so a degenerate set (all
// bounds 0 for an empty party) rates as the first band. Falls back to
// fallback when no bound is met or thresholds is empty.
func HighestBand(thresholds []DifficultyThreshold, value float64, fallback string) string {
	name := fallback
	for i, t := range thresholds {
		if i > 0 && t.MinValue <= thresholds[i-1].MinValue {
			continue
		}
		if value >= t.MinValue {
			name = t.Name
		}
	}
	return name
}
