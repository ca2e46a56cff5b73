// Package core provides the shared data model for encounter rating.
// Bestiary loading, rendering and persistence live in other packages.
package core

// StatBlock holds the raw stats a bestiary entry provides.
// Values are raw strings; each system parses them itself (fractional
// challenge ratings, "Creature 5" style levels).
type StatBlock struct {
	Name   string
	CR     string
	Level  string
	Source string
}

// Creature is a single roster entry. Rule systems key maps by *Creature,
// so two rows naming the same monster are still distinct creatures.
// Non-empty CR/Level fields override the shared bestiary entry.
type Creature struct {
	Name  string
	CR    string
	Level string
}

// Inline returns the creature's own overrides as a stat block.
func (c *Creature) Inline() StatBlock {
	if c == nil {
		return StatBlock{}
	}
	return StatBlock{Name: c.Name, CR: c.CR, Level: c.Level}
}

// Extractor picks one raw stat out of a stat block.
// An empty result means the stat is undefined.
type Extractor func(StatBlock) string

// Common extractors.
var (
	ExtractCR    Extractor = func(b StatBlock) string { return b.CR }
	ExtractLevel Extractor = func(b StatBlock) string { return b.Level }
)

// Lookup resolves a creature's raw stat, preferring the inline override on
// the creature and falling back to a shared bestiary entry.
// Returns false when neither source defines the stat.
type Lookup func(c *Creature, extract Extractor) (string, bool)

// CreatureCounts is an encounter roster: creature to number present.
type CreatureCounts map[*Creature]int
