// Package encounter loads encounter files and runs them through a rule
// system, producing the per-creature breakdown the CLI and TUI display.
package encounter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/encounter-tracker/internal/core"
)

// YAMLEncounter represents the YAML structure for an encounter file.
type YAMLEncounter struct {
	Name      string         `yaml:"name"`
	Party     []int          `yaml:"party"`
	Creatures []YAMLCreature `yaml:"creatures"`
}

// YAMLCreature is one roster row. CR and Level override the bestiary.
type YAMLCreature struct {
	Name  string `yaml:"name"`
	Count *int   `yaml:"count,omitempty"`
	CR    string `yaml:"cr,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// Entry is a roster row: a creature and how many are present.
type Entry struct {
	Creature *core.Creature
	Count    int
}

// Encounter is a named roster facing a party.
type Encounter struct {
	Name   string
	Party  core.PlayerLevels
	Roster []Entry
}

// Parse parses a YAML encounter. A missing count means one creature;
// explicit counts below zero are rejected.
func Parse(data []byte) (*Encounter, error) {
	var ye YAMLEncounter
	if err := yaml.Unmarshal(data, &ye); err != nil {
		return nil, fmt.Errorf("encounter: yaml unmarshal: %w", err)
	}

	enc := &Encounter{
		Name:  ye.Name,
		Party: core.PlayerLevels(ye.Party),
	}
	for i, lv := range ye.Party {
		if lv <= 0 {
			return nil, fmt.Errorf("encounter: party member %d has non-positive level %d", i+1, lv)
		}
	}

	for i, c := range ye.Creatures {
		if c.Name == "" {
			return nil, fmt.Errorf("encounter: creature %d has no name", i+1)
		}
		count := 1
		if c.Count != nil {
			count = *c.Count
		}
		if count < 0 {
			return nil, fmt.Errorf("encounter: creature %q has negative count %d", c.Name, count)
		}
		enc.Roster = append(enc.Roster, Entry{
			Creature: &core.Creature{Name: c.Name, CR: c.CR, Level: c.Level},
			Count:    count,
		})
	}

	return enc, nil
}

// LoadFile loads an encounter file.
func LoadFile(path string) (*Encounter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("encounter: reading file %s: %w", path, err)
	}
	enc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("encounter: parsing file %s: %w", path, err)
	}
	return enc, nil
}

// Counts builds the roster map the rule systems aggregate over.
// Each roster row is its own creature, even when two rows share a name.
func (e *Encounter) Counts() core.CreatureCounts {
	counts := make(core.CreatureCounts, len(e.Roster))
	for _, entry := range e.Roster {
		if entry.Count > 0 {
			counts[entry.Creature] = entry.Count
		}
	}
	return counts
}

// Levels returns the party levels, or override when it is non-empty.
func (e *Encounter) Levels(override core.PlayerLevels) core.PlayerLevels {
	if len(override) > 0 {
		return override
	}
	return e.Party
}
