// Package registry provides a global registry for rule system factories.
// Systems register themselves in init() functions, allowing the CLI and TUI
// to discover and instantiate them without branching on which one is active.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/encounter-tracker/internal/core"
)

// RpgSystem is the contract every rule system implements.
// Implementations are pure: they never mutate their inputs and return the
// same result for the same arguments. Creature data is read through the
// core.Lookup the system was created with.
type RpgSystem interface {
	// ID returns a unique identifier for this system (e.g., "dnd5e").
	ID() string

	// Title returns a human-readable name for display (e.g., "DnD 5e").
	Title() string

	// CreatureDifficulty rates a single creature.
	// Systems that do not depend on the party ignore levels.
	CreatureDifficulty(c *core.Creature, levels core.PlayerLevels) core.CreatureDifficulty

	// DifficultyThresholds returns the named bands for a party, ascending by bound.
	DifficultyThresholds(levels core.PlayerLevels) []core.DifficultyThreshold

	// EncounterDifficulty aggregates a roster into a final rating.
	// Unrated creatures contribute nothing; the call never fails.
	EncounterDifficulty(counts core.CreatureCounts, levels core.PlayerLevels) core.EncounterRating

	// AdditionalCreatureDifficultyStats returns extra per-creature display
	// strings. Most systems return nil.
	AdditionalCreatureDifficultyStats(c *core.Creature, levels core.PlayerLevels) []string

	// FormatDifficultyValue renders a raw score, returning
	// core.DefaultUndefined for zero.
	FormatDifficultyValue(value float64, withUnits bool) string

	// SystemDifficulties lists every band name the system can produce, in
	// display order. Always at least two entries.
	SystemDifficulties() []string
}

// SystemInfo contains metadata about a registered system.
type SystemInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a system bound to a creature lookup.
type Factory func(lookup core.Lookup) RpgSystem

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a system factory to the registry.
// Typically called from a system's init() function.
// Panics if a system with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: system %q already registered", id))
	}

	factories[id] = f

	// Systems only touch the lookup while rating, so nil is fine here
	titles[id] = f(nil).Title()
}

// List returns information about all registered systems, sorted by ID.
func List() []SystemInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SystemInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SystemInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a system by its ID.
// Returns an error if the system ID is not registered.
func Create(id string, lookup core.Lookup) (RpgSystem, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown system %q", id)
	}

	return f(lookup), nil
}

// Exists checks if a system with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
