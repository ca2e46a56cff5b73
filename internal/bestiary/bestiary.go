// Package bestiary provides creature stat blocks and the creature-or-bestiary
// lookup the rule systems read through. Entries are keyed by name,
// case-insensitively.
package bestiary

import (
	"sort"
	"strings"

	"github.com/vovakirdan/encounter-tracker/internal/core"
)

// Bestiary is a read-only-after-load collection of stat blocks.
type Bestiary struct {
	entries map[string]core.StatBlock
}

// New creates a bestiary holding the given stat blocks.
// Later blocks replace earlier ones with the same name.
func New(blocks ...core.StatBlock) *Bestiary {
	b := &Bestiary{entries: make(map[string]core.StatBlock, len(blocks))}
	for _, block := range blocks {
		b.Add(block)
	}
	return b
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Add inserts or replaces a stat block. Blocks without a name are ignored.
func (b *Bestiary) Add(block core.StatBlock) {
	k := key(block.Name)
	if k == "" {
		return
	}
	b.entries[k] = block
}

// Get returns the stat block for name.
func (b *Bestiary) Get(name string) (core.StatBlock, bool) {
	if b == nil {
		return core.StatBlock{}, false
	}
	block, ok := b.entries[key(name)]
	return block, ok
}

// Len returns the number of entries.
func (b *Bestiary) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Names returns all entry names in sorted order.
func (b *Bestiary) Names() []string {
	if b == nil {
		return nil
	}
	names := make([]string, 0, len(b.entries))
	for _, block := range b.entries {
		names = append(names, block.Name)
	}
	sort.Strings(names)
	return names
}

// Merge copies every entry of other into b, replacing duplicates.
func (b *Bestiary) Merge(other *Bestiary) {
	if other == nil {
		return
	}
	for _, block := range other.entries {
		b.Add(block)
	}
}

// Lookup implements core.Lookup. The creature's inline override wins;
// otherwise the bestiary entry with the creature's name is consulted.
func (b *Bestiary) Lookup(c *core.Creature, extract core.Extractor) (string, bool) {
	if c == nil || extract == nil {
		return "", false
	}
	if v := strings.TrimSpace(extract(c.Inline())); v != "" {
		return v, true
	}

	block, ok := b.Get(c.Name)
	if !ok {
		return "", false
	}
	v := strings.TrimSpace(extract(block))
	return v, v != ""
}
