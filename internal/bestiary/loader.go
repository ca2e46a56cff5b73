package bestiary

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/encounter-tracker/internal/core"
)

//go:embed defaults/srd.yaml
var defaultBestiaryYAML []byte

// YAMLBestiary represents the YAML structure for a bestiary file.
type YAMLBestiary struct {
	Creatures []YAMLCreature `yaml:"creatures"`
}

// YAMLCreature represents a single stat block in YAML format.
type YAMLCreature struct {
	Name   string `yaml:"name"`
	CR     string `yaml:"cr,omitempty"`
	Level  string `yaml:"level,omitempty"`
	Source string `yaml:"source,omitempty"`
}

// Parse parses a YAML bestiary.
func Parse(data []byte) (*Bestiary, error) {
	var yb YAMLBestiary
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return nil, fmt.Errorf("bestiary: yaml unmarshal: %w", err)
	}

	b := New()
	for _, c := range yb.Creatures {
		b.Add(core.StatBlock{
			Name:   c.Name,
			CR:     c.CR,
			Level:  c.Level,
			Source: c.Source,
		})
	}
	return b, nil
}

// Default returns the embedded sample bestiary.
func Default() *Bestiary {
	b, err := Parse(defaultBestiaryYAML)
	if err != nil {
		return New()
	}
	return b
}

// LoadFile loads a single bestiary file.
func LoadFile(path string) (*Bestiary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bestiary: reading file %s: %w", path, err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bestiary: parsing file %s: %w", path, err)
	}
	return b, nil
}

// LoadDir recursively loads every .yaml/.yml file under root into one
// bestiary. Files that fail to parse are skipped. Files are merged in
// lexical path order, so later paths win on duplicate names.
func LoadDir(root string) (*Bestiary, error) {
	b := New()

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		loaded, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		b.Merge(loaded)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bestiary: walking directory %s: %w", root, err)
	}

	return b, nil
}

// Load loads path as a directory or a single file. An empty path returns
// the embedded default bestiary.
func Load(path string) (*Bestiary, error) {
	if path == "" {
		return Default(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("bestiary: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
