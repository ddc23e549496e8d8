// Package preset defines the built-in setting presets and loads user
// presets from YAML files.
package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tstetson/fieldtuner/internal/apperr"
)

// Preset is a named key → raw value table applied through the same
// validate-and-diff path as manual edits.
type Preset struct {
	ID          string            `yaml:"id" json:"id"`
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description"`
	Settings    map[string]string `yaml:"settings" json:"settings"`
	Builtin     bool              `yaml:"-" json:"builtin"`
}

// Store holds built-in presets plus any user presets loaded from disk.
// User presets may shadow built-ins by reusing an ID.
type Store struct {
	presets map[string]Preset
}

// NewStore returns a store seeded with the built-in presets.
func NewStore() *Store {
	s := &Store{presets: make(map[string]Preset, len(builtins))}
	for _, p := range builtins {
		s.presets[p.ID] = p
	}
	return s
}

// Get returns the preset with the given ID.
func (s *Store) Get(id string) (Preset, error) {
	p, ok := s.presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("preset %q: %w", id, apperr.ErrNotFound)
	}
	return p, nil
}

// List returns all presets sorted by ID.
func (s *Store) List() []Preset {
	out := make([]Preset, 0, len(s.presets))
	for _, p := range s.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDir reads every .yaml/.yml file in dir as a user preset. A
// missing directory is not an error; a malformed file is.
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("preset: read dir %s: %w", dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("preset: read %s: %w", path, err)
		}
		var p Preset
		if err := yaml.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("preset: parse %s: %w", path, err)
		}
		if p.ID == "" {
			p.ID = strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		}
		if len(p.Settings) == 0 {
			return fmt.Errorf("preset: %s has no settings", path)
		}
		s.presets[p.ID] = p
	}
	return nil
}
