package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is the viewer preferences file, relative to the process working directory.
const DefaultPath = "config/viewer.json"

// Prefs holds viewer-only preferences toggled from the console. Persisted across runs.
type Prefs struct {
	ShowFPS      bool `json:"show_fps"`
	ShowMemAlloc bool `json:"show_memalloc"`
	ShowLines    bool `json:"show_lines"`
	AutoRotate   bool `json:"auto_rotate"`
	Muted        bool `json:"muted"`
}

// Default returns default preferences (debug overlays off, callout lines on, spinning).
func Default() Prefs {
	return Prefs{
		ShowLines:  true,
		AutoRotate: true,
	}
}

// Store reads and writes one preferences file.
type Store struct {
	Path string
}

// NewStore returns a store for path (DefaultPath when empty).
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Load reads preferences. If the file is missing or invalid, returns Default() and does
// not create a file. Fields absent from the file keep their defaults.
func (s *Store) Load() Prefs {
	p := Default()
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default()
	}
	return p
}

// Save writes preferences, creating the directory if needed.
func (s *Store) Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}
