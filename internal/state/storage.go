package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store reads and writes an environment's manifest.
type Store struct {
	root string
	mu   sync.Mutex
	now  func() time.Time
}

// NewStore creates a Store for the environment rooted at root.
// The manifest is stored in <root>/.pyenv/manifest.json.
func NewStore(root string) *Store {
	return &Store{root: root, now: time.Now}
}

// Dir returns the directory holding pyenv's own files for the environment.
func (s *Store) Dir() string {
	return filepath.Join(s.root, ".pyenv")
}

// Path returns the manifest file path.
func (s *Store) Path() string {
	return filepath.Join(s.Dir(), "manifest.json")
}

// Load reads the manifest. A missing file yields an empty manifest.
func (s *Store) Load() (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*Manifest, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{Version: ManifestVersion, CreatedAt: s.now().UTC()}, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Save writes the manifest, creating the directory if needed.
func (s *Store) Save(m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(m)
}

func (s *Store) save(m *Manifest) error {
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	// Write then rename so a crash never leaves a truncated manifest.
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Update loads the manifest, applies fn, and saves it.
func (s *Store) Update(fn func(*Manifest)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	fn(m)
	return s.save(m)
}

// RecordInstall appends an install record stamped with the current time.
func (s *Store) RecordInstall(packages []string, exitCode int) error {
	return s.Update(func(m *Manifest) {
		m.Installs = append(m.Installs, InstallRecord{
			Packages: append([]string(nil), packages...),
			At:       s.now().UTC(),
			Success:  exitCode == 0,
			ExitCode: exitCode,
		})
	})
}

// RecordRun appends a run record stamped with the current time.
func (s *Store) RecordRun(exitCode int, missing []string) error {
	return s.Update(func(m *Manifest) {
		m.Runs = append(m.Runs, RunRecord{
			At:       s.now().UTC(),
			Success:  exitCode == 0,
			ExitCode: exitCode,
			Missing:  append([]string(nil), missing...),
		})
	})
}

// Exists reports whether a manifest has been written.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}
