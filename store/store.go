// Package store persists the small JSON documents the tool keeps between
// runs: workflows, device profiles, and device aliases. Reads never fail the
// program; a missing or corrupt file yields the empty default and a warning.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpnesseling/adbw/utils"
)

const (
	workflowsFile = "workflows.json"
	profilesFile  = "profiles.json"
	aliasesFile   = "aliases.json"
)

// Store reads and writes the JSON documents under a single directory.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created lazily on the
// first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readJSON loads path into out. Missing files and corrupt JSON leave out at
// its zero value; corruption logs a warning so the user knows edits were
// ignored.
func readJSON(path string, out interface{}) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.Warn("Failed to read %s: %v", path, err)
		}
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		utils.Warn("Ignoring corrupt store file %s: %v", path, err)
	}
}

// writeJSON writes v indented to path, creating the store directory first.
func writeJSON(path string, v interface{}) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %v", filepath.Base(path), err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return nil
}
