package district

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a business id is not part of the district.
var ErrNotFound = errors.New("business not found")

// DefaultGrid is the smallest grid the map supports.
var DefaultGrid = GridDef{Cols: 3, Rows: 3}

// Load reads a district snapshot from a YAML file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading district file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML district snapshot. A missing grid falls back to DefaultGrid.
func Parse(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing district YAML: %w", err)
	}
	if s.Grid.Cols == 0 && s.Grid.Rows == 0 {
		s.Grid = DefaultGrid
	}
	return &s, nil
}

// LoadProject loads district.yaml from a project directory.
func LoadProject(projectDir string) (*Snapshot, error) {
	return Load(filepath.Join(projectDir, "district.yaml"))
}
