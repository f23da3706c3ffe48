package district

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
version: "1"
name: Riverside
grid:
  cols: 4
  rows: 4
businesses:
  - id: b1
    name: Nimbus Labs
    category: tech
    grid_position: {x: 1, y: 1}
    is_occupied: true
    active_visitors: 12
    genome_profile:
      services_offered: [cloud hosting]
      services_needed: [marketing]
      industry_sector: software
      company_size: small
  - id: b2
    name: Vacant lot
    grid_position: {x: 2, y: 1}
`

func TestParseSnapshot(t *testing.T) {
	s, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "Riverside", s.Name)
	assert.Equal(t, GridDef{Cols: 4, Rows: 4}, s.Grid)
	require.Len(t, s.Businesses, 2)
	assert.True(t, s.Businesses[0].IsOccupied)
	require.NotNil(t, s.Businesses[0].Genome)
	assert.Equal(t, []string{"marketing"}, s.Businesses[0].Genome.ServicesNeeded)
	assert.Nil(t, s.Businesses[1].Genome)
}

func TestParseDefaultsGrid(t *testing.T) {
	s, err := Parse([]byte("name: tiny\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultGrid, s.Grid)
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "district.yaml"), []byte(sampleYAML), 0o644))

	s, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Len(t, s.Businesses, 2)

	_, err = LoadProject(t.TempDir())
	assert.Error(t, err)
}

func TestHashTracksContent(t *testing.T) {
	s, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	h1 := Hash(s.Businesses)
	assert.Equal(t, h1, Hash(s.Businesses), "hash must be stable")

	copied := append([]Business(nil), s.Businesses...)
	assert.Equal(t, h1, Hash(copied), "hash depends on content, not identity")

	copied[0].ActiveVisitors++
	assert.NotEqual(t, h1, Hash(copied))
}

func TestHelpers(t *testing.T) {
	s, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Len(t, Occupied(s.Businesses), 1)
	assert.Equal(t, "Nimbus Labs", ByID(s.Businesses, "b1").Name)
	assert.Nil(t, ByID(s.Businesses, "missing"))
	assert.Equal(t, []string{"tech"}, Categories(s.Businesses))
}
