package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

func snapshot(bs ...district.Business) *district.Snapshot {
	return &district.Snapshot{Name: "test", Grid: district.GridDef{Cols: 3, Rows: 3}, Businesses: bs}
}

func occupied(id string, x, y, visitors int) district.Business {
	return district.Business{ID: id, GridPosition: district.GridPosition{X: x, Y: y}, IsOccupied: true, ActiveVisitors: visitors}
}

func TestValidateSnapshotClean(t *testing.T) {
	r := ValidateSnapshot(snapshot(occupied("a", 1, 1, 3), occupied("b", 2, 2, 0)))
	assert.True(t, r.Valid)
	assert.Empty(t, r.Warnings)
	assert.NoError(t, r.Err())
}

func TestValidateSnapshotRecordErrors(t *testing.T) {
	bad := occupied("", 1, 1, -4)
	r := ValidateSnapshot(snapshot(bad, occupied("a", 2, 1, 0), occupied("a", 3, 1, 0)))
	require.False(t, r.Valid)
	require.Len(t, r.Errors, 2)
	assert.Contains(t, r.Errors[0].Message, "ID is required")
	assert.Contains(t, r.Errors[0].Message, "ActiveVisitors must be at least 0")
	assert.Contains(t, r.Errors[1].Message, "duplicate business id")
	assert.Equal(t, "businesses[1]", r.Errors[1].ConflictWith)
}

func TestValidateSnapshotSpatialWarnings(t *testing.T) {
	r := ValidateSnapshot(snapshot(
		occupied("a", 1, 1, 0),
		occupied("b", 1, 1, 0),
		occupied("c", 4, 0, 0),
	))
	assert.True(t, r.Valid, "spatial problems never invalidate the snapshot")
	require.Len(t, r.Warnings, 2)
	assert.Equal(t, "a", r.Warnings[0].ConflictWith)
	assert.True(t, strings.Contains(r.Warnings[1].Message, "off-canvas"))
}

func TestValidateSnapshotVacantSharingIsFine(t *testing.T) {
	vacant := occupied("v", 1, 1, 0)
	vacant.IsOccupied = false
	r := ValidateSnapshot(snapshot(occupied("a", 1, 1, 0), vacant))
	assert.Empty(t, r.Warnings)
}

func TestValidateSnapshotGrid(t *testing.T) {
	s := snapshot()
	s.Grid = district.GridDef{Cols: 0, Rows: 2}
	r := ValidateSnapshot(s)
	assert.False(t, r.Valid)

	s.Grid = district.GridDef{Cols: 2, Rows: 2}
	r = ValidateSnapshot(s)
	assert.True(t, r.Valid)
	assert.Len(t, r.Warnings, 1)

	assert.False(t, ValidateSnapshot(nil).Valid)
}

func TestValidateSnapshotInfo(t *testing.T) {
	vacant := occupied("v", 1, 1, 12)
	vacant.IsOccupied = false
	r := ValidateSnapshot(snapshot(vacant))
	assert.Len(t, r.Info, 2)
}

func TestValidateBusiness(t *testing.T) {
	assert.Error(t, ValidateBusiness(nil))
	b := occupied("x", 1, 1, 1)
	assert.NoError(t, ValidateBusiness(&b))
	b.ID = strings.Repeat("x", 65)
	err := ValidateBusiness(&b)
	assert.ErrorContains(t, err, "at most 64")
	assert.ErrorIs(t, err, ErrInvalid)
}
