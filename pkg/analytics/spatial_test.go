package analytics

import (
	"testing"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

func TestResolveSpatial(t *testing.T) {
	s := testSnapshot()
	sp := resolveSpatial(s.Businesses, s.Grid)

	if sp.Cells != 9 || sp.FilledCells != 3 {
		t.Errorf("cells = %d filled = %d", sp.Cells, sp.FilledCells)
	}
	if !approxEqual(sp.FillRate, 1.0/3, 1e-9) {
		t.Errorf("fill rate = %f", sp.FillRate)
	}
	if sp.VisitorsByCol[0] != 30 || sp.VisitorsByCol[1] != 0 || sp.VisitorsByCol[2] != 10 {
		t.Errorf("by col = %v", sp.VisitorsByCol)
	}
	if sp.VisitorsByRow[0] != 40 {
		t.Errorf("by row = %v", sp.VisitorsByRow)
	}
	// (30*1 + 10*3) / 40 = 1.5 on X, row 1 on Y.
	if !approxEqual(sp.VisitorCenter[0], 1.5, 1e-9) || !approxEqual(sp.VisitorCenter[1], 1, 1e-9) {
		t.Errorf("visitor center = %v", sp.VisitorCenter)
	}
}

func TestResolveSpatialOutOfGridAndShared(t *testing.T) {
	bs := []district.Business{
		{ID: "a", IsOccupied: true, GridPosition: district.GridPosition{X: 1, Y: 1}},
		{ID: "b", IsOccupied: true, GridPosition: district.GridPosition{X: 1, Y: 1}},
		{ID: "c", IsOccupied: true, GridPosition: district.GridPosition{X: 9, Y: 1}},
	}
	sp := resolveSpatial(bs, district.GridDef{Cols: 3, Rows: 3})
	if sp.OutOfGrid != 1 || sp.SharedCells != 1 || sp.FilledCells != 1 {
		t.Errorf("spatial = %+v", sp)
	}
	if sp.VisitorCenter != [2]float64{} {
		t.Error("no visitors should leave the center at zero")
	}
}

func TestResolveSpatialEmptyGrid(t *testing.T) {
	sp := resolveSpatial(nil, district.GridDef{})
	if sp.Cells != 0 || sp.FillRate != 0 {
		t.Errorf("spatial = %+v", sp)
	}
}
