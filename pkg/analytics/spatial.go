package analytics

import (
	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

// resolveSpatial measures how the businesses fill the logical grid. The
// visitor center is the visitor-weighted mean cell coordinate of occupied
// businesses inside the grid.
func resolveSpatial(bs []district.Business, grid district.GridDef) Spatial {
	sp := Spatial{
		Cells:         max(grid.Cols, 0) * max(grid.Rows, 0),
		VisitorsByCol: make([]int, max(grid.Cols, 0)),
		VisitorsByRow: make([]int, max(grid.Rows, 0)),
	}

	filled := make(map[district.GridPosition]int)
	var weight, sumX, sumY float64
	for _, b := range bs {
		pos := b.GridPosition
		inside := pos.X >= 1 && pos.X <= grid.Cols && pos.Y >= 1 && pos.Y <= grid.Rows
		if !inside {
			sp.OutOfGrid++
			continue
		}
		if !b.IsOccupied {
			continue
		}
		filled[pos]++
		sp.VisitorsByCol[pos.X-1] += b.ActiveVisitors
		sp.VisitorsByRow[pos.Y-1] += b.ActiveVisitors
		w := float64(b.ActiveVisitors)
		weight += w
		sumX += w * float64(pos.X)
		sumY += w * float64(pos.Y)
	}

	sp.FilledCells = len(filled)
	for _, n := range filled {
		if n > 1 {
			sp.SharedCells++
		}
	}
	if sp.Cells > 0 {
		sp.FillRate = float64(sp.FilledCells) / float64(sp.Cells)
	}
	if weight > 0 {
		sp.VisitorCenter = [2]float64{sumX / weight, sumY / weight}
	}
	return sp
}
