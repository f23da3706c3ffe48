package relations

import (
	"fmt"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/geo"
)

// Axis is the orientation of a corridor.
type Axis string

const (
	Vertical   Axis = "vertical"
	Horizontal Axis = "horizontal"
)

// Segment is the visitor aggregate for one internal corridor.
type Segment struct {
	ID        string      `json:"id"`
	Axis      Axis        `json:"axis"`
	Index     int         `json:"index"`
	LineStart geo.Point2D `json:"line_start"`
	LineEnd   geo.Point2D `json:"line_end"`
	Visitors  int         `json:"aggregated_visitors"`
}

// TrafficSegments returns one segment per internal corridor: Cols-1 vertical
// corridors followed by Rows-1 horizontal ones. A corridor between columns
// (or rows) k and k+1 sums the visitors of occupied businesses in either.
func TrafficSegments(bs []district.Business, grid geo.Grid) []Segment {
	cols := make(map[int]int)
	rows := make(map[int]int)
	for _, b := range bs {
		if !b.IsOccupied {
			continue
		}
		cols[b.GridPosition.X] += b.ActiveVisitors
		rows[b.GridPosition.Y] += b.ActiveVisitors
	}

	segments := make([]Segment, 0, max(grid.Cols-1, 0)+max(grid.Rows-1, 0))
	for k := 1; k < grid.Cols; k++ {
		start, end := grid.VerticalCorridor(k)
		segments = append(segments, Segment{
			ID:        fmt.Sprintf("v-%d", k),
			Axis:      Vertical,
			Index:     k,
			LineStart: start,
			LineEnd:   end,
			Visitors:  cols[k] + cols[k+1],
		})
	}
	for k := 1; k < grid.Rows; k++ {
		start, end := grid.HorizontalCorridor(k)
		segments = append(segments, Segment{
			ID:        fmt.Sprintf("h-%d", k),
			Axis:      Horizontal,
			Index:     k,
			LineStart: start,
			LineEnd:   end,
			Visitors:  rows[k] + rows[k+1],
		})
	}
	return segments
}
