package scene2d

import (
	"math"
	"time"

	"github.com/devcompany145/Business-developers-ai/pkg/geo"
	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/relations"
	"github.com/devcompany145/Business-developers-ai/pkg/scene"
)

const (
	emptyLotColor  = "#f3f4f6"
	synergyStroke  = "#8b5cf6"
	industryStroke = "#94a3b8"
	industryDash   = "6 4"
)

// Legend keys.
const (
	KeySynergy  = "legend.synergy"
	KeyIndustry = "legend.industry"
	KeyColdest  = "legend.heat_low"
	KeyWarm     = "legend.heat_mid"
	KeyHottest  = "legend.heat_high"
)

// Assemble2D converts a composed frame into a flat overlay. Every grid cell is
// emitted, occupied or not; the globe has no flat projection so its cells,
// connections and corridors are empty and only the legend is filled.
func Assemble2D(f *scene.Frame, grid geo.Grid, translate func(string) string) *Scene2D {
	if translate == nil {
		translate = func(key string) string { return key }
	}
	s := &Scene2D{
		Metadata:    assembleMetadata(f, grid),
		Cells:       []Cell2D{},
		Connections: []Connection2D{},
		Corridors:   []Corridor2D{},
		Legend:      assembleLegend(f, translate),
	}
	if f.Mode == mapmode.Globe {
		return s
	}
	s.Cells = assembleCells(f, grid)
	s.Connections = assembleConnections(f)
	s.Corridors = assembleCorridors(f.Segments)
	return s
}

func assembleMetadata(f *scene.Frame, grid geo.Grid) Metadata {
	occupied := 0
	for _, t := range f.Tiles {
		if t.Occupied {
			occupied++
		}
	}
	return Metadata{
		Mode:          string(f.Mode),
		ContainerSize: grid.ContainerSize,
		Cols:          grid.Cols,
		Rows:          grid.Rows,
		CellSize:      grid.CellSize(),
		Occupied:      occupied,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

// assembleCells lays out the full grid. When two rendered tiles claim the
// same cell the occupied one wins, then the first seen.
func assembleCells(f *scene.Frame, grid geo.Grid) []Cell2D {
	byCell := make(map[[2]int]*scene.Tile, len(f.Tiles))
	for i := range f.Tiles {
		t := &f.Tiles[i]
		key := [2]int{t.GridPosition.X, t.GridPosition.Y}
		if prev, ok := byCell[key]; ok && (prev.Occupied || !t.Occupied) {
			continue
		}
		byCell[key] = t
	}

	size := grid.CellSize()
	cells := make([]Cell2D, 0, grid.Cols*grid.Rows)
	for row := 1; row <= grid.Rows; row++ {
		for col := 1; col <= grid.Cols; col++ {
			c := grid.CellCenter(col, row)
			cell := Cell2D{
				Col:    col,
				Row:    row,
				Origin: [2]float64{c.X - size/2, c.Y - size/2},
				Size:   size,
				Color:  emptyLotColor,
			}
			if t, ok := byCell[[2]int{col, row}]; ok {
				cell.BusinessID = t.ID
				cell.Name = t.Name
				cell.Color = t.Status.Color
				cell.Label = t.Status.Label
				cell.Highlighted = t.Selected || t.Hovered
				cell.Dimmed = t.Dimmed
			}
			cells = append(cells, cell)
		}
	}
	return cells
}

func assembleConnections(f *scene.Frame) []Connection2D {
	result := make([]Connection2D, 0, len(f.Edges))
	for _, e := range f.Edges {
		c := Connection2D{
			ID:     e.ID,
			From:   [2]float64{e.Start.X, e.Start.Y},
			To:     [2]float64{e.End.X, e.End.Y},
			Type:   string(e.Type),
			Stroke: synergyStroke,
		}
		if e.Type == relations.Industry {
			c.Stroke = industryStroke
			c.Dash = industryDash
		}
		if f.Focus != "" {
			c.Active = e.Has(f.Focus)
			c.Dimmed = !c.Active
		}
		result = append(result, c)
	}
	return result
}

func assembleCorridors(segments []relations.Segment) []Corridor2D {
	result := make([]Corridor2D, 0, len(segments))
	for _, seg := range segments {
		level := scene.TrafficLevelFor(seg.Visitors)
		result = append(result, Corridor2D{
			ID:       seg.ID,
			Axis:     string(seg.Axis),
			Start:    [2]float64{seg.LineStart.X, seg.LineStart.Y},
			End:      [2]float64{seg.LineEnd.X, seg.LineEnd.Y},
			Visitors: seg.Visitors,
			Level:    string(level),
			Width:    corridorWidth(seg.Visitors),
			Color:    scene.TrafficColor(level),
		})
	}
	return result
}

// corridorWidth grows with traffic from 2 to 12 units.
func corridorWidth(visitors int) float64 {
	return 2 + math.Min(float64(max(visitors, 0))/10, 10)
}
