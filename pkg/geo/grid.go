package geo

// Grid describes the flat district layout inside a square container.
// Cell size is derived from the column count and applied to both axes.
type Grid struct {
	ContainerSize float64 `json:"container_size"`
	Cols          int     `json:"cols"`
	Rows          int     `json:"rows"`
	Padding       float64 `json:"padding"`
	Gap           float64 `json:"gap"`
}

// CellSize returns the edge length of one cell.
func (g Grid) CellSize() float64 {
	if g.Cols <= 0 {
		return 0
	}
	return (g.ContainerSize - 2*g.Padding - float64(g.Cols-1)*g.Gap) / float64(g.Cols)
}

// CellCenter returns the center of the 1-based cell (col, row). Coordinates
// outside the grid are not rejected; they extrapolate past the container edge.
func (g Grid) CellCenter(col, row int) Point2D {
	return Point2D{X: g.axisCenter(col), Y: g.axisCenter(row)}
}

func (g Grid) axisCenter(i int) float64 {
	cell := g.CellSize()
	return g.Padding + float64(i-1)*(cell+g.Gap) + cell/2
}

// Contains reports whether (col, row) is inside the logical grid.
func (g Grid) Contains(col, row int) bool {
	return col >= 1 && col <= g.Cols && row >= 1 && row <= g.Rows
}

// corridorOffset is the axis coordinate of the gap between cell k and k+1.
func (g Grid) corridorOffset(k int) float64 {
	return g.Padding + float64(k)*(g.CellSize()+g.Gap) - g.Gap/2
}

// VerticalCorridor returns the line running down the gap between column k
// and column k+1, for k in [1, Cols-1].
func (g Grid) VerticalCorridor(k int) (Point2D, Point2D) {
	x := g.corridorOffset(k)
	return Pt(x, g.Padding), Pt(x, g.ContainerSize-g.Padding)
}

// HorizontalCorridor returns the line running across the gap between row k
// and row k+1, for k in [1, Rows-1].
func (g Grid) HorizontalCorridor(k int) (Point2D, Point2D) {
	y := g.corridorOffset(k)
	return Pt(g.Padding, y), Pt(g.ContainerSize-g.Padding, y)
}
