package geo

import (
	"math"

	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
)

// Placement is where a tile sits in scene space and how it is oriented.
// Grid placements lie in the Z=0 plane in container coordinates; globe
// placements are relative to the globe center.
type Placement struct {
	Position Vec3    `json:"position"`
	Rotation Quat    `json:"rotation"`
	Size     float64 `json:"size"`
	OnGlobe  bool    `json:"on_globe"`
}

// Layout bundles the parameters every placement needs.
type Layout struct {
	Grid        Grid
	GlobeRadius float64
}

// Place positions a tile for the given mode. col/row are the business's grid
// coordinate; index/count locate it in the filtered list and only matter on
// the globe. ok is false when no placement exists (empty globe).
func (l Layout) Place(mode mapmode.Mode, col, row, index, count int) (Placement, bool) {
	switch mode {
	case mapmode.Standard, mapmode.Heatmap, mapmode.Networking, mapmode.Traffic:
		c := l.Grid.CellCenter(col, row)
		return Placement{
			Position: Vec3{X: c.X, Y: c.Y},
			Rotation: IdentityQuat(),
			Size:     l.Grid.CellSize(),
		}, true
	case mapmode.Globe:
		sp, ok := FibonacciSphere(index, count, l.GlobeRadius)
		if !ok {
			return Placement{}, false
		}
		return Placement{
			Position: sp.Position,
			Rotation: sp.Rotation,
			Size:     globeTileSize(l.GlobeRadius, count),
			OnGlobe:  true,
		}, true
	}
	return Placement{}, false
}

// globeTileSize shrinks tiles as the globe fills up so neighbours do not
// overlap: each tile gets roughly its share of the sphere's surface.
func globeTileSize(radius float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	share := 4 * math.Pi * radius * radius / float64(count)
	size := 0.8 * math.Sqrt(share)
	if limit := radius * 0.6; size > limit {
		size = limit
	}
	return size
}
