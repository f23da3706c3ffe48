package scene

import (
	"math"
	"time"

	"github.com/devcompany145/Business-developers-ai/pkg/camera"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/geo"
	"github.com/devcompany145/Business-developers-ai/pkg/lod"
	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/relations"
)

// Input is the complete state one frame is composed from.
type Input struct {
	Businesses  []district.Business
	Filter      Filter
	Mode        mapmode.Mode
	Interaction mapmode.Interaction
	View        camera.View
	Layout      geo.Layout
	SelectedID  string
	HoveredID   string

	// Derived is the memoized relationship layer for (Businesses, Mode).
	// When nil or built for another mode it is derived on the spot.
	Derived *relations.Derived

	// Translate resolves status keys to labels. Nil leaves keys as labels.
	Translate func(key string) string
}

// Compose builds the frame for in. Geometry indexing on the globe uses the
// filtered list so the sphere stays dense. Edges and clusters that mention a
// business outside the rendered set are dropped, and clusters are rebuilt
// from the surviving edges.
func Compose(in Input) *Frame {
	f := NewFrame()

	mode := in.Mode
	if !mode.Valid() {
		mode = mapmode.Standard
	}
	interaction := in.Interaction
	if mode == mapmode.Globe || !interaction.Valid() {
		interaction = mapmode.DefaultInteraction(mode)
	}
	translate := in.Translate
	if translate == nil {
		translate = func(key string) string { return key }
	}

	derived := in.Derived
	if derived == nil || derived.Mode != mode {
		derived = relations.Derive(in.Businesses, mode, in.Layout.Grid)
	}

	tier := lod.Select(in.View.Zoom, mode)
	content := tier.Content()
	focus := relations.Focus(in.HoveredID, in.SelectedID)
	graph := derived.Graph()

	visible := ApplyFilter(in.Businesses, in.Filter)
	for i, b := range visible {
		pl, ok := in.Layout.Place(mode, b.GridPosition.X, b.GridPosition.Y, i, len(visible))
		if !ok {
			continue
		}
		status := StatusFor(b, mode)
		status.Label = translate(status.Key)

		t := Tile{
			ID:           b.ID,
			Name:         b.Name,
			Category:     b.Category,
			Logo:         b.Logo,
			GridPosition: b.GridPosition,
			Occupied:     b.IsOccupied,
			Visitors:     b.ActiveVisitors,
			Favorite:     b.Favorite,
			Placement:    pl,
			LOD:          tier,
			Content:      content,
			Status:       status,
			Selected:     b.ID == in.SelectedID,
			Hovered:      b.ID == in.HoveredID,
		}
		t.Related, t.RelationType = relatedIn(mode, graph, focus, b.ID)
		t.Dimmed = focus != "" && !t.Related
		t.Banner = b.IsOccupied && mode != mapmode.Globe && (content.Label || t.Selected)
		addTile(f, t)
	}

	rendered := make(map[string]bool, len(f.Tiles))
	for _, t := range f.Tiles {
		rendered[t.ID] = true
	}
	for _, e := range derived.Edges {
		if rendered[e.Participants[0]] && rendered[e.Participants[1]] {
			f.Edges = append(f.Edges, e)
		}
	}
	f.Segments = append(f.Segments, derived.Segments...)
	if len(f.Edges) == len(derived.Edges) {
		f.Clusters = derived.Clusters
	} else {
		f.Clusters = relations.Clusters(f.Edges)
	}

	f.Mode = mode
	f.Interaction = interaction
	f.View = in.View
	f.LOD = tier
	f.Focus = focus
	f.Filter = in.Filter
	f.Metadata = Metadata{
		Hash:        derived.Hash,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Total:       len(in.Businesses),
		Rendered:    len(f.Tiles),
		Bounds:      computeBounds(f.Tiles),
	}
	return f
}

// relatedIn applies the highlight query. Only the networking layer has
// relationships; in other modes every tile counts as related.
func relatedIn(mode mapmode.Mode, g *relations.Graph, focus, id string) (bool, relations.EdgeType) {
	if mode != mapmode.Networking {
		return true, ""
	}
	return g.Related(focus, id)
}

func computeBounds(tiles []Tile) BoundingBox {
	if len(tiles) == 0 {
		return BoundingBox{}
	}
	minV := geo.Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxV := geo.Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}

	for _, t := range tiles {
		half := t.Placement.Size / 2
		p := t.Placement.Position
		minV.X = math.Min(minV.X, p.X-half)
		maxV.X = math.Max(maxV.X, p.X+half)
		minV.Y = math.Min(minV.Y, p.Y-half)
		maxV.Y = math.Max(maxV.Y, p.Y+half)
		minV.Z = math.Min(minV.Z, p.Z-half)
		maxV.Z = math.Max(maxV.Z, p.Z+half)
	}
	return BoundingBox{Min: minV, Max: maxV}
}
