package relations

import (
	"time"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/geo"
	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
)

// Derived is the relationship layer for one (business list, mode) input.
type Derived struct {
	Mode     mapmode.Mode `json:"mode"`
	Hash     uint64       `json:"hash"`
	Edges    []Edge       `json:"edges"`
	Segments []Segment    `json:"segments"`
	Clusters [][]string   `json:"clusters"`

	graph *Graph
}

// Graph returns the highlight index over Edges.
func (d *Derived) Graph() *Graph {
	if d == nil {
		return nil
	}
	return d.graph
}

// Derive computes the layer for mode: edges and clusters in networking mode,
// corridor segments in traffic mode, nothing otherwise.
func Derive(bs []district.Business, mode mapmode.Mode, grid geo.Grid) *Derived {
	return derive(bs, mode, grid, district.Hash(bs))
}

func derive(bs []district.Business, mode mapmode.Mode, grid geo.Grid, hash uint64) *Derived {
	d := &Derived{Mode: mode, Hash: hash}
	switch mode {
	case mapmode.Networking:
		d.Edges = SynergyEdges(bs, grid)
		d.Clusters = Clusters(d.Edges)
	case mapmode.Traffic:
		d.Segments = TrafficSegments(bs, grid)
	case mapmode.Standard, mapmode.Heatmap, mapmode.Globe:
	}
	d.graph = NewGraph(d.Edges)
	return d
}

type memoKey struct {
	hash uint64
	mode mapmode.Mode
}

// Deriver memoizes Derive on the content hash of the business list and the
// mode, so camera-only updates reuse the previous result. It is not safe for
// concurrent use; callers own one per session.
type Deriver struct {
	grid   geo.Grid
	key    memoKey
	cached *Derived
	runs   int

	// OnDerive, if set, is called after each recomputation.
	OnDerive func(mode mapmode.Mode, edges, segments int, took time.Duration)
}

// NewDeriver creates a deriver for a fixed grid.
func NewDeriver(grid geo.Grid) *Deriver {
	return &Deriver{grid: grid}
}

// Derive returns the cached layer when inputs are unchanged and rebuilds it
// from scratch otherwise.
func (d *Deriver) Derive(bs []district.Business, mode mapmode.Mode) *Derived {
	key := memoKey{hash: district.Hash(bs), mode: mode}
	if d.cached != nil && d.key == key {
		return d.cached
	}

	start := time.Now()
	out := derive(bs, mode, d.grid, key.hash)
	d.key = key
	d.cached = out
	d.runs++
	if d.OnDerive != nil {
		d.OnDerive(mode, len(out.Edges), len(out.Segments), time.Since(start))
	}
	return out
}

// Runs returns how many times the layer has been recomputed.
func (d *Deriver) Runs() int { return d.runs }

// Invalidate forces the next Derive to recompute.
func (d *Deriver) Invalidate() { d.cached = nil }
