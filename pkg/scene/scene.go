// Package scene composes the per-frame render state of the district map:
// where every tile goes, how much of it to draw, what color it is and how
// it relates to the focused business.
package scene

import (
	"github.com/devcompany145/Business-developers-ai/pkg/camera"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/geo"
	"github.com/devcompany145/Business-developers-ai/pkg/lod"
	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/relations"
)

// TrafficLevel buckets a business's visitor count in traffic mode.
type TrafficLevel string

const (
	TrafficNominal  TrafficLevel = "nominal"
	TrafficModerate TrafficLevel = "moderate"
	TrafficSevere   TrafficLevel = "severe"
)

// Status is the mode-dependent look of a tile.
type Status struct {
	Key       string       `json:"key"`
	Label     string       `json:"label"`
	Color     string       `json:"color"`
	Intensity float64      `json:"intensity,omitempty"`
	Level     TrafficLevel `json:"level,omitempty"`
}

// Tile is the render state of one business.
type Tile struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Category     string                `json:"category"`
	Logo         string                `json:"logo,omitempty"`
	GridPosition district.GridPosition `json:"grid_position"`
	Occupied     bool                  `json:"occupied"`
	Visitors     int                   `json:"visitors"`
	Favorite     bool                  `json:"favorite,omitempty"`
	Placement    geo.Placement         `json:"placement"`
	LOD          lod.Tier              `json:"lod"`
	Content      lod.Content           `json:"content"`
	Status       Status                `json:"status"`
	Selected     bool                  `json:"selected,omitempty"`
	Hovered      bool                  `json:"hovered,omitempty"`
	Related      bool                  `json:"related"`
	RelationType relations.EdgeType    `json:"relation_type,omitempty"`
	Dimmed       bool                  `json:"dimmed,omitempty"`
	Banner       bool                  `json:"banner"`
}

// BoundingBox is an axis-aligned box around the rendered tiles.
type BoundingBox struct {
	Min geo.Vec3 `json:"min"`
	Max geo.Vec3 `json:"max"`
}

// Metadata holds frame-level information.
type Metadata struct {
	Hash        uint64      `json:"hash"`
	GeneratedAt string      `json:"generated_at"`
	Total       int         `json:"total"`
	Rendered    int         `json:"rendered"`
	Bounds      BoundingBox `json:"bounds"`
}

// Groups index tile IDs for fast filtering on the client.
type Groups struct {
	Categories map[string][]string `json:"categories"`
	Statuses   map[string][]string `json:"statuses"`
}

// Frame is everything a renderer needs for one draw of the map.
type Frame struct {
	Metadata    Metadata            `json:"metadata"`
	Mode        mapmode.Mode        `json:"mode"`
	Interaction mapmode.Interaction `json:"interaction"`
	View        camera.View         `json:"view"`
	LOD         lod.Tier            `json:"lod"`
	Focus       string              `json:"focus,omitempty"`
	Filter      Filter              `json:"filter"`
	Tiles       []Tile              `json:"tiles"`
	Edges       []relations.Edge    `json:"edges"`
	Segments    []relations.Segment `json:"segments"`
	Clusters    [][]string          `json:"clusters,omitempty"`
	Groups      Groups              `json:"groups"`
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{
		Tiles:    []Tile{},
		Edges:    []relations.Edge{},
		Segments: []relations.Segment{},
		Groups: Groups{
			Categories: make(map[string][]string),
			Statuses:   make(map[string][]string),
		},
	}
}

// Tile returns the tile with the given id, or nil.
func (f *Frame) Tile(id string) *Tile {
	for i := range f.Tiles {
		if f.Tiles[i].ID == id {
			return &f.Tiles[i]
		}
	}
	return nil
}

// addTile appends t and registers it in the group indices.
func addTile(f *Frame, t Tile) {
	f.Tiles = append(f.Tiles, t)
	if t.Category != "" {
		f.Groups.Categories[t.Category] = append(f.Groups.Categories[t.Category], t.ID)
	}
	f.Groups.Statuses[t.Status.Key] = append(f.Groups.Statuses[t.Status.Key], t.ID)
}
