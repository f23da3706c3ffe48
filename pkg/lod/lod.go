// Package lod picks how much detail each building tile renders.
package lod

import "github.com/devcompany145/Business-developers-ai/pkg/mapmode"

// Tier is a discrete level of detail.
type Tier string

const (
	Low    Tier = "low"
	Medium Tier = "medium"
	High   Tier = "high"
)

// Zoom thresholds between tiers.
const (
	LowBelow  = 0.65
	HighAbove = 1.25
)

// Select maps the camera zoom and map mode to a tier. The globe always
// renders at low detail.
func Select(zoom float64, mode mapmode.Mode) Tier {
	switch mode {
	case mapmode.Globe:
		return Low
	case mapmode.Standard, mapmode.Heatmap, mapmode.Networking, mapmode.Traffic:
	}
	switch {
	case zoom < LowBelow:
		return Low
	case zoom > HighAbove:
		return High
	default:
		return Medium
	}
}

// Rank orders tiers from least to most detailed.
func (t Tier) Rank() int {
	switch t {
	case Medium:
		return 1
	case High:
		return 2
	default:
		return 0
	}
}

// Content lists the per-tile elements a tier renders.
type Content struct {
	Label   bool `json:"label"`
	Logo    bool `json:"logo"`
	Pulse   bool `json:"pulse"`
	Windows bool `json:"windows"`
}

// Count returns the number of enabled elements.
func (c Content) Count() int {
	n := 0
	for _, on := range []bool{c.Label, c.Logo, c.Pulse, c.Windows} {
		if on {
			n++
		}
	}
	return n
}

// Includes reports whether c renders everything o renders.
func (c Content) Includes(o Content) bool {
	return (c.Label || !o.Label) && (c.Logo || !o.Logo) &&
		(c.Pulse || !o.Pulse) && (c.Windows || !o.Windows)
}

// Content returns what a tile renders at tier t. Each tier renders a strict
// superset of the tier below it.
func (t Tier) Content() Content {
	switch t {
	case High:
		return Content{Label: true, Logo: true, Pulse: true, Windows: true}
	case Medium:
		return Content{Label: true, Logo: true}
	default:
		return Content{}
	}
}
