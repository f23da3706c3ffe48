// Package relations derives the networking graph and corridor traffic from
// the business list. Everything here is rebuilt from scratch on each call.
package relations

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/geo"
)

// EdgeType classifies a relationship.
type EdgeType string

const (
	// Synergy: one side needs a service the other offers.
	Synergy EdgeType = "synergy"
	// Industry: same category, no synergy.
	Industry EdgeType = "industry"
)

// Edge connects two businesses on the networking map.
type Edge struct {
	ID           string      `json:"id"`
	Participants [2]string   `json:"participant_ids"`
	Start        geo.Point2D `json:"start"`
	End          geo.Point2D `json:"end"`
	Type         EdgeType    `json:"type"`
}

// Has reports whether id is one of the edge's participants.
func (e Edge) Has(id string) bool {
	return e.Participants[0] == id || e.Participants[1] == id
}

// Other returns the participant that is not id.
func (e Edge) Other(id string) string {
	if e.Participants[0] == id {
		return e.Participants[1]
	}
	return e.Participants[0]
}

// profile holds case-folded service lists for one business.
type profile struct {
	b       district.Business
	offered []string
	needed  []string
}

// SynergyEdges returns at most one edge per unordered pair of occupied
// businesses that carry a genome profile. Synergy wins over industry.
// Endpoints are the businesses' grid cell centers.
func SynergyEdges(bs []district.Business, grid geo.Grid) []Edge {
	fold := cases.Fold()
	foldAll := func(items []string) []string {
		out := make([]string, 0, len(items))
		for _, s := range items {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			out = append(out, fold.String(s))
		}
		return out
	}

	profiles := make([]profile, 0, len(bs))
	for _, b := range bs {
		if !b.IsOccupied || b.Genome == nil {
			continue
		}
		profiles = append(profiles, profile{
			b:       b,
			offered: foldAll(b.Genome.ServicesOffered),
			needed:  foldAll(b.Genome.ServicesNeeded),
		})
	}

	var edges []Edge
	for i := 0; i < len(profiles); i++ {
		a := profiles[i]
		for j := i + 1; j < len(profiles); j++ {
			b := profiles[j]

			var typ EdgeType
			switch {
			case servicesMatch(a.needed, b.offered) || servicesMatch(b.needed, a.offered):
				typ = Synergy
			// A missing category is not an industry.
			case a.b.Category != "" && a.b.Category == b.b.Category:
				typ = Industry
			default:
				continue
			}

			edges = append(edges, Edge{
				ID:           "edge-" + a.b.ID + "-" + b.b.ID,
				Participants: [2]string{a.b.ID, b.b.ID},
				Start:        grid.CellCenter(a.b.GridPosition.X, a.b.GridPosition.Y),
				End:          grid.CellCenter(b.b.GridPosition.X, b.b.GridPosition.Y),
				Type:         typ,
			})
		}
	}
	return edges
}

// servicesMatch reports whether any needed service contains, or is contained
// by, any offered service. Inputs are already case-folded.
func servicesMatch(needed, offered []string) bool {
	for _, n := range needed {
		for _, o := range offered {
			if strings.Contains(n, o) || strings.Contains(o, n) {
				return true
			}
		}
	}
	return false
}
