package scene

import (
	"fmt"

	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/validation"
)

// ValidateFrame performs structural validation on a composed frame. It checks
// tile integrity, group index consistency, edge endpoints and LOD content.
func ValidateFrame(f *Frame) *validation.Report {
	r := validation.NewReport()

	if f == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelScene,
			Message: "frame is nil",
		})
		return r
	}

	validateTileIDs(f, r)
	validateGroupIndices(f, r)
	validateEdges(f, r)
	validateTiles(f, r)

	return r
}

func validateTileIDs(f *Frame, r *validation.Report) {
	seen := make(map[string]int, len(f.Tiles))

	for i, t := range f.Tiles {
		if t.ID == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("tile at index %d has empty ID", i),
				Path:        fmt.Sprintf("tiles[%d].id", i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[t.ID]; exists {
			r.AddError(validation.Result{
				Level:        validation.LevelScene,
				Message:      fmt.Sprintf("duplicate tile ID %q at indices %d and %d", t.ID, prev, i),
				Path:         fmt.Sprintf("tiles[%d].id", i),
				BusinessID:   t.ID,
				ConflictWith: fmt.Sprintf("tiles[%d]", prev),
			})
		}
		seen[t.ID] = i
	}
}

func validateGroupIndices(f *Frame, r *validation.Report) {
	tiles := make(map[string]*Tile, len(f.Tiles))
	for i := range f.Tiles {
		tiles[f.Tiles[i].ID] = &f.Tiles[i]
	}

	checkGroup := func(groupType, groupName string, ids []string, belongs func(*Tile) bool) {
		for _, id := range ids {
			t, ok := tiles[id]
			if !ok {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("group %s.%s references non-existent tile %q", groupType, groupName, id),
					Path:        fmt.Sprintf("groups.%s.%s", groupType, groupName),
					ActualValue: id,
					Expected:    "existing tile ID",
				})
				continue
			}
			if !belongs(t) {
				r.AddError(validation.Result{
					Level:      validation.LevelScene,
					Message:    fmt.Sprintf("tile %q is listed in %s.%s but does not belong there", id, groupType, groupName),
					Path:       fmt.Sprintf("groups.%s.%s", groupType, groupName),
					BusinessID: id,
				})
			}
		}
	}

	for name, ids := range f.Groups.Categories {
		checkGroup("categories", name, ids, func(t *Tile) bool { return t.Category == name })
	}
	for name, ids := range f.Groups.Statuses {
		checkGroup("statuses", name, ids, func(t *Tile) bool { return t.Status.Key == name })
	}
}

func validateEdges(f *Frame, r *validation.Report) {
	rendered := make(map[string]bool, len(f.Tiles))
	for _, t := range f.Tiles {
		rendered[t.ID] = true
	}
	for i, e := range f.Edges {
		for _, id := range e.Participants {
			if !rendered[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("edge %q references tile %q that is not rendered", e.ID, id),
					Path:        fmt.Sprintf("edges[%d]", i),
					ActualValue: id,
				})
			}
		}
	}
	if f.Mode != mapmode.Networking && len(f.Edges) > 0 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelScene,
			Message:     fmt.Sprintf("%d edges present outside networking mode", len(f.Edges)),
			Path:        "edges",
			ActualValue: string(f.Mode),
		})
	}
}

func validateTiles(f *Frame, r *validation.Report) {
	for i, t := range f.Tiles {
		if t.Placement.Size <= 0 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("tile %q has zero or negative size %.2f", t.ID, t.Placement.Size),
				Path:        fmt.Sprintf("tiles[%d].placement.size", i),
				BusinessID:  t.ID,
				ActualValue: t.Placement.Size,
				Expected:    "> 0",
			})
		}
		if t.Content != t.LOD.Content() {
			r.AddError(validation.Result{
				Level:      validation.LevelScene,
				Message:    fmt.Sprintf("tile %q content does not match its %s detail tier", t.ID, t.LOD),
				Path:       fmt.Sprintf("tiles[%d].content", i),
				BusinessID: t.ID,
			})
		}
		if t.Banner && f.Mode == mapmode.Globe {
			r.AddError(validation.Result{
				Level:      validation.LevelScene,
				Message:    fmt.Sprintf("tile %q shows a status banner on the globe", t.ID),
				Path:       fmt.Sprintf("tiles[%d].banner", i),
				BusinessID: t.ID,
			})
		}
	}
}
