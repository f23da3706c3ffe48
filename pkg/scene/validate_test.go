package scene

import (
	"testing"

	"github.com/devcompany145/Business-developers-ai/pkg/lod"
	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/relations"
)

func TestValidateFrame_Valid(t *testing.T) {
	for _, m := range mapmode.All() {
		r := ValidateFrame(Compose(testInput(m)))
		if !r.Valid {
			t.Errorf("%s: expected valid, got %d errors", m, len(r.Errors))
			for _, e := range r.Errors {
				t.Logf("  error: %s", e.Message)
			}
		}
	}
}

func TestValidateFrame_Nil(t *testing.T) {
	r := ValidateFrame(nil)
	if r.Valid {
		t.Error("expected invalid for nil frame")
	}
}

func TestValidateFrame_DuplicateID(t *testing.T) {
	f := Compose(testInput(mapmode.Standard))
	f.Tiles = append(f.Tiles, f.Tiles[0])
	r := ValidateFrame(f)
	if r.Valid {
		t.Error("expected invalid for duplicate tile IDs")
	}
}

func TestValidateFrame_EmptyID(t *testing.T) {
	f := Compose(testInput(mapmode.Standard))
	f.Tiles[0].ID = ""
	if ValidateFrame(f).Valid {
		t.Error("expected invalid for empty tile ID")
	}
}

func TestValidateFrame_BadGroupRef(t *testing.T) {
	f := Compose(testInput(mapmode.Standard))
	f.Groups.Categories["Tech"] = append(f.Groups.Categories["Tech"], "ghost")
	r := ValidateFrame(f)
	if r.Valid {
		t.Error("expected invalid for group referencing non-existent tile")
	}
}

func TestValidateFrame_WrongGroup(t *testing.T) {
	f := Compose(testInput(mapmode.Standard))
	f.Groups.Categories["Food"] = append(f.Groups.Categories["Food"], "a")
	if ValidateFrame(f).Valid {
		t.Error("expected invalid for tile listed under the wrong category")
	}
}

func TestValidateFrame_DanglingEdge(t *testing.T) {
	f := Compose(testInput(mapmode.Networking))
	f.Edges = append(f.Edges, relations.Edge{ID: "edge-a-ghost", Participants: [2]string{"a", "ghost"}})
	r := ValidateFrame(f)
	if r.Valid {
		t.Error("expected invalid for edge referencing a missing tile")
	}
}

func TestValidateFrame_EdgesOutsideNetworking(t *testing.T) {
	f := Compose(testInput(mapmode.Standard))
	f.Edges = append(f.Edges, relations.Edge{ID: "edge-a-b", Participants: [2]string{"a", "b"}})
	r := ValidateFrame(f)
	if !r.Valid {
		t.Error("stray edges outside networking mode should only warn")
	}
	if len(r.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(r.Warnings))
	}
}

func TestValidateFrame_ContentMismatch(t *testing.T) {
	f := Compose(testInput(mapmode.Standard))
	f.Tiles[0].LOD = lod.Low
	if ValidateFrame(f).Valid {
		t.Error("expected invalid when content exceeds the tile's tier")
	}
}

func TestValidateFrame_GlobeBanner(t *testing.T) {
	f := Compose(testInput(mapmode.Globe))
	f.Tiles[0].Banner = true
	if ValidateFrame(f).Valid {
		t.Error("expected invalid for a banner on the globe")
	}
}

func TestValidateFrame_ZeroSize(t *testing.T) {
	f := Compose(testInput(mapmode.Standard))
	f.Tiles[0].Placement.Size = 0
	r := ValidateFrame(f)
	if !r.Valid || len(r.Warnings) == 0 {
		t.Error("zero-size tile should produce a warning only")
	}
}
