package scene2d

import (
	"testing"

	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/scene"
)

func TestLegendHeatmap(t *testing.T) {
	s := Assemble2D(frameFor(mapmode.Heatmap, ""), testGrid(), nil)
	l := s.Legend
	if l.MinVisitors != 0 || l.MaxVisitors != 30 {
		t.Errorf("visitor range = %d..%d, want 0..30", l.MinVisitors, l.MaxVisitors)
	}
	if len(l.Entries) != 4 {
		t.Fatalf("expected 3 heat swatches plus vacant, got %d", len(l.Entries))
	}
	if l.Entries[2].Color != scene.HeatColor(1) || l.Entries[2].Max != scene.HeatmapSaturation {
		t.Errorf("hottest swatch = %+v", l.Entries[2])
	}
}

func TestLegendTraffic(t *testing.T) {
	s := Assemble2D(frameFor(mapmode.Traffic, ""), testGrid(), nil)
	e := s.Legend.Entries
	if len(e) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(e))
	}
	if e[1].Min != 21 || e[1].Max != 40 {
		t.Errorf("moderate range = %d..%d", e[1].Min, e[1].Max)
	}
	if e[2].Min != 41 {
		t.Errorf("severe starts at %d", e[2].Min)
	}
}

func TestLegendTranslated(t *testing.T) {
	tr := func(key string) string { return "<" + key + ">" }
	s := Assemble2D(frameFor(mapmode.Networking, ""), testGrid(), tr)
	for _, e := range s.Legend.Entries {
		if e.Label != "<"+e.Key+">" {
			t.Errorf("entry %s label = %q", e.Key, e.Label)
		}
	}
}

func TestVisitorRangeNoOccupied(t *testing.T) {
	lo, hi := visitorRange([]scene.Tile{{ID: "x", Visitors: 9}})
	if lo != 0 || hi != 0 {
		t.Errorf("got %d..%d", lo, hi)
	}
}
