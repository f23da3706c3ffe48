package mapmode

import "testing"

func TestParse(t *testing.T) {
	for _, m := range All() {
		got, err := Parse(string(m))
		if err != nil {
			t.Fatalf("Parse(%q): %v", m, err)
		}
		if got != m {
			t.Errorf("Parse(%q) = %q", m, got)
		}
	}
	if _, err := Parse("satellite"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestDefaultInteraction(t *testing.T) {
	if DefaultInteraction(Globe) != Rotate {
		t.Error("globe should force rotate")
	}
	for _, m := range []Mode{Standard, Heatmap, Networking, Traffic} {
		if DefaultInteraction(m) != Pan {
			t.Errorf("%s should default to pan", m)
		}
	}
}

func TestParseInteraction(t *testing.T) {
	if _, err := ParseInteraction("zoom"); err == nil {
		t.Error("expected error for unknown interaction")
	}
	if i, _ := ParseInteraction("rotate"); i != Rotate {
		t.Errorf("got %q", i)
	}
}
