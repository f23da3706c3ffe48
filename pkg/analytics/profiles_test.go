package analytics

import "testing"

func TestResolveProfiles(t *testing.T) {
	p := resolveProfiles(testSnapshot().Businesses)
	if p.Profiled != 2 || p.Unprofiled != 1 {
		t.Errorf("profiled = %d unprofiled = %d", p.Profiled, p.Unprofiled)
	}
	if p.BySize["small"] != 2 {
		t.Errorf("by size = %v", p.BySize)
	}
	if p.BySector["Software"] != 1 || p.BySector["Media"] != 1 {
		t.Errorf("by sector = %v", p.BySector)
	}
}

func TestResolveServices(t *testing.T) {
	svcs := resolveServices(testSnapshot().Businesses)
	if len(svcs) != 3 {
		t.Fatalf("expected 3 services, got %+v", svcs)
	}
	legal := svcs[0]
	if legal.Service != "Legal" || legal.Needed != 2 || legal.Offered != 0 || !legal.Unmet() {
		t.Errorf("unmet demand should sort first, got %+v", legal)
	}
	// "marketing" is needed by a and offered by b; b's duplicate entry counts once.
	mkt := svcs[1]
	if mkt.Service != "marketing" || mkt.Needed != 1 || mkt.Offered != 1 || mkt.Unmet() {
		t.Errorf("marketing = %+v", mkt)
	}
	if svcs[2].Service != "Cloud Hosting" || svcs[2].Needed != 0 {
		t.Errorf("cloud hosting = %+v", svcs[2])
	}
}
