package analytics

import (
	"math"
	"strings"
	"testing"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

func testSnapshot() *district.Snapshot {
	return &district.Snapshot{
		Name: "test",
		Grid: district.GridDef{Cols: 3, Rows: 3},
		Businesses: []district.Business{
			{
				ID: "a", Name: "Alpha", Category: "Tech", IsOccupied: true, ActiveVisitors: 30, Favorite: true,
				GridPosition: district.GridPosition{X: 1, Y: 1},
				Genome: &district.GenomeProfile{
					ServicesOffered: []string{"Cloud Hosting"},
					ServicesNeeded:  []string{"Legal", "marketing"},
					IndustrySector:  "Software",
					CompanySize:     "small",
				},
			},
			{
				ID: "b", Name: "Beta", Category: "Tech", IsOccupied: true, ActiveVisitors: 10,
				GridPosition: district.GridPosition{X: 3, Y: 1},
				Genome: &district.GenomeProfile{
					ServicesOffered: []string{"Marketing", "marketing"},
					ServicesNeeded:  []string{"legal"},
					IndustrySector:  "Media",
					CompanySize:     "small",
				},
			},
			{
				ID: "c", Name: "Gamma", Category: "Food", IsOccupied: true, ActiveVisitors: 0,
				GridPosition: district.GridPosition{X: 2, Y: 3},
			},
			{ID: "d", Category: "Tech", GridPosition: district.GridPosition{X: 2, Y: 2}, ActiveVisitors: 99},
		},
	}
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestResolveTotals(t *testing.T) {
	sum, report := Resolve(testSnapshot(), 0)
	if !report.Valid {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}
	if sum.Total != 4 || sum.Occupied != 3 || sum.Vacant != 1 {
		t.Errorf("counts = %d/%d/%d", sum.Total, sum.Occupied, sum.Vacant)
	}
	if !approxEqual(sum.OccupancyRate, 0.75, 1e-9) {
		t.Errorf("occupancy = %f", sum.OccupancyRate)
	}
	if sum.TotalVisitors != 40 {
		t.Errorf("vacant visitors must not count, total = %d", sum.TotalVisitors)
	}
	if !approxEqual(sum.AvgVisitors, 40.0/3, 1e-9) || sum.MaxVisitors != 30 {
		t.Errorf("avg = %f max = %d", sum.AvgVisitors, sum.MaxVisitors)
	}
	if sum.Favorites != 1 {
		t.Errorf("favorites = %d", sum.Favorites)
	}
}

func TestResolveCategories(t *testing.T) {
	sum, _ := Resolve(testSnapshot(), 0)
	if len(sum.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(sum.Categories))
	}
	tech := sum.Categories[0]
	if tech.Category != "Tech" || tech.Total != 3 || tech.Occupied != 2 || tech.Visitors != 40 {
		t.Errorf("tech = %+v", tech)
	}
}

func TestResolveBusiest(t *testing.T) {
	sum, _ := Resolve(testSnapshot(), 2)
	if len(sum.Busiest) != 2 {
		t.Fatalf("expected top 2, got %d", len(sum.Busiest))
	}
	if sum.Busiest[0].ID != "a" || sum.Busiest[1].ID != "b" {
		t.Errorf("busiest = %+v", sum.Busiest)
	}
}

func TestResolveNil(t *testing.T) {
	sum, report := Resolve(nil, 0)
	if report.Valid || sum == nil {
		t.Error("nil snapshot should return an empty summary and an invalid report")
	}
}

func TestDigest(t *testing.T) {
	sum, _ := Resolve(testSnapshot(), 0)
	d := sum.Digest()
	for _, want := range []string{
		"Buildings: 4 (3 occupied, 1 vacant, occupancy 75%)",
		"- Tech: 2/3 occupied, 40 visitors",
		"- Alpha (Tech): 30 visitors",
		"Unmet service demand: Legal",
	} {
		if !strings.Contains(d, want) {
			t.Errorf("digest missing %q:\n%s", want, d)
		}
	}
}
