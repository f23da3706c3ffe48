// Package analytics digests a district snapshot into occupancy, traffic,
// service-balance and spatial statistics.
package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/validation"
)

// DefaultTopN is the length of the busiest-businesses ranking.
const DefaultTopN = 5

// Resolve computes the district summary and runs the analytical checks.
// topN <= 0 uses DefaultTopN.
func Resolve(s *district.Snapshot, topN int) (*Summary, *validation.Report) {
	report := validation.NewReport()
	if s == nil {
		report.AddError(validation.Result{
			Level:   validation.LevelAnalytical,
			Message: "district snapshot is nil",
		})
		return &Summary{}, report
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	bs := s.Businesses
	sum := &Summary{Total: len(bs)}

	// 1. Occupancy and traffic
	for _, b := range bs {
		if b.Favorite {
			sum.Favorites++
		}
		if !b.IsOccupied {
			continue
		}
		sum.Occupied++
		sum.TotalVisitors += b.ActiveVisitors
		sum.MaxVisitors = max(sum.MaxVisitors, b.ActiveVisitors)
	}
	sum.Vacant = sum.Total - sum.Occupied
	if sum.Total > 0 {
		sum.OccupancyRate = float64(sum.Occupied) / float64(sum.Total)
	}
	if sum.Occupied > 0 {
		sum.AvgVisitors = float64(sum.TotalVisitors) / float64(sum.Occupied)
	}

	// 2. Categories and ranking
	sum.Categories = resolveCategories(bs)
	sum.Busiest = resolveBusiest(bs, topN)

	// 3. Genome profiles and service balance
	sum.Profiles = resolveProfiles(bs)
	sum.Services = resolveServices(bs)

	// 4. Spatial fill
	sum.Spatial = resolveSpatial(bs, s.Grid)

	validateAnalytical(sum, report)
	return sum, report
}

func resolveCategories(bs []district.Business) []CategoryStat {
	index := make(map[string]int)
	var stats []CategoryStat
	for _, b := range bs {
		cat := b.Category
		if cat == "" {
			cat = "uncategorized"
		}
		i, ok := index[cat]
		if !ok {
			i = len(stats)
			index[cat] = i
			stats = append(stats, CategoryStat{Category: cat})
		}
		stats[i].Total++
		if b.IsOccupied {
			stats[i].Occupied++
			stats[i].Visitors += b.ActiveVisitors
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Occupied != stats[j].Occupied {
			return stats[i].Occupied > stats[j].Occupied
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// resolveBusiest ranks occupied businesses by visitors, ties by id.
func resolveBusiest(bs []district.Business, topN int) []BusyTile {
	var ranked []BusyTile
	for _, b := range bs {
		if b.IsOccupied {
			ranked = append(ranked, BusyTile{ID: b.ID, Name: b.Name, Category: b.Category, Visitors: b.ActiveVisitors})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Visitors != ranked[j].Visitors {
			return ranked[i].Visitors > ranked[j].Visitors
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Digest renders the summary as plain text for the trend-analysis prompt.
func (s *Summary) Digest() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Buildings: %d (%d occupied, %d vacant, occupancy %.0f%%)\n",
		s.Total, s.Occupied, s.Vacant, s.OccupancyRate*100)
	fmt.Fprintf(&b, "Active visitors: %d total, %.1f average, %d peak\n",
		s.TotalVisitors, s.AvgVisitors, s.MaxVisitors)
	if len(s.Categories) > 0 {
		b.WriteString("Categories:\n")
		for _, c := range s.Categories {
			fmt.Fprintf(&b, "- %s: %d/%d occupied, %d visitors\n", c.Category, c.Occupied, c.Total, c.Visitors)
		}
	}
	if len(s.Busiest) > 0 {
		b.WriteString("Busiest:\n")
		for _, t := range s.Busiest {
			fmt.Fprintf(&b, "- %s (%s): %d visitors\n", t.Name, t.Category, t.Visitors)
		}
	}
	var unmet []string
	for _, svc := range s.Services {
		if svc.Unmet() {
			unmet = append(unmet, svc.Service)
		}
	}
	if len(unmet) > 0 {
		fmt.Fprintf(&b, "Unmet service demand: %s\n", strings.Join(unmet, ", "))
	}
	return b.String()
}
