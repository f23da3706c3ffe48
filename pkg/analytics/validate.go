package analytics

import (
	"fmt"

	"github.com/devcompany145/Business-developers-ai/pkg/validation"
)

const (
	// lowOccupancy is the occupancy rate below which a district is flagged.
	lowOccupancy = 0.3
	// dominantShare is the share of occupied tiles above which one category
	// is reported as dominant.
	dominantShare = 0.5
	// minForShares avoids share-based findings on tiny districts.
	minForShares = 4
)

// validateAnalytical runs the analytical checks on a resolved summary.
func validateAnalytical(s *Summary, report *validation.Report) {
	validateOccupancy(s, report)
	validateCategoryMix(s, report)
	validateServiceDemand(s, report)
	validateProfiles(s, report)
	validateSpatial(s, report)
}

func validateOccupancy(s *Summary, report *validation.Report) {
	if s.Total >= minForShares && s.OccupancyRate < lowOccupancy {
		report.AddWarning(validation.Result{
			Level:       validation.LevelAnalytical,
			Message:     fmt.Sprintf("occupancy %.0f%% is below %.0f%%", s.OccupancyRate*100, lowOccupancy*100),
			Path:        "businesses",
			ActualValue: s.OccupancyRate,
			Expected:    fmt.Sprintf(">= %.2f", lowOccupancy),
			Suggestions: []string{"Promote vacant buildings to prospective tenants"},
		})
	}
}

func validateCategoryMix(s *Summary, report *validation.Report) {
	if s.Occupied < minForShares {
		return
	}
	for _, c := range s.Categories {
		share := float64(c.Occupied) / float64(s.Occupied)
		if share > dominantShare {
			report.AddInfo(validation.Result{
				Level:       validation.LevelAnalytical,
				Message:     fmt.Sprintf("category %q holds %.0f%% of occupied buildings", c.Category, share*100),
				Path:        "businesses.category",
				ActualValue: share,
			})
		}
	}
}

func validateServiceDemand(s *Summary, report *validation.Report) {
	for _, svc := range s.Services {
		if !svc.Unmet() {
			continue
		}
		report.AddInfo(validation.Result{
			Level:       validation.LevelAnalytical,
			Message:     fmt.Sprintf("%d businesses need %q and nobody in the district offers it", svc.Needed, svc.Service),
			Path:        "businesses.genome_profile.services_needed",
			ActualValue: svc.Service,
			Suggestions: []string{fmt.Sprintf("Recruit a tenant offering %s", svc.Service)},
		})
	}
}

func validateProfiles(s *Summary, report *validation.Report) {
	if s.Occupied > 0 && s.Profiles.Profiled == 0 {
		report.AddInfo(validation.Result{
			Level:   validation.LevelAnalytical,
			Message: "no occupied business has a genome profile; the networking map will be empty",
			Path:    "businesses.genome_profile",
		})
	}
}

func validateSpatial(s *Summary, report *validation.Report) {
	if s.Spatial.SharedCells > 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%d grid cells hold more than one occupied business", s.Spatial.SharedCells),
			Path:        "businesses.grid_position",
			ActualValue: s.Spatial.SharedCells,
		})
	}
	if s.Spatial.OutOfGrid > 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%d businesses sit outside the grid", s.Spatial.OutOfGrid),
			Path:        "businesses.grid_position",
			ActualValue: s.Spatial.OutOfGrid,
		})
	}
}
