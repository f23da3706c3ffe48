package analytics

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

func resolveProfiles(bs []district.Business) ProfileBreakdown {
	p := ProfileBreakdown{
		BySector: make(map[string]int),
		BySize:   make(map[string]int),
	}
	for _, b := range bs {
		if !b.IsOccupied {
			continue
		}
		if b.Genome == nil {
			p.Unprofiled++
			continue
		}
		p.Profiled++
		if sector := strings.TrimSpace(b.Genome.IndustrySector); sector != "" {
			p.BySector[sector]++
		}
		if size := strings.TrimSpace(b.Genome.CompanySize); size != "" {
			p.BySize[size]++
		}
	}
	return p
}

// resolveServices tallies services across occupied, profiled businesses.
// Names are grouped case-insensitively and reported as first written.
// Unmet demand sorts first, then by demand.
func resolveServices(bs []district.Business) []ServiceBalance {
	fold := cases.Fold()
	index := make(map[string]int)
	var out []ServiceBalance

	tally := func(services []string, needed bool) {
		seen := make(map[string]bool, len(services))
		for _, svc := range services {
			svc = strings.TrimSpace(svc)
			if svc == "" {
				continue
			}
			key := fold.String(svc)
			if seen[key] {
				continue
			}
			seen[key] = true
			i, ok := index[key]
			if !ok {
				i = len(out)
				index[key] = i
				out = append(out, ServiceBalance{Service: svc})
			}
			if needed {
				out[i].Needed++
			} else {
				out[i].Offered++
			}
		}
	}

	for _, b := range bs {
		if !b.IsOccupied || b.Genome == nil {
			continue
		}
		tally(b.Genome.ServicesOffered, false)
		tally(b.Genome.ServicesNeeded, true)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Unmet() != out[j].Unmet() {
			return out[i].Unmet()
		}
		if out[i].Needed != out[j].Needed {
			return out[i].Needed > out[j].Needed
		}
		return out[i].Service < out[j].Service
	})
	return out
}
