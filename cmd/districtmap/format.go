package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/devcompany145/Business-developers-ai/internal/ai"
	"github.com/devcompany145/Business-developers-ai/pkg/analytics"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/match"
	"github.com/devcompany145/Business-developers-ai/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
			if e.ConflictWith != "" {
				fmt.Printf("    conflicts with: %s\n", e.ConflictWith)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	if res.BusinessID != "" {
		fmt.Printf("    business: %s\n", res.BusinessID)
	}
	if res.Path != "" {
		fmt.Printf("    -> %s = %v\n", res.Path, res.ActualValue)
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
	for _, s := range res.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

func printSummary(s *analytics.Summary) {
	fmt.Println("District Summary")
	fmt.Println("================")
	fmt.Println()
	fmt.Printf("  Businesses:        %d (%d occupied, %d vacant)\n", s.Total, s.Occupied, s.Vacant)
	fmt.Printf("  Occupancy:         %s\n", formatPercent(s.OccupancyRate))
	fmt.Printf("  Active visitors:   %d (avg %.1f, max %d)\n", s.TotalVisitors, s.AvgVisitors, s.MaxVisitors)
	fmt.Printf("  Favorites:         %d\n", s.Favorites)
	fmt.Printf("  Grid fill:         %d/%d cells (%s)\n", s.Spatial.FilledCells, s.Spatial.Cells, formatPercent(s.Spatial.FillRate))

	if len(s.Categories) > 0 {
		fmt.Println()
		fmt.Printf("%-22s %8s %10s %10s\n", "Category", "Total", "Occupied", "Visitors")
		fmt.Printf("%-22s %8s %10s %10s\n", "----------------------", "--------", "----------", "----------")
		for _, c := range s.Categories {
			fmt.Printf("%-22s %8d %10d %10d\n", truncate(c.Category, 22), c.Total, c.Occupied, c.Visitors)
		}
	}

	if len(s.Busiest) > 0 {
		fmt.Println()
		fmt.Println("Busiest")
		fmt.Println("-------")
		for i, b := range s.Busiest {
			fmt.Printf("  %2d. %-28s %6d visitors\n", i+1, truncate(b.Name, 28), b.Visitors)
		}
	}

	var unmet []string
	for _, svc := range s.Services {
		if svc.Unmet() {
			unmet = append(unmet, svc.Service)
		}
	}
	if len(unmet) > 0 {
		fmt.Println()
		fmt.Printf("  Unmet services:    %s\n", strings.Join(unmet, ", "))
	}

	if s.Profiles.Profiled > 0 {
		fmt.Println()
		fmt.Printf("  Profiled:          %d (%d without a profile)\n", s.Profiles.Profiled, s.Profiles.Unprofiled)
		fmt.Printf("  By sector:         %s\n", formatCounts(s.Profiles.BySector))
		fmt.Printf("  By size:           %s\n", formatCounts(s.Profiles.BySize))
	}
}

func printInsight(text string) {
	fmt.Println("AI Trend Analysis")
	fmt.Println("-----------------")
	fmt.Println(strings.TrimSpace(text))
}

func printSearch(query string, r *ai.SearchResult, bs []district.Business) {
	fmt.Printf("Search: %q\n", query)
	if r.Filters.Category != "" {
		fmt.Printf("  suggested category: %s\n", r.Filters.Category)
	}
	if len(r.IDs) == 0 {
		fmt.Println("  no matching businesses")
		return
	}
	for i, id := range r.IDs {
		name := id
		if b := district.ByID(bs, id); b != nil {
			name = b.Name
		}
		fmt.Printf("  %2d. %s\n", i+1, name)
	}
}

func printMatches(rs []match.Ranked) {
	if len(rs) == 0 {
		fmt.Println("No matches.")
		return
	}
	fmt.Printf("%4s  %-28s %-18s %6s  %-9s\n", "Rank", "Business", "Category", "Score", "Band")
	fmt.Printf("%4s  %-28s %-18s %6s  %-9s\n", "----", "----------------------------", "------------------", "------", "---------")
	for _, r := range rs {
		fmt.Printf("%4d  %-28s %-18s %6d  %-9s\n",
			r.Rank, truncate(r.Business.Name, 28), truncate(r.Business.Category, 18), r.Score, r.Band)
		for _, reason := range r.Reasons {
			fmt.Printf("%6s* %s\n", "", reason)
		}
	}
}

func printIntroduction(in match.Introduction) {
	fmt.Printf("To:      %s\n", in.To)
	fmt.Printf("Subject: %s\n", in.Subject)
	fmt.Println()
	fmt.Println(in.Body)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
