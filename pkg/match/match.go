// Package match ranks externally scored matches between the user's company
// and the businesses in the district, and drafts introduction messages.
// Scores are never computed here.
package match

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

// Match is one scored candidate as returned by the matching collaborator.
type Match struct {
	BusinessID string   `json:"business_id" validate:"required"`
	Score      int      `json:"score" validate:"min=0,max=100"`
	Reasons    []string `json:"reasons,omitempty"`
}

// SortBy selects the ranking key.
type SortBy string

const (
	ByScore    SortBy = "score"
	ByName     SortBy = "name"
	ByVisitors SortBy = "visitors"
)

// ParseSortBy converts s into a SortBy, defaulting to ByScore.
func ParseSortBy(s string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case ByName:
		return ByName
	case ByVisitors:
		return ByVisitors
	default:
		return ByScore
	}
}

// Band is a coarse label for a score.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
)

// BandFor buckets a score: 80 and above is excellent, 60 and above good.
func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	default:
		return BandFair
	}
}

// Options control filtering and ordering. The zero value sorts by ascending
// score; use DefaultOptions for the usual best-first list.
type Options struct {
	SortBy   SortBy `json:"sort_by"`
	Desc     bool   `json:"desc"`
	MinScore int    `json:"min_score"`
	Category string `json:"category,omitempty"`
	Query    string `json:"query,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// DefaultOptions sorts by score, best first.
func DefaultOptions() Options {
	return Options{SortBy: ByScore, Desc: true}
}

// Ranked is a match joined with its business.
type Ranked struct {
	Match
	Business district.Business `json:"business"`
	Band     Band              `json:"band"`
	Rank     int               `json:"rank"`
}

// Rank joins matches to businesses, filters and sorts them. Matches for
// unknown businesses are dropped, duplicate matches keep the higher score,
// and scores are clamped to [0, 100]. Ties fall back to the business id so
// the order is stable across calls.
func Rank(matches []Match, bs []district.Business, opts Options) []Ranked {
	byID := make(map[string]district.Business, len(bs))
	for _, b := range bs {
		byID[b.ID] = b
	}

	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(opts.Query))

	best := make(map[string]int)
	var out []Ranked
	for _, m := range matches {
		b, ok := byID[m.BusinessID]
		if !ok {
			continue
		}
		m.Score = min(max(m.Score, 0), 100)
		if m.Score < opts.MinScore {
			continue
		}
		if opts.Category != "" && !strings.EqualFold(b.Category, opts.Category) {
			continue
		}
		if query != "" && !strings.Contains(fold.String(b.Name), query) &&
			!strings.Contains(fold.String(b.Category), query) {
			continue
		}
		if i, seen := best[m.BusinessID]; seen {
			if m.Score > out[i].Score {
				out[i].Match = m
				out[i].Band = BandFor(m.Score)
			}
			continue
		}
		best[m.BusinessID] = len(out)
		out = append(out, Ranked{Match: m, Business: b, Band: BandFor(m.Score)})
	}

	less := lessFunc(opts.SortBy, fold)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if opts.Desc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return out[i].BusinessID < out[j].BusinessID
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func lessFunc(by SortBy, fold cases.Caser) func(a, b Ranked) bool {
	switch by {
	case ByName:
		return func(a, b Ranked) bool { return fold.String(a.Business.Name) < fold.String(b.Business.Name) }
	case ByVisitors:
		return func(a, b Ranked) bool { return a.Business.ActiveVisitors < b.Business.ActiveVisitors }
	default:
		return func(a, b Ranked) bool { return a.Score < b.Score }
	}
}
