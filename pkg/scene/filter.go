package scene

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

// Filter narrows the rendered subset. IDs is the AI search result: nil means
// no search filter is set, an empty non-nil slice means the search matched
// nothing. Category and Query are applied on top.
type Filter struct {
	IDs      []string `json:"ids,omitempty"`
	Category string   `json:"category,omitempty"`
	Query    string   `json:"query,omitempty"`
}

// Active reports whether any criterion is set.
func (f Filter) Active() bool {
	return f.IDs != nil || f.Category != "" || strings.TrimSpace(f.Query) != ""
}

// ApplyFilter returns the businesses that pass f, preserving input order.
// With no criteria set the input is returned unchanged.
func ApplyFilter(bs []district.Business, f Filter) []district.Business {
	if !f.Active() {
		return bs
	}

	var ids map[string]bool
	if f.IDs != nil {
		ids = make(map[string]bool, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = true
		}
	}
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(f.Query))

	out := make([]district.Business, 0, len(bs))
	for _, b := range bs {
		if ids != nil && !ids[b.ID] {
			continue
		}
		if f.Category != "" && !strings.EqualFold(b.Category, f.Category) {
			continue
		}
		if query != "" && !matchesQuery(fold, b, query) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesQuery(fold cases.Caser, b district.Business, query string) bool {
	for _, field := range []string{b.Name, b.Category, b.Description} {
		if strings.Contains(fold.String(field), query) {
			return true
		}
	}
	return false
}
