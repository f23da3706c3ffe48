package server

import (
	"net/http"

	"github.com/devcompany145/Business-developers-ai/pkg/analytics"
	"github.com/devcompany145/Business-developers-ai/pkg/validation"
)

func (s *Server) handleDistrict(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.Snapshot())
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	topN := queryInt(r, "top", analytics.DefaultTopN)
	summary, report := analytics.Resolve(s.sessions.Snapshot(), topN)
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":    summary,
		"validation": report,
	})
}

// handleValidation reports on the whole district, or with ?business= only
// the findings that name that business.
func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	snap := s.sessions.Snapshot()
	report := validation.ValidateSnapshot(snap)
	_, analytical := analytics.Resolve(snap, 0)
	report.Merge(analytical)

	if id := r.URL.Query().Get("business"); id != "" {
		findings := report.ForBusiness(id)
		if findings == nil {
			findings = []validation.Result{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"business_id": id, "findings": findings})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	if s.bundle == nil {
		writeJSON(w, http.StatusOK, map[string]any{"languages": []string{"en"}, "default": "en"})
		return
	}
	type lang struct {
		Tag       string `json:"tag"`
		Direction string `json:"direction"`
	}
	var out []lang
	for _, l := range s.bundle.Languages() {
		dir, _ := s.bundle.Direction(l)
		out = append(out, lang{Tag: l, Direction: dir})
	}
	writeJSON(w, http.StatusOK, map[string]any{"languages": out, "default": s.bundle.Fallback()})
}
