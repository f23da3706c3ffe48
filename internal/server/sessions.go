package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/devcompany145/Business-developers-ai/internal/logging"
	"github.com/devcompany145/Business-developers-ai/internal/session"
	"github.com/devcompany145/Business-developers-ai/pkg/camera"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/match"
)

type createSessionRequest struct {
	Language string `json:"language"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength > 0 {
		if err := s.decode(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
	}
	accept := req.Language
	if accept == "" {
		accept = r.Header.Get("Accept-Language")
	}
	lang := "en"
	if s.bundle != nil {
		lang = s.bundle.Negotiate(accept)
	}
	sess := s.sessions.Create(lang)
	writeJSON(w, http.StatusCreated, sess.State())
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.State())
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.Frame())
}

func (s *Server) handleFrame2D(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	_, flat := sess.Frame2D()
	writeJSON(w, http.StatusOK, flat)
}

func (s *Server) handleSessionValidation(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.Validate())
}

type modeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=standard heatmap networking traffic globe"`
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req modeRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := sess.SetMode(mapmode.Mode(req.Mode)); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

type interactionRequest struct {
	Interaction string `json:"interaction" validate:"required,oneof=pan rotate"`
}

func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req interactionRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := sess.SetInteraction(mapmode.Interaction(req.Interaction)); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

type eventsRequest struct {
	Events []camera.Event `json:"events" validate:"required,min=1,dive"`
}

type viewResponse struct {
	View    camera.View  `json:"view"`
	Changed bool         `json:"changed"`
	Gesture camera.State `json:"gesture"`
}

// handleEvents applies a batch of input events in order.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req eventsRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	var resp viewResponse
	for _, ev := range req.Events {
		v, changed := sess.HandleEvent(ev)
		resp.View = v
		resp.Changed = resp.Changed || changed
	}
	resp.Gesture = sess.State().Gesture
	writeJSON(w, http.StatusOK, resp)
}

type zoomRequest struct {
	Direction string `json:"direction" validate:"required,oneof=in out reset"`
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req zoomRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	var v camera.View
	switch req.Direction {
	case "in":
		v = sess.ZoomIn()
	case "out":
		v = sess.ZoomOut()
	default:
		v = sess.ResetView()
	}
	writeJSON(w, http.StatusOK, viewResponse{View: v, Changed: true, Gesture: sess.State().Gesture})
}

type idRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req idRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	b, err := sess.Select(req.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"selected": b})
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req idRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := sess.Hover(req.ID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type filterRequest struct {
	Category string `json:"category" validate:"max=64"`
	Query    string `json:"query" validate:"max=256"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req filterRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sess.SetCategory(req.Category)
	sess.SetQuery(req.Query)
	writeJSON(w, http.StatusOK, sess.State())
}

func (s *Server) handleClearFilter(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sess.ClearFilter()
	writeJSON(w, http.StatusOK, sess.State())
}

type searchRequest struct {
	Query string `json:"query" validate:"max=512"`
}

// searchResponse carries only the ids installed as the session filter.
type searchResponse struct {
	IDs      []string `json:"ids"`
	Degraded bool     `json:"degraded"`
	Error    string   `json:"error,omitempty"`
}

// handleSearch never fails on collaborator errors: the map keeps rendering
// the unfiltered list and the response is marked degraded.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req searchRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.search(r, sess, req.Query))
}

func (s *Server) search(r *http.Request, sess *session.Session, query string) searchResponse {
	res, err := sess.Search(r.Context(), query)
	if err != nil {
		return searchResponse{Degraded: true, Error: err.Error()}
	}
	return searchResponse{IDs: res.IDs}
}

type analyzeResponse struct {
	Insight  string `json:"insight"`
	Degraded bool   `json:"degraded"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, s.analyze(r, sess))
}

func (s *Server) analyze(r *http.Request, sess *session.Session) analyzeResponse {
	text, err := sess.Analyze(r.Context())
	if err != nil {
		return analyzeResponse{Insight: text, Degraded: true, Error: err.Error()}
	}
	return analyzeResponse{Insight: text}
}

// handleInsights runs search and analysis concurrently. Each degrades on
// its own; neither cancels the other.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req searchRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var (
		g        errgroup.Group
		search   searchResponse
		analysis analyzeResponse
	)
	g.Go(func() error {
		search = s.search(r, sess, req.Query)
		return nil
	})
	g.Go(func() error {
		analysis = s.analyze(r, sess)
		return nil
	})
	_ = g.Wait()

	writeJSON(w, http.StatusOK, map[string]any{
		"search":   search,
		"analysis": analysis,
		"state":    sess.State(),
	})
}

type findMatchesRequest struct {
	Profile match.Profile `json:"profile"`
}

func (s *Server) handleFindMatches(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req findMatchesRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := sess.FindMatches(r.Context(), req.Profile); err != nil {
		s.logger.Warn("matching failed", logging.String("session", sess.ID()), logging.Err(err))
		writeJSON(w, http.StatusOK, map[string]any{"matches": []match.Ranked{}, "degraded": true, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": sess.Matches(match.DefaultOptions()), "degraded": false})
}

// handleMatches ranks the last result. Query parameters: sort_by, desc,
// min_score, category, q, limit.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	q := r.URL.Query()
	opts := match.DefaultOptions()
	if v := q.Get("sort_by"); v != "" {
		opts.SortBy = match.ParseSortBy(v)
	}
	if v := q.Get("desc"); v != "" {
		opts.Desc, _ = strconv.ParseBool(v)
	}
	opts.MinScore = queryInt(r, "min_score", 0)
	opts.Limit = queryInt(r, "limit", 0)
	opts.Category = q.Get("category")
	opts.Query = q.Get("q")
	writeJSON(w, http.StatusOK, map[string]any{"matches": sess.Matches(opts)})
}

type introduceRequest struct {
	Profile    match.Profile `json:"profile"`
	BusinessID string        `json:"business_id" validate:"required"`
}

func (s *Server) handleIntroduce(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req introduceRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	intro, err := sess.Introduce(req.Profile, req.BusinessID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, intro)
}

func (s *Server) handleAddBusiness(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var b district.Business
	if err := decodeBusiness(r, &b); err != nil {
		s.writeError(w, err)
		return
	}
	out, err := sess.Add(r.Context(), b)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleUpdateBusiness(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var b district.Business
	if err := decodeBusiness(r, &b); err != nil {
		s.writeError(w, err)
		return
	}
	b.ID = chi.URLParam(r, "bid")
	out, err := sess.Update(r.Context(), b)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRent(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	b, err := sess.Rent(r.Context(), chi.URLParam(r, "bid"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	fav, err := sess.ToggleFavorite(r.Context(), chi.URLParam(r, "bid"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": fav})
}
