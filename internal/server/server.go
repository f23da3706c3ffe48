// Package server exposes district map sessions over HTTP and streams
// gestures over a WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/devcompany145/Business-developers-ai/internal/i18n"
	"github.com/devcompany145/Business-developers-ai/internal/logging"
	"github.com/devcompany145/Business-developers-ai/internal/metrics"
	"github.com/devcompany145/Business-developers-ai/internal/session"
	"github.com/devcompany145/Business-developers-ai/internal/store"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/validation"
)

// Config holds server configuration.
type Config struct {
	Addr           string
	AllowedOrigins []string
	// RequestTimeout bounds every API request except the gesture stream.
	RequestTimeout time.Duration
}

// Server is the district map HTTP API.
type Server struct {
	cfg        Config
	sessions   *session.Manager
	bundle     *i18n.Bundle
	metrics    *metrics.Registry
	logger     logging.Logger
	validate   *validator.Validate
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. bundle and reg may be nil.
func New(cfg Config, sessions *session.Manager, bundle *i18n.Bundle, reg *metrics.Registry, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		bundle:   bundle,
		metrics:  reg,
		logger:   logger.Named("http"),
		validate: validator.New(),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.Len()})
	})
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/sessions/{id}/gestures", s.handleGestures)

		r.Group(func(r chi.Router) {
			if s.cfg.RequestTimeout > 0 {
				r.Use(middleware.Timeout(s.cfg.RequestTimeout))
			}
			r.Get("/district", s.handleDistrict)
			r.Get("/analytics", s.handleAnalytics)
			r.Get("/validation", s.handleValidation)
			r.Get("/languages", s.handleLanguages)

			r.Post("/sessions", s.handleCreateSession)
			r.Route("/sessions/{id}", s.sessionRoutes)
		})
	})
	return r
}

func (s *Server) sessionRoutes(r chi.Router) {
	r.Get("/", s.withSession(s.handleState))
	r.Delete("/", s.handleCloseSession)
	r.Get("/frame", s.withSession(s.handleFrame))
	r.Get("/frame2d", s.withSession(s.handleFrame2D))
	r.Get("/validation", s.withSession(s.handleSessionValidation))

	r.Put("/mode", s.withSession(s.handleMode))
	r.Put("/interaction", s.withSession(s.handleInteraction))
	r.Post("/events", s.withSession(s.handleEvents))
	r.Post("/zoom", s.withSession(s.handleZoom))

	r.Put("/selection", s.withSession(s.handleSelect))
	r.Put("/hover", s.withSession(s.handleHover))
	r.Put("/filter", s.withSession(s.handleFilter))
	r.Delete("/filter", s.withSession(s.handleClearFilter))

	r.Post("/search", s.withSession(s.handleSearch))
	r.Post("/analyze", s.withSession(s.handleAnalyze))
	r.Post("/insights", s.withSession(s.handleInsights))
	r.Post("/matches", s.withSession(s.handleFindMatches))
	r.Get("/matches", s.withSession(s.handleMatches))
	r.Post("/introductions", s.withSession(s.handleIntroduce))

	r.Post("/businesses", s.withSession(s.handleAddBusiness))
	r.Put("/businesses/{bid}", s.withSession(s.handleUpdateBusiness))
	r.Post("/businesses/{bid}/rent", s.withSession(s.handleRent))
	r.Post("/businesses/{bid}/favorite", s.withSession(s.handleFavorite))
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.logger.Info("listening", logging.String("addr", s.cfg.Addr))
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// instrument records request metrics and logs each request.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		s.metrics.HTTPRequestsInFlight.Inc()
		defer s.metrics.HTTPRequestsInFlight.Dec()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		took := time.Since(start)
		s.metrics.RecordHTTPRequest(r.Method, route, status, took)
		s.logger.Debug("request",
			logging.String("method", r.Method),
			logging.String("route", route),
			logging.Int("status", status),
			logging.Duration("took", took),
			logging.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session)

func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Get(chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		h(w, r, sess)
	}
}

// decode reads a JSON body into v and runs struct-tag validation.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

var errBadRequest = errors.New("bad request")

func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, session.ErrUnknownSession),
		errors.Is(err, district.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrOccupied), errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, errBadRequest), errors.Is(err, session.ErrNoSelection),
		errors.Is(err, validation.ErrInvalid), errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", logging.Err(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
