// Package session owns the interactive state of one map view: camera,
// mode, selection, hover, search filter and the memoized relationship
// layer. All mutation of a session is serialised by its mutex; calls to AI
// collaborators and the host store happen outside it so gestures are never
// blocked by them.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/devcompany145/Business-developers-ai/internal/ai"
	"github.com/devcompany145/Business-developers-ai/internal/logging"
	"github.com/devcompany145/Business-developers-ai/internal/metrics"
	"github.com/devcompany145/Business-developers-ai/pkg/camera"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/geo"
	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/match"
	"github.com/devcompany145/Business-developers-ai/pkg/relations"
	"github.com/devcompany145/Business-developers-ai/pkg/scene"
	"github.com/devcompany145/Business-developers-ai/pkg/scene2d"
	"github.com/devcompany145/Business-developers-ai/pkg/validation"
)

var (
	// ErrUnknownSession is returned for a session id the manager does not hold.
	ErrUnknownSession = errors.New("session: unknown session")
	// ErrUnknownBusiness is returned when selecting or hovering an id that is
	// not in the district.
	ErrUnknownBusiness = fmt.Errorf("session: %w", district.ErrNotFound)
	// ErrNoSelection is returned by host actions that default to the selected
	// business when nothing is selected.
	ErrNoSelection = errors.New("session: no business selected")
	// ErrUnavailable is returned when a collaborator is not configured.
	ErrUnavailable = errors.New("session: collaborator unavailable")
)

// HostActions are the domain effects the map triggers on a business. The
// map invokes them; it does not implement them.
type HostActions interface {
	Rent(ctx context.Context, id string) (district.Business, error)
	Add(ctx context.Context, b district.Business) (district.Business, error)
	Update(ctx context.Context, b district.Business) (district.Business, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
}

// Geometry is the container geometry shared by every session. Columns and
// rows come from the district.
type Geometry struct {
	ContainerSize float64
	Padding       float64
	Gap           float64
	GlobeRadius   float64
}

// Layout returns the placement parameters for a grid of cols x rows.
func (g Geometry) Layout(grid district.GridDef) geo.Layout {
	return geo.Layout{
		Grid: geo.Grid{
			ContainerSize: g.ContainerSize,
			Cols:          grid.Cols,
			Rows:          grid.Rows,
			Padding:       g.Padding,
			Gap:           g.Gap,
		},
		GlobeRadius: g.GlobeRadius,
	}
}

// Deps are the collaborators shared by all sessions. Searcher, Analyst,
// Matcher, Host, Translator and Metrics may be nil.
type Deps struct {
	Geometry    Geometry
	Sensitivity camera.Sensitivity
	Searcher    ai.Searcher
	Analyst     ai.Analyst
	Matcher     ai.Matcher
	Host        HostActions
	// Translator returns the key resolver for a language.
	Translator func(lang string) func(string) string
	Logger     logging.Logger
	Metrics    *metrics.Registry
}

// State is a read-only copy of the session's interactive state.
type State struct {
	ID          string              `json:"id"`
	Language    string              `json:"language"`
	Mode        mapmode.Mode        `json:"mode"`
	Interaction mapmode.Interaction `json:"interaction"`
	View        camera.View         `json:"view"`
	Gesture     camera.State        `json:"gesture"`
	SelectedID  string              `json:"selected_id,omitempty"`
	HoveredID   string              `json:"hovered_id,omitempty"`
	Filter      scene.Filter        `json:"filter"`
	Searching   bool                `json:"searching"`
	Analyzing   bool                `json:"analyzing"`
	Matching    bool                `json:"matching"`
	Insight     string              `json:"insight,omitempty"`
	Derivations int                 `json:"derivations"`
}

// Session is one map view.
type Session struct {
	id   string
	lang string
	deps *Deps
	log  logging.Logger

	// refresh reloads the district after a host action.
	refresh func(ctx context.Context) error

	mu          sync.Mutex
	snap        *district.Snapshot
	layout      geo.Layout
	deriver     *relations.Deriver
	ctrl        *camera.Controller
	view        camera.View
	mode        mapmode.Mode
	interaction mapmode.Interaction
	selectedID  string
	hoveredID   string
	filter      scene.Filter
	searching   bool
	analyzing   bool
	matching    bool
	insight     string
	matches     []match.Match
	lastUsed    time.Time
}

func newSession(id, lang string, deps *Deps, snap *district.Snapshot, refresh func(context.Context) error) *Session {
	s := &Session{
		id:      id,
		lang:    lang,
		deps:    deps,
		log:     deps.Logger.With(logging.String("session", id)),
		refresh: refresh,
		ctrl:    camera.NewController(deps.Sensitivity),
	}
	s.view, s.interaction = camera.ResetForMode(mapmode.Standard)
	s.mode = mapmode.Standard
	s.setDistrict(snap)
	s.lastUsed = time.Now()
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Language returns the negotiated language.
func (s *Session) Language() string { return s.lang }

// Translate resolves a key in the session language.
func (s *Session) Translate(key string) string { return s.translator()(key) }

func (s *Session) translator() func(string) string {
	if s.deps.Translator == nil {
		return func(key string) string { return key }
	}
	return s.deps.Translator(s.lang)
}

// setDistrict swaps in a new district. The deriver is rebuilt only when the
// grid changes; otherwise its content-hash key takes care of invalidation.
// Caller holds mu, or the session is not yet shared.
func (s *Session) setDistrict(snap *district.Snapshot) {
	if snap == nil {
		snap = &district.Snapshot{Grid: district.DefaultGrid}
	}
	layout := s.deps.Geometry.Layout(snap.Grid)
	if s.deriver == nil || layout.Grid != s.layout.Grid {
		s.deriver = relations.NewDeriver(layout.Grid)
		if m := s.deps.Metrics; m != nil {
			s.deriver.OnDerive = func(mode mapmode.Mode, edges, segments int, took time.Duration) {
				m.RecordDerivation(string(mode), edges, segments, took)
			}
		}
	}
	s.snap = snap
	s.layout = layout

	if s.selectedID != "" && district.ByID(snap.Businesses, s.selectedID) == nil {
		s.selectedID = ""
	}
	if s.hoveredID != "" && district.ByID(snap.Businesses, s.hoveredID) == nil {
		s.hoveredID = ""
	}
}

func (s *Session) update(snap *district.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setDistrict(snap)
}

func (s *Session) touch() { s.lastUsed = time.Now() }

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// State returns a copy of the interactive state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:          s.id,
		Language:    s.lang,
		Mode:        s.mode,
		Interaction: s.interaction,
		View:        s.view,
		Gesture:     s.ctrl.State(),
		SelectedID:  s.selectedID,
		HoveredID:   s.hoveredID,
		Filter:      s.filter,
		Searching:   s.searching,
		Analyzing:   s.analyzing,
		Matching:    s.matching,
		Insight:     s.insight,
		Derivations: s.deriver.Runs(),
	}
}

// Businesses returns the current business list.
func (s *Session) Businesses() []district.Business {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Businesses
}

// SetMode switches the map mode. The camera and interaction mode reset to
// the mode's defaults and any gesture in progress is dropped.
func (s *Session) SetMode(m mapmode.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("invalid map mode %q", m)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.mode = m
	s.view, s.interaction = camera.ResetForMode(m)
	s.ctrl.Reset()
	return nil
}

// SetInteraction toggles pan/rotate. The globe always rotates; the request
// is ignored there and the effective value is returned.
func (s *Session) SetInteraction(i mapmode.Interaction) (mapmode.Interaction, error) {
	if !i.Valid() {
		return "", fmt.Errorf("invalid interaction mode %q", i)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != mapmode.Globe {
		s.interaction = i
	}
	return s.interaction, nil
}

// HandleEvent feeds one pointer, touch or wheel event to the gesture state
// machine. changed reports whether the camera moved.
func (s *Session) HandleEvent(ev camera.Event) (v camera.View, changed bool) {
	s.mu.Lock()
	s.touch()
	s.view, changed = s.ctrl.Handle(ev, s.view, s.mode, s.interaction)
	v = s.view
	state := s.ctrl.State()
	s.mu.Unlock()

	if m := s.deps.Metrics; m != nil {
		m.RecordGesture(string(ev.Kind), changed)
	}
	s.log.Debug("gesture",
		logging.String("kind", string(ev.Kind)),
		logging.String("state", string(state)),
		logging.Bool("changed", changed),
	)
	return v, changed
}

// ZoomIn applies one zoom-button step.
func (s *Session) ZoomIn() camera.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.view = s.view.ZoomIn()
	return s.view
}

// ZoomOut applies one zoom-button step outwards.
func (s *Session) ZoomOut() camera.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.view = s.view.ZoomOut()
	return s.view
}

// ResetView restores the current mode's default camera without changing mode.
func (s *Session) ResetView() camera.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.view = camera.Default(s.mode)
	s.ctrl.Reset()
	return s.view
}

// Select sets the selected business and returns it. An empty id clears the
// selection and returns nil.
func (s *Session) Select(id string) (*district.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if id == "" {
		s.selectedID = ""
		return nil, nil
	}
	b := district.ByID(s.snap.Businesses, id)
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBusiness, id)
	}
	s.selectedID = id
	out := *b
	return &out, nil
}

// Hover sets or, with an empty id, clears the hovered business.
func (s *Session) Hover(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if id != "" && district.ByID(s.snap.Businesses, id) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownBusiness, id)
	}
	s.hoveredID = id
	return nil
}

// SetCategory narrows the map to one category. Empty clears it.
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.filter.Category = category
}

// SetQuery sets the plain-text filter. Empty clears it.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.filter.Query = q
}

// ClearFilter removes the search result and every other filter criterion.
func (s *Session) ClearFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.filter = scene.Filter{}
}

// Frame composes the current frame. The relationship layer is reused from
// the memo unless the business list or mode changed.
func (s *Session) Frame() *scene.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

func (s *Session) frameLocked() *scene.Frame {
	bs := s.snap.Businesses
	return scene.Compose(scene.Input{
		Businesses:  bs,
		Filter:      s.filter,
		Mode:        s.mode,
		Interaction: s.interaction,
		View:        s.view,
		Layout:      s.layout,
		SelectedID:  s.selectedID,
		HoveredID:   s.hoveredID,
		Derived:     s.deriver.Derive(bs, s.mode),
		Translate:   s.translator(),
	})
}

// Frame2D composes the current frame and its flat overlay.
func (s *Session) Frame2D() (*scene.Frame, *scene2d.Scene2D) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.frameLocked()
	return f, scene2d.Assemble2D(f, s.layout.Grid, s.translator())
}

// Validate checks the district and the current frame.
func (s *Session) Validate() *validation.Report {
	s.mu.Lock()
	snap := s.snap
	f := s.frameLocked()
	s.mu.Unlock()

	r := validation.ValidateSnapshot(snap)
	r.Merge(scene.ValidateFrame(f))
	return r
}
