package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcompany145/Business-developers-ai/internal/ai"
	"github.com/devcompany145/Business-developers-ai/internal/metrics"
	"github.com/devcompany145/Business-developers-ai/pkg/camera"
	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/match"
)

func testSnapshot() *district.Snapshot {
	return &district.Snapshot{
		Name: "test",
		Grid: district.GridDef{Cols: 3, Rows: 3},
		Businesses: []district.Business{
			{
				ID: "a", Name: "Acme Design", Category: "design", IsOccupied: true, ActiveVisitors: 30,
				GridPosition: district.GridPosition{X: 1, Y: 1},
				Genome:       &district.GenomeProfile{ServicesNeeded: []string{"Marketing"}},
			},
			{
				ID: "b", Name: "Buzz Media", Category: "design", IsOccupied: true, ActiveVisitors: 25,
				GridPosition: district.GridPosition{X: 2, Y: 1},
				Genome:       &district.GenomeProfile{ServicesOffered: []string{"marketing services"}},
			},
			{ID: "c", Name: "Empty Lot", GridPosition: district.GridPosition{X: 3, Y: 3}},
		},
	}
}

var testGeometry = Geometry{ContainerSize: 600, Padding: 20, Gap: 10, GlobeRadius: 200}

// fakeHost is an in-memory HostActions and Source.
type fakeHost struct {
	mu   sync.Mutex
	snap *district.Snapshot
	err  error
}

func (h *fakeHost) Snapshot(context.Context) (*district.Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := *h.snap
	cp.Businesses = append([]district.Business(nil), h.snap.Businesses...)
	return &cp, nil
}

func (h *fakeHost) find(id string) (*district.Business, error) {
	if b := district.ByID(h.snap.Businesses, id); b != nil {
		return b, nil
	}
	return nil, district.ErrNotFound
}

func (h *fakeHost) Rent(_ context.Context, id string) (district.Business, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return district.Business{}, h.err
	}
	b, err := h.find(id)
	if err != nil {
		return district.Business{}, err
	}
	b.IsOccupied = true
	return *b, nil
}

func (h *fakeHost) Add(_ context.Context, b district.Business) (district.Business, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snap.Businesses = append(h.snap.Businesses, b)
	return b, nil
}

func (h *fakeHost) Update(_ context.Context, b district.Business) (district.Business, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cur, err := h.find(b.ID)
	if err != nil {
		return district.Business{}, err
	}
	*cur = b
	return b, nil
}

func (h *fakeHost) ToggleFavorite(_ context.Context, id string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, err := h.find(id)
	if err != nil {
		return false, err
	}
	b.Favorite = !b.Favorite
	return b.Favorite, nil
}

// fakeAI implements the three collaborators. When gate is set, calls block
// until it is closed.
type fakeAI struct {
	ids     []string
	text    string
	matches []match.Match
	err     error
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeAI) wait(ctx context.Context) error {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

func (f *fakeAI) Search(ctx context.Context, _ string, _ []district.Business, _ string) (*ai.SearchResult, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return &ai.SearchResult{IDs: f.ids}, nil
}

func (f *fakeAI) Analyze(ctx context.Context, _ *district.Snapshot, _ string) (string, error) {
	if err := f.wait(ctx); err != nil {
		return "", err
	}
	return f.text, nil
}

func (f *fakeAI) Match(ctx context.Context, _ match.Profile, _ []district.Business, _ string) ([]match.Match, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.matches, nil
}

func newManager(t *testing.T, fa *fakeAI) (*Manager, *fakeHost) {
	t.Helper()
	host := &fakeHost{snap: testSnapshot()}
	deps := Deps{
		Geometry:    testGeometry,
		Sensitivity: camera.DefaultSensitivity(),
		Host:        host,
		Translator: func(lang string) func(string) string {
			return func(key string) string { return lang + ":" + key }
		},
		Metrics: metrics.NewRegistry(),
	}
	if fa != nil {
		deps.Searcher, deps.Analyst, deps.Matcher = fa, fa, fa
	}
	m := NewManager(deps, host)
	require.NoError(t, m.Refresh(context.Background()))
	return m, host
}

func TestNewSessionDefaults(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")

	st := s.State()
	assert.Equal(t, mapmode.Standard, st.Mode)
	assert.Equal(t, mapmode.Pan, st.Interaction)
	assert.Equal(t, camera.Default(mapmode.Standard), st.View)
	assert.Equal(t, camera.StateIdle, st.Gesture)
	assert.Len(t, s.Businesses(), 3)
}

func TestSetModeResetsCamera(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")

	s.ZoomIn()
	s.HandleEvent(camera.Event{Kind: camera.PointerDown, X: 0, Y: 0, Target: "canvas"})
	s.HandleEvent(camera.Event{Kind: camera.PointerMove, X: 40, Y: 10})

	require.NoError(t, s.SetMode(mapmode.Globe))
	st := s.State()
	assert.Equal(t, camera.View{Zoom: 0.9}, st.View)
	assert.Equal(t, mapmode.Rotate, st.Interaction)
	assert.Equal(t, camera.StateIdle, st.Gesture)

	assert.Error(t, s.SetMode("satellite"))
}

func TestSetInteractionIgnoredOnGlobe(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")

	got, err := s.SetInteraction(mapmode.Rotate)
	require.NoError(t, err)
	assert.Equal(t, mapmode.Rotate, got)

	require.NoError(t, s.SetMode(mapmode.Globe))
	got, err = s.SetInteraction(mapmode.Pan)
	require.NoError(t, err)
	assert.Equal(t, mapmode.Rotate, got)

	_, err = s.SetInteraction("spin")
	assert.Error(t, err)
}

func TestHandleEventPans(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")

	_, changed := s.HandleEvent(camera.Event{Kind: camera.PointerDown, X: 10, Y: 10, Target: "canvas"})
	assert.False(t, changed)
	v, changed := s.HandleEvent(camera.Event{Kind: camera.PointerMove, X: 25, Y: 5})
	assert.True(t, changed)
	assert.Equal(t, 15.0, v.PanX)
	assert.Equal(t, -5.0, v.PanY)

	_, changed = s.HandleEvent(camera.Event{Kind: camera.PointerDown, X: 0, Y: 0, Target: "button"})
	assert.False(t, changed)
}

func TestZoomButtonsClamp(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")
	var v camera.View
	for i := 0; i < 40; i++ {
		v = s.ZoomIn()
	}
	assert.Equal(t, camera.MaxZoom, v.Zoom)
	for i := 0; i < 40; i++ {
		v = s.ZoomOut()
	}
	assert.Equal(t, camera.MinZoom, v.Zoom)
	assert.Equal(t, camera.Default(mapmode.Standard), s.ResetView())
}

func TestSelectAndHover(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")

	b, err := s.Select("a")
	require.NoError(t, err)
	assert.Equal(t, "Acme Design", b.Name)

	_, err = s.Select("zzz")
	assert.ErrorIs(t, err, ErrUnknownBusiness)
	assert.ErrorIs(t, err, district.ErrNotFound)
	assert.Equal(t, "a", s.State().SelectedID)

	require.NoError(t, s.Hover("b"))
	assert.Error(t, s.Hover("zzz"))
	require.NoError(t, s.Hover(""))

	b, err = s.Select("")
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.Empty(t, s.State().SelectedID)
}

func TestFrameHighlightsInNetworking(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")
	require.NoError(t, s.SetMode(mapmode.Networking))
	require.NoError(t, s.Hover("a"))

	f := s.Frame()
	require.Len(t, f.Edges, 1)
	assert.Equal(t, "a", f.Focus)
	assert.True(t, f.Tile("b").Related)
	assert.True(t, f.Tile("c").Dimmed)
	assert.Equal(t, "en:status.occupied", f.Tile("a").Status.Label)
}

func TestCameraOnlyChangesReuseDerivation(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")
	require.NoError(t, s.SetMode(mapmode.Networking))

	s.Frame()
	runs := s.State().Derivations
	s.HandleEvent(camera.Event{Kind: camera.PointerDown, Target: "canvas"})
	for i := 0; i < 20; i++ {
		s.HandleEvent(camera.Event{Kind: camera.PointerMove, X: float64(i), Y: float64(i)})
		s.Frame()
	}
	s.ZoomIn()
	s.Frame()
	assert.Equal(t, runs, s.State().Derivations)

	require.NoError(t, s.SetMode(mapmode.Traffic))
	f := s.Frame()
	assert.Equal(t, runs+1, s.State().Derivations)
	assert.Len(t, f.Segments, 4)
}

func TestFrame2D(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")
	require.NoError(t, s.SetMode(mapmode.Traffic))
	f, flat := s.Frame2D()
	assert.Equal(t, len(f.Segments), len(flat.Corridors))
	assert.Len(t, flat.Cells, 9)
}

func TestSearchInstallsFilter(t *testing.T) {
	fa := &fakeAI{ids: []string{"b"}}
	m, _ := newManager(t, fa)
	s := m.Create("en")

	res, err := s.Search(context.Background(), "marketing")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, res.IDs)
	assert.Equal(t, []string{"b"}, s.State().Filter.IDs)
	assert.Len(t, s.Frame().Tiles, 1)

	_, err = s.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Nil(t, s.State().Filter.IDs)
	assert.Len(t, s.Frame().Tiles, 3)
}

func TestSearchEmptyResultMatchesNothing(t *testing.T) {
	m, _ := newManager(t, &fakeAI{ids: []string{}})
	s := m.Create("en")
	_, err := s.Search(context.Background(), "bakery")
	require.NoError(t, err)
	assert.NotNil(t, s.State().Filter.IDs)
	assert.Empty(t, s.Frame().Tiles)
}

func TestSearchFailureLeavesFilterUnset(t *testing.T) {
	fa := &fakeAI{ids: []string{"a"}}
	m, _ := newManager(t, fa)
	s := m.Create("en")
	_, err := s.Search(context.Background(), "design")
	require.NoError(t, err)

	fa.err = errors.New("upstream down")
	_, err = s.Search(context.Background(), "design")
	require.Error(t, err)

	st := s.State()
	assert.Nil(t, st.Filter.IDs)
	assert.False(t, st.Searching)
	assert.Len(t, s.Frame().Tiles, 3)
}

func TestSearchWithoutSearcher(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")
	_, err := s.Search(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, s.State().Searching)
}

func TestCameraNotBlockedDuringSearch(t *testing.T) {
	fa := &fakeAI{ids: []string{"a"}, gate: make(chan struct{}), started: make(chan struct{}, 1)}
	m, _ := newManager(t, fa)
	s := m.Create("en")

	done := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "design")
		done <- err
	}()
	<-fa.started

	assert.True(t, s.State().Searching)
	v := s.ZoomIn()
	assert.InDelta(t, 0.9, v.Zoom, 1e-9)
	s.HandleEvent(camera.Event{Kind: camera.Wheel, DeltaY: -100})
	s.Frame()

	close(fa.gate)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("search did not finish")
	}
	assert.False(t, s.State().Searching)
}

func TestAnalyze(t *testing.T) {
	fa := &fakeAI{text: "Design is booming."}
	m, _ := newManager(t, fa)
	s := m.Create("ar")

	text, err := s.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Design is booming.", text)
	assert.Equal(t, text, s.State().Insight)

	fa.err = errors.New("quota")
	text, err = s.Analyze(context.Background())
	require.Error(t, err)
	assert.Equal(t, "ar:insights.unavailable", text)
	st := s.State()
	assert.Equal(t, text, st.Insight)
	assert.False(t, st.Analyzing)
}

func TestAnalyzeClearsFlagOnCancel(t *testing.T) {
	fa := &fakeAI{gate: make(chan struct{})}
	m, _ := newManager(t, fa)
	s := m.Create("en")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Analyze(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.State().Analyzing)
}

func TestMatchesAndIntroduction(t *testing.T) {
	fa := &fakeAI{matches: []match.Match{
		{BusinessID: "a", Score: 70},
		{BusinessID: "b", Score: 91, Reasons: []string{"needs design"}},
		{BusinessID: "ghost", Score: 99},
	}}
	m, _ := newManager(t, fa)
	s := m.Create("en")

	ms, err := s.FindMatches(context.Background(), match.Profile{Company: "Orbit"})
	require.NoError(t, err)
	assert.Len(t, ms, 3)

	ranked := s.Matches(match.DefaultOptions())
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].BusinessID)
	assert.False(t, s.State().Matching)

	intro, err := s.Introduce(match.Profile{Name: "Sam", Company: "Orbit"}, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", intro.To)

	_, err = s.Introduce(match.Profile{}, "ghost")
	assert.ErrorIs(t, err, ErrUnknownBusiness)
}

func TestHostActionsRefreshAllSessions(t *testing.T) {
	m, host := newManager(t, nil)
	s1 := m.Create("en")
	s2 := m.Create("en")
	require.NoError(t, s2.SetMode(mapmode.Networking))
	s2.Frame()
	runs := s2.State().Derivations

	_, err := s1.Rent(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = s1.Select("c")
	require.NoError(t, err)
	_, err = s1.Rent(context.Background(), "")
	require.NoError(t, err)

	assert.True(t, district.ByID(s2.Businesses(), "c").IsOccupied)
	s2.Frame()
	assert.Equal(t, runs+1, s2.State().Derivations, "content change must rebuild the relationship layer")

	fav, err := s2.ToggleFavorite(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, fav)
	assert.True(t, s1.Frame().Tile("a").Favorite)

	_, err = s1.Add(context.Background(), district.Business{ID: "d", GridPosition: district.GridPosition{X: 2, Y: 2}})
	require.NoError(t, err)
	assert.Len(t, s2.Businesses(), 4)

	upd := *district.ByID(host.snap.Businesses, "d")
	upd.ActiveVisitors = 9
	_, err = s2.Update(context.Background(), upd)
	require.NoError(t, err)
	assert.Equal(t, 9, district.ByID(s1.Businesses(), "d").ActiveVisitors)

	host.err = errors.New("db locked")
	_, err = s1.Rent(context.Background(), "c")
	assert.Error(t, err)
}

func TestReplaceClearsStaleSelection(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")
	_, err := s.Select("a")
	require.NoError(t, err)
	require.NoError(t, s.Hover("b"))

	m.Replace(&district.Snapshot{Grid: district.GridDef{Cols: 4, Rows: 4},
		Businesses: []district.Business{{ID: "b"}}})
	st := s.State()
	assert.Empty(t, st.SelectedID)
	assert.Equal(t, "b", st.HoveredID)
	_, flat := s.Frame2D()
	assert.Len(t, flat.Cells, 16)
}

func TestValidate(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")
	r := s.Validate()
	assert.True(t, r.Valid, r.Summary)
}

func TestManagerLifecycle(t *testing.T) {
	m, _ := newManager(t, nil)
	s := m.Create("en")
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Close(s.ID()))
	_, err = m.Get(s.ID())
	assert.ErrorIs(t, err, ErrUnknownSession)
	assert.ErrorIs(t, m.Close(s.ID()), ErrUnknownSession)
}

func TestPrune(t *testing.T) {
	m, _ := newManager(t, nil)
	m.Create("en")
	m.Create("en")
	assert.Equal(t, 0, m.Prune(time.Hour))
	assert.Equal(t, 2, m.Prune(-time.Second))
	assert.Equal(t, 0, m.Len())
}
