package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
)

func pointer(kind EventKind, x, y float64) Event {
	return Event{Kind: kind, X: x, Y: y, Target: "canvas"}
}

func TestPointerDragPans(t *testing.T) {
	c := NewController(DefaultSensitivity())
	v := Default(mapmode.Standard)

	v, changed := c.Handle(pointer(PointerDown, 100, 100), v, mapmode.Standard, mapmode.Pan)
	assert.False(t, changed)
	assert.Equal(t, StateDragging, c.State())

	v, changed = c.Handle(pointer(PointerMove, 110, 95), v, mapmode.Standard, mapmode.Pan)
	require.True(t, changed)
	v, _ = c.Handle(pointer(PointerMove, 130, 95), v, mapmode.Standard, mapmode.Pan)
	assert.Equal(t, 30.0, v.PanX)
	assert.Equal(t, -5.0, v.PanY)

	_, _ = c.Handle(pointer(PointerUp, 130, 95), v, mapmode.Standard, mapmode.Pan)
	assert.Equal(t, StateIdle, c.State())

	after, changed := c.Handle(pointer(PointerMove, 500, 500), v, mapmode.Standard, mapmode.Pan)
	assert.False(t, changed, "moves after release must not drag")
	assert.Equal(t, v, after)
}

func TestPointerLeaveEndsDrag(t *testing.T) {
	c := NewController(DefaultSensitivity())
	v := Default(mapmode.Standard)
	c.Handle(pointer(PointerDown, 0, 0), v, mapmode.Standard, mapmode.Pan)
	c.Handle(pointer(PointerLeave, 0, 0), v, mapmode.Standard, mapmode.Pan)
	assert.Equal(t, StateIdle, c.State())
}

func TestGestureOnControlIsIgnored(t *testing.T) {
	for _, target := range []string{"button", "INPUT", "select"} {
		c := NewController(DefaultSensitivity())
		v := Default(mapmode.Standard)

		c.Handle(Event{Kind: PointerDown, X: 10, Y: 10, Target: target}, v, mapmode.Standard, mapmode.Pan)
		assert.Equal(t, StateIdle, c.State(), target)

		got, changed := c.Handle(Event{Kind: PointerMove, X: 90, Y: 90, Target: target}, v, mapmode.Standard, mapmode.Pan)
		assert.False(t, changed, target)
		assert.Equal(t, v, got, target)

		c.Handle(Event{Kind: TouchStart, Touches: []Touch{{1, 1}}, Target: target}, v, mapmode.Standard, mapmode.Pan)
		assert.Equal(t, StateIdle, c.State(), target)
	}
}

func TestRotateDragInGlobe(t *testing.T) {
	c := NewController(DefaultSensitivity())
	v := Default(mapmode.Globe)
	c.Handle(pointer(PointerDown, 0, 0), v, mapmode.Globe, mapmode.Rotate)
	v, _ = c.Handle(pointer(PointerMove, 20, 10), v, mapmode.Globe, mapmode.Rotate)
	assert.InDelta(t, 10, v.RotateZ, 1e-9)
	assert.InDelta(t, -5, v.RotateX, 1e-9)
}

func TestWheelZoom(t *testing.T) {
	c := NewController(Sensitivity{Wheel: 0.001, Pinch: 0.005})
	v := Default(mapmode.Standard)

	v, changed := c.Handle(Event{Kind: Wheel, DeltaY: -100}, v, mapmode.Standard, mapmode.Pan)
	require.True(t, changed)
	assert.InDelta(t, 0.9, v.Zoom, 1e-9)

	v, _ = c.Handle(Event{Kind: Wheel, DeltaY: 1e6}, v, mapmode.Standard, mapmode.Pan)
	assert.Equal(t, MinZoom, v.Zoom)

	_, changed = c.Handle(Event{Kind: Wheel}, v, mapmode.Standard, mapmode.Pan)
	assert.False(t, changed)
}

func TestTouchDragAndPinch(t *testing.T) {
	c := NewController(Sensitivity{Wheel: 0.001, Pinch: 0.01})
	v := Default(mapmode.Standard)

	c.Handle(Event{Kind: TouchStart, Touches: []Touch{{10, 10}}}, v, mapmode.Standard, mapmode.Pan)
	assert.Equal(t, StateDragging, c.State())
	v, _ = c.Handle(Event{Kind: TouchMove, Touches: []Touch{{25, 30}}}, v, mapmode.Standard, mapmode.Pan)
	assert.Equal(t, 15.0, v.PanX)
	assert.Equal(t, 20.0, v.PanY)

	// A second finger lands: the browser fires touchstart with both touches.
	c.Handle(Event{Kind: TouchStart, Touches: []Touch{{0, 0}, {30, 40}}}, v, mapmode.Standard, mapmode.Pan)
	assert.Equal(t, StatePinching, c.State())

	v, changed := c.Handle(Event{Kind: TouchMove, Touches: []Touch{{0, 0}, {60, 80}}}, v, mapmode.Standard, mapmode.Pan)
	require.True(t, changed)
	assert.InDelta(t, 0.8+50*0.01, v.Zoom, 1e-9)
	assert.Equal(t, 15.0, v.PanX, "pinch must not translate")

	v, _ = c.Handle(Event{Kind: TouchMove, Touches: []Touch{{0, 0}, {600, 800}}}, v, mapmode.Standard, mapmode.Pan)
	assert.Equal(t, MaxZoom, v.Zoom)

	c.Handle(Event{Kind: TouchEnd, Touches: []Touch{{0, 0}}}, v, mapmode.Standard, mapmode.Pan)
	assert.Equal(t, StateIdle, c.State())
}

func TestTouchCountChangeEndsGesture(t *testing.T) {
	c := NewController(DefaultSensitivity())
	v := Default(mapmode.Standard)
	c.Handle(Event{Kind: TouchStart, Touches: []Touch{{10, 10}}}, v, mapmode.Standard, mapmode.Pan)

	got, changed := c.Handle(Event{Kind: TouchMove, Touches: []Touch{{10, 10}, {50, 50}, {90, 90}}}, v, mapmode.Standard, mapmode.Pan)
	assert.False(t, changed)
	assert.Equal(t, v, got)
	assert.Equal(t, StateIdle, c.State())
}
