package camera

import (
	"math"
	"strings"

	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
)

// State is the gesture state.
type State string

const (
	StateIdle     State = "idle"
	StateDragging State = "dragging"
	// StatePinching is the two-finger sub-state of an active gesture.
	StatePinching State = "pinching"
)

// EventKind identifies an input event.
type EventKind string

const (
	PointerDown  EventKind = "pointerdown"
	PointerMove  EventKind = "pointermove"
	PointerUp    EventKind = "pointerup"
	PointerLeave EventKind = "pointerleave"
	TouchStart   EventKind = "touchstart"
	TouchMove    EventKind = "touchmove"
	TouchEnd     EventKind = "touchend"
	Wheel        EventKind = "wheel"
)

// Touch is one finger in client coordinates.
type Touch struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Event is a platform input event reduced to what the camera needs.
// Target names the element the event started on ("button", "input", "canvas", ...).
type Event struct {
	Kind    EventKind `json:"type"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Touches []Touch   `json:"touches,omitempty"`
	DeltaY  float64   `json:"delta_y,omitempty"`
	Target  string    `json:"target,omitempty"`
}

// Sensitivity scales wheel and pinch input into zoom deltas.
type Sensitivity struct {
	// Wheel is zoom per unit of wheel deltaY. Scrolling up (negative deltaY) zooms in.
	Wheel float64 `json:"wheel" koanf:"wheel"`
	// Pinch is zoom per pixel of change in finger distance.
	Pinch float64 `json:"pinch" koanf:"pinch"`
}

// DefaultSensitivity matches typical browser wheel and touch deltas.
func DefaultSensitivity() Sensitivity {
	return Sensitivity{Wheel: 0.001, Pinch: 0.005}
}

// interactiveTargets are controls that keep their own input; gestures that
// start on them never move the camera.
var interactiveTargets = map[string]bool{
	"button": true,
	"input":  true,
	"select": true,
}

// IsInteractive reports whether target is a control element.
func IsInteractive(target string) bool {
	return interactiveTargets[strings.ToLower(strings.TrimSpace(target))]
}

// Controller is the gesture state machine. It is not safe for concurrent use.
type Controller struct {
	sens      Sensitivity
	state     State
	lastX     float64
	lastY     float64
	pinchDist float64
}

// NewController creates an idle controller.
func NewController(sens Sensitivity) *Controller {
	return &Controller{sens: sens, state: StateIdle}
}

// State returns the current gesture state.
func (c *Controller) State() State { return c.state }

// Reset drops any gesture in progress.
func (c *Controller) Reset() {
	c.state = StateIdle
	c.pinchDist = 0
}

// Handle feeds one event through the state machine and returns the updated
// view. changed is false when the view was left untouched.
func (c *Controller) Handle(ev Event, v View, mode mapmode.Mode, interaction mapmode.Interaction) (View, bool) {
	switch ev.Kind {
	case PointerDown:
		c.begin(ev.Target, ev.X, ev.Y)
	case PointerMove:
		if c.state == StateDragging {
			return c.drag(ev.X, ev.Y, v, mode, interaction), true
		}
	case PointerUp, PointerLeave, TouchEnd:
		c.Reset()
	case TouchStart:
		c.touchStart(ev)
	case TouchMove:
		return c.touchMove(ev, v, mode, interaction)
	case Wheel:
		if ev.DeltaY == 0 {
			return v, false
		}
		return v.ApplyZoom(-ev.DeltaY * c.sens.Wheel), true
	}
	return v, false
}

func (c *Controller) begin(target string, x, y float64) {
	if IsInteractive(target) {
		return
	}
	c.state = StateDragging
	c.lastX, c.lastY = x, y
}

func (c *Controller) drag(x, y float64, v View, mode mapmode.Mode, interaction mapmode.Interaction) View {
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	return v.ApplyDrag(dx, dy, mode, interaction)
}

func (c *Controller) touchStart(ev Event) {
	if IsInteractive(ev.Target) {
		return
	}
	switch len(ev.Touches) {
	case 1:
		c.begin(ev.Target, ev.Touches[0].X, ev.Touches[0].Y)
	case 2:
		c.state = StatePinching
		c.pinchDist = touchDistance(ev.Touches[0], ev.Touches[1])
	default:
		c.Reset()
	}
}

func (c *Controller) touchMove(ev Event, v View, mode mapmode.Mode, interaction mapmode.Interaction) (View, bool) {
	switch {
	case c.state == StatePinching && len(ev.Touches) == 2:
		d := touchDistance(ev.Touches[0], ev.Touches[1])
		delta := d - c.pinchDist
		c.pinchDist = d
		return v.ApplyZoom(delta * c.sens.Pinch), true
	case c.state == StateDragging && len(ev.Touches) == 1:
		return c.drag(ev.Touches[0].X, ev.Touches[0].Y, v, mode, interaction), true
	case c.state != StateIdle:
		// Finger count changed mid-gesture.
		c.Reset()
	}
	return v, false
}

func touchDistance(a, b Touch) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
