// Package camera holds the map camera as a plain value plus the gesture
// state machine that turns pointer, touch and wheel input into camera updates.
package camera

import "github.com/devcompany145/Business-developers-ai/pkg/mapmode"

const (
	MinZoom = 0.4
	MaxZoom = 2.5

	// MinTilt and MaxTilt bound RotateX outside globe mode, from straight
	// overhead to just above the horizon.
	MinTilt = 0.0
	MaxTilt = 85.0

	// Degrees of rotation per pixel of drag.
	GlobeDragFactor  = 0.5
	RotateDragFactor = 0.3

	// ZoomStep is the change applied by the zoom buttons.
	ZoomStep = 0.1
)

// View is the camera transform for one map session.
type View struct {
	Zoom    float64 `json:"zoom"`
	RotateX float64 `json:"rotate_x"`
	RotateZ float64 `json:"rotate_z"`
	PanX    float64 `json:"pan_x"`
	PanY    float64 `json:"pan_y"`
}

// Default returns the camera a mode starts with.
func Default(mode mapmode.Mode) View {
	if mode == mapmode.Globe {
		return View{Zoom: 0.9}
	}
	return View{Zoom: 0.8, RotateX: 55, RotateZ: 45}
}

// ResetForMode returns the default camera and the interaction mode forced
// when switching to mode.
func ResetForMode(mode mapmode.Mode) (View, mapmode.Interaction) {
	return Default(mode), mapmode.DefaultInteraction(mode)
}

// ApplyDrag applies a drag delta in pixels.
//
// On the globe both axes rotate freely. On the flat grid, rotate mode tilts
// within [MinTilt, MaxTilt] and spins without limit, and pan mode translates
// without limit.
func (v View) ApplyDrag(dx, dy float64, mode mapmode.Mode, interaction mapmode.Interaction) View {
	switch {
	case mode == mapmode.Globe:
		v.RotateZ += dx * GlobeDragFactor
		v.RotateX -= dy * GlobeDragFactor
	case interaction == mapmode.Rotate:
		v.RotateZ += dx * RotateDragFactor
		v.RotateX = Clamp(v.RotateX-dy*RotateDragFactor, MinTilt, MaxTilt)
	default:
		v.PanX += dx
		v.PanY += dy
	}
	return v
}

// ApplyZoom adds delta to the zoom and clamps it to [MinZoom, MaxZoom].
func (v View) ApplyZoom(delta float64) View {
	v.Zoom = Clamp(v.Zoom+delta, MinZoom, MaxZoom)
	return v
}

// ZoomIn is the zoom-in button action.
func (v View) ZoomIn() View { return v.ApplyZoom(ZoomStep) }

// ZoomOut is the zoom-out button action.
func (v View) ZoomOut() View { return v.ApplyZoom(-ZoomStep) }

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
