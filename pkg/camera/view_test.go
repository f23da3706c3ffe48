package camera

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
)

func TestResetForMode(t *testing.T) {
	v, i := ResetForMode(mapmode.Globe)
	assert.Equal(t, View{Zoom: 0.9}, v)
	assert.Equal(t, mapmode.Rotate, i)

	for _, m := range []mapmode.Mode{mapmode.Standard, mapmode.Heatmap, mapmode.Networking, mapmode.Traffic} {
		v, i := ResetForMode(m)
		assert.Equal(t, View{Zoom: 0.8, RotateX: 55, RotateZ: 45}, v, m)
		assert.Equal(t, mapmode.Pan, i, m)
	}
}

func TestApplyDragGlobe(t *testing.T) {
	v := Default(mapmode.Globe).ApplyDrag(10, 400, mapmode.Globe, mapmode.Pan)
	assert.InDelta(t, 5, v.RotateZ, 1e-9)
	assert.InDelta(t, -200, v.RotateX, 1e-9, "globe tilt is unclamped")
	assert.Zero(t, v.PanX)
}

func TestApplyDragRotate(t *testing.T) {
	v := Default(mapmode.Standard).ApplyDrag(10, -1000, mapmode.Standard, mapmode.Rotate)
	assert.InDelta(t, 48, v.RotateZ, 1e-9)
	assert.Equal(t, MaxTilt, v.RotateX)

	v = v.ApplyDrag(0, 1000, mapmode.Standard, mapmode.Rotate)
	assert.Equal(t, MinTilt, v.RotateX)
}

func TestApplyDragPan(t *testing.T) {
	v := Default(mapmode.Traffic).ApplyDrag(-5000, 7000, mapmode.Traffic, mapmode.Pan)
	assert.Equal(t, -5000.0, v.PanX)
	assert.Equal(t, 7000.0, v.PanY)
	assert.Equal(t, 55.0, v.RotateX)
}

func TestZoomButtonsSaturate(t *testing.T) {
	v := Default(mapmode.Standard)
	for i := 0; i < 50; i++ {
		v = v.ZoomIn()
	}
	assert.Equal(t, MaxZoom, v.Zoom)
	for i := 0; i < 50; i++ {
		v = v.ZoomOut()
	}
	assert.Equal(t, MinZoom, v.Zoom)
}

func TestViewProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("zoom saturates at the bounds", prop.ForAll(
		func(start, delta float64, repeats int) bool {
			v := View{Zoom: Clamp(start, MinZoom, MaxZoom)}
			for i := 0; i < repeats; i++ {
				v = v.ApplyZoom(delta)
			}
			if v.Zoom < MinZoom || v.Zoom > MaxZoom {
				return false
			}
			saturated := v.ApplyZoom(delta)
			if (v.Zoom == MaxZoom && delta > 0) || (v.Zoom == MinZoom && delta < 0) {
				return saturated.Zoom == v.Zoom
			}
			return true
		},
		gen.Float64Range(-5, 5),
		gen.Float64Range(-3, 3),
		gen.IntRange(1, 40),
	))

	properties.Property("tilt stays in range while rotating the grid", prop.ForAll(
		func(deltas []float64) bool {
			v := Default(mapmode.Standard)
			for _, d := range deltas {
				v = v.ApplyDrag(d/2, d, mapmode.Heatmap, mapmode.Rotate)
				if v.RotateX < MinTilt || v.RotateX > MaxTilt {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-10000, 10000)),
	))

	properties.TestingRun(t)
}
