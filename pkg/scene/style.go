package scene

import (
	"fmt"
	"math"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
)

const (
	// HeatmapSaturation is the visitor count at which heat intensity peaks.
	HeatmapSaturation = 50
	// TrafficModerateAbove and TrafficSevereAbove are exclusive lower bounds.
	TrafficModerateAbove = 20
	TrafficSevereAbove   = 40
)

// Status translation keys.
const (
	KeyOccupied        = "status.occupied"
	KeyVacant          = "status.vacant"
	KeyHeat            = "status.heat"
	KeyTrafficNominal  = "traffic.nominal"
	KeyTrafficModerate = "traffic.moderate"
	KeyTrafficSevere   = "traffic.severe"
)

// Status colors.
const (
	ColorOccupied = "#3b82f6"
	ColorVacant   = "#9ca3af"
	colorNominal  = "#22c55e"
	colorModerate = "#f59e0b"
	colorSevere   = "#ef4444"
)

// HeatIntensity maps visitors onto [0, 1].
func HeatIntensity(visitors int) float64 {
	if visitors <= 0 {
		return 0
	}
	return math.Min(float64(visitors)/HeatmapSaturation, 1)
}

// HeatColor interpolates blue to red: hue 240 to 0, saturation 60% to 90%,
// lightness 65% to 55%.
func HeatColor(t float64) string {
	t = math.Max(0, math.Min(t, 1))
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", 240-240*t, 60+30*t, 65-10*t)
}

// TrafficLevelFor buckets a visitor count.
func TrafficLevelFor(visitors int) TrafficLevel {
	switch {
	case visitors > TrafficSevereAbove:
		return TrafficSevere
	case visitors > TrafficModerateAbove:
		return TrafficModerate
	default:
		return TrafficNominal
	}
}

var trafficKeys = map[TrafficLevel]string{
	TrafficNominal:  KeyTrafficNominal,
	TrafficModerate: KeyTrafficModerate,
	TrafficSevere:   KeyTrafficSevere,
}

// TrafficColor returns the swatch for a traffic level.
func TrafficColor(level TrafficLevel) string {
	switch level {
	case TrafficSevere:
		return colorSevere
	case TrafficModerate:
		return colorModerate
	default:
		return colorNominal
	}
}

// StatusFor returns the untranslated status of b in mode. Vacant buildings
// look the same in every mode.
func StatusFor(b district.Business, mode mapmode.Mode) Status {
	if !b.IsOccupied {
		return Status{Key: KeyVacant, Color: ColorVacant}
	}
	switch mode {
	case mapmode.Heatmap:
		t := HeatIntensity(b.ActiveVisitors)
		return Status{Key: KeyHeat, Color: HeatColor(t), Intensity: t}
	case mapmode.Traffic:
		level := TrafficLevelFor(b.ActiveVisitors)
		return Status{Key: trafficKeys[level], Color: TrafficColor(level), Level: level}
	case mapmode.Standard, mapmode.Networking, mapmode.Globe:
	}
	return Status{Key: KeyOccupied, Color: ColorOccupied}
}
