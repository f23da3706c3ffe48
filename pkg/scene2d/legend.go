package scene2d

import (
	"math"

	"github.com/devcompany145/Business-developers-ai/pkg/mapmode"
	"github.com/devcompany145/Business-developers-ai/pkg/scene"
)

func assembleLegend(f *scene.Frame, translate func(string) string) Legend {
	l := Legend{Mode: string(f.Mode), Entries: []LegendEntry{}}
	l.MinVisitors, l.MaxVisitors = visitorRange(f.Tiles)

	entry := func(key, color string) LegendEntry {
		return LegendEntry{Key: key, Label: translate(key), Color: color}
	}

	switch f.Mode {
	case mapmode.Heatmap:
		mid := scene.HeatmapSaturation / 2
		l.Entries = append(l.Entries,
			withRange(entry(KeyColdest, scene.HeatColor(0)), 0, 0),
			withRange(entry(KeyWarm, scene.HeatColor(0.5)), 1, mid),
			withRange(entry(KeyHottest, scene.HeatColor(1)), mid+1, scene.HeatmapSaturation),
		)
	case mapmode.Traffic:
		l.Entries = append(l.Entries,
			withRange(entry(scene.KeyTrafficNominal, scene.TrafficColor(scene.TrafficNominal)), 0, scene.TrafficModerateAbove),
			withRange(entry(scene.KeyTrafficModerate, scene.TrafficColor(scene.TrafficModerate)), scene.TrafficModerateAbove+1, scene.TrafficSevereAbove),
			withRange(entry(scene.KeyTrafficSevere, scene.TrafficColor(scene.TrafficSevere)), scene.TrafficSevereAbove+1, 0),
		)
	case mapmode.Networking:
		l.Entries = append(l.Entries,
			entry(scene.KeyOccupied, scene.ColorOccupied),
			entry(KeySynergy, synergyStroke),
			LegendEntry{Key: KeyIndustry, Label: translate(KeyIndustry), Color: industryStroke, Dash: industryDash},
		)
	case mapmode.Standard, mapmode.Globe:
		l.Entries = append(l.Entries, entry(scene.KeyOccupied, scene.ColorOccupied))
	}
	l.Entries = append(l.Entries, entry(scene.KeyVacant, scene.ColorVacant))
	return l
}

func withRange(e LegendEntry, lo, hi int) LegendEntry {
	e.Min, e.Max = lo, hi
	return e
}

// visitorRange returns the smallest and largest visitor counts among occupied
// tiles, or zeros when none are occupied.
func visitorRange(tiles []scene.Tile) (int, int) {
	lo, hi := math.MaxInt, 0
	for _, t := range tiles {
		if !t.Occupied {
			continue
		}
		lo = min(lo, t.Visitors)
		hi = max(hi, t.Visitors)
	}
	if lo == math.MaxInt {
		return 0, 0
	}
	return lo, hi
}
