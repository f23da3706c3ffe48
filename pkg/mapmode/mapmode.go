package mapmode

import "fmt"

// Mode identifies the active visualization layer of the district map.
type Mode string

const (
	Standard   Mode = "standard"
	Heatmap    Mode = "heatmap"
	Networking Mode = "networking"
	Traffic    Mode = "traffic"
	Globe      Mode = "globe"
)

// All returns every map mode in display order.
func All() []Mode {
	return []Mode{Standard, Heatmap, Networking, Traffic, Globe}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case Standard, Heatmap, Networking, Traffic, Globe:
		return true
	}
	return false
}

// Projected reports whether the mode lays tiles out on the flat grid.
func (m Mode) Projected() bool {
	return m != Globe
}

// Parse converts a string into a Mode.
func Parse(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown map mode %q", s)
	}
	return m, nil
}

// Interaction selects how a one-finger or mouse drag moves the camera.
type Interaction string

const (
	Pan    Interaction = "pan"
	Rotate Interaction = "rotate"
)

// Valid reports whether i is pan or rotate.
func (i Interaction) Valid() bool {
	return i == Pan || i == Rotate
}

// ParseInteraction converts a string into an Interaction.
func ParseInteraction(s string) (Interaction, error) {
	i := Interaction(s)
	if !i.Valid() {
		return "", fmt.Errorf("unknown interaction mode %q", s)
	}
	return i, nil
}

// DefaultInteraction returns the interaction forced on entry to mode m.
func DefaultInteraction(m Mode) Interaction {
	if m == Globe {
		return Rotate
	}
	return Pan
}
