package scene2d

// Scene2D is the top-down overlay for an SVG renderer: the grid cells, the
// networking connections, the traffic corridors and the legend.
type Scene2D struct {
	Metadata    Metadata       `json:"metadata"`
	Cells       []Cell2D       `json:"cells"`
	Connections []Connection2D `json:"connections"`
	Corridors   []Corridor2D   `json:"corridors"`
	Legend      Legend         `json:"legend"`
}

// Metadata holds grid-level data the renderer needs to size its viewBox.
type Metadata struct {
	Mode          string  `json:"mode"`
	ContainerSize float64 `json:"container_size"`
	Cols          int     `json:"cols"`
	Rows          int     `json:"rows"`
	CellSize      float64 `json:"cell_size"`
	Occupied      int     `json:"occupied"`
	GeneratedAt   string  `json:"generated_at"`
}

// Cell2D is one grid cell. Empty lots have no BusinessID.
type Cell2D struct {
	Col         int        `json:"col"`
	Row         int        `json:"row"`
	Origin      [2]float64 `json:"origin"`
	Size        float64    `json:"size"`
	BusinessID  string     `json:"business_id,omitempty"`
	Name        string     `json:"name,omitempty"`
	Color       string     `json:"color"`
	Label       string     `json:"label,omitempty"`
	Highlighted bool       `json:"highlighted,omitempty"`
	Dimmed      bool       `json:"dimmed,omitempty"`
}

// Connection2D is a networking edge drawn between two cell centers.
type Connection2D struct {
	ID     string     `json:"id"`
	From   [2]float64 `json:"from"`
	To     [2]float64 `json:"to"`
	Type   string     `json:"type"`
	Stroke string     `json:"stroke"`
	Dash   string     `json:"dash,omitempty"`
	Active bool       `json:"active,omitempty"`
	Dimmed bool       `json:"dimmed,omitempty"`
}

// Corridor2D is a traffic corridor line.
type Corridor2D struct {
	ID       string     `json:"id"`
	Axis     string     `json:"axis"`
	Start    [2]float64 `json:"start"`
	End      [2]float64 `json:"end"`
	Visitors int        `json:"visitors"`
	Level    string     `json:"level"`
	Width    float64    `json:"width"`
	Color    string     `json:"color"`
}

// Legend explains the colors of the active mode.
type Legend struct {
	Mode        string        `json:"mode"`
	Entries     []LegendEntry `json:"entries"`
	MinVisitors int           `json:"min_visitors"`
	MaxVisitors int           `json:"max_visitors"`
}

// LegendEntry is one swatch.
type LegendEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
	Dash  string `json:"dash,omitempty"`
	Min   int    `json:"min,omitempty"`
	Max   int    `json:"max,omitempty"`
}
