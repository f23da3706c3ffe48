package analytics

// CategoryStat holds the occupancy and traffic of one category.
type CategoryStat struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Occupied int    `json:"occupied"`
	Visitors int    `json:"visitors"`
}

// BusyTile is one entry of the busiest-businesses ranking.
type BusyTile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Visitors int    `json:"visitors"`
}

// ServiceBalance compares how many businesses offer and need a service.
type ServiceBalance struct {
	Service string `json:"service"`
	Offered int    `json:"offered"`
	Needed  int    `json:"needed"`
}

// Unmet reports whether somebody needs the service and nobody offers it.
func (s ServiceBalance) Unmet() bool {
	return s.Needed > 0 && s.Offered == 0
}

// ProfileBreakdown counts genome profiles by sector and company size.
type ProfileBreakdown struct {
	Profiled   int            `json:"profiled"`
	BySector   map[string]int `json:"by_sector"`
	BySize     map[string]int `json:"by_size"`
	Unprofiled int            `json:"unprofiled"`
}

// Spatial describes how the district fills its grid.
type Spatial struct {
	Cells         int        `json:"cells"`
	FilledCells   int        `json:"filled_cells"`
	FillRate      float64    `json:"fill_rate"`
	VisitorsByCol []int      `json:"visitors_by_col"`
	VisitorsByRow []int      `json:"visitors_by_row"`
	VisitorCenter [2]float64 `json:"visitor_center"`
	OutOfGrid     int        `json:"out_of_grid"`
	SharedCells   int        `json:"shared_cells"`
}

// Summary is the district-level digest used by the legend, the CLI and the
// trend-analysis prompt.
type Summary struct {
	Total         int              `json:"total"`
	Occupied      int              `json:"occupied"`
	Vacant        int              `json:"vacant"`
	OccupancyRate float64          `json:"occupancy_rate"`
	TotalVisitors int              `json:"total_visitors"`
	AvgVisitors   float64          `json:"avg_visitors"`
	MaxVisitors   int              `json:"max_visitors"`
	Favorites     int              `json:"favorites"`
	Categories    []CategoryStat   `json:"categories"`
	Busiest       []BusyTile       `json:"busiest"`
	Services      []ServiceBalance `json:"services"`
	Profiles      ProfileBreakdown `json:"profiles"`
	Spatial       Spatial          `json:"spatial"`
}
