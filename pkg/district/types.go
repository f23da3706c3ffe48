package district

// Snapshot is a district definition: the logical grid and the businesses in it.
type Snapshot struct {
	Version    string     `yaml:"version" json:"version"`
	Name       string     `yaml:"name" json:"name"`
	Grid       GridDef    `yaml:"grid" json:"grid"`
	Businesses []Business `yaml:"businesses" json:"businesses" validate:"dive"`
}

// GridDef is the size of the logical grid in cells.
type GridDef struct {
	Cols int `yaml:"cols" json:"cols" validate:"min=1"`
	Rows int `yaml:"rows" json:"rows" validate:"min=1"`
}

// GridPosition is a 1-based cell coordinate.
type GridPosition struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Business is a single office building in the district.
type Business struct {
	ID             string         `yaml:"id" json:"id" validate:"required,max=64"`
	Name           string         `yaml:"name" json:"name"`
	Category       string         `yaml:"category" json:"category"`
	Description    string         `yaml:"description,omitempty" json:"description,omitempty"`
	Logo           string         `yaml:"logo,omitempty" json:"logo,omitempty"`
	GridPosition   GridPosition   `yaml:"grid_position" json:"grid_position"`
	IsOccupied     bool           `yaml:"is_occupied" json:"is_occupied"`
	ActiveVisitors int            `yaml:"active_visitors" json:"active_visitors" validate:"min=0"`
	Favorite       bool           `yaml:"favorite,omitempty" json:"favorite,omitempty"`
	Genome         *GenomeProfile `yaml:"genome_profile,omitempty" json:"genome_profile,omitempty"`
}

// GenomeProfile declares what a business offers and what it is looking for.
type GenomeProfile struct {
	ServicesOffered []string `yaml:"services_offered" json:"services_offered"`
	ServicesNeeded  []string `yaml:"services_needed" json:"services_needed"`
	IndustrySector  string   `yaml:"industry_sector" json:"industry_sector"`
	CompanySize     string   `yaml:"company_size" json:"company_size"`
}

// Occupied returns the businesses that currently have a tenant.
func Occupied(bs []Business) []Business {
	out := make([]Business, 0, len(bs))
	for _, b := range bs {
		if b.IsOccupied {
			out = append(out, b)
		}
	}
	return out
}

// ByID returns the business with the given id, or nil if not found.
func ByID(bs []Business, id string) *Business {
	for i := range bs {
		if bs[i].ID == id {
			return &bs[i]
		}
	}
	return nil
}

// Categories returns the distinct categories in first-seen order.
func Categories(bs []Business) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range bs {
		if b.Category == "" || seen[b.Category] {
			continue
		}
		seen[b.Category] = true
		out = append(out, b.Category)
	}
	return out
}
