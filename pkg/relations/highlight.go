package relations

// Focus returns the business the highlight centers on: hover wins over selection.
func Focus(hoveredID, selectedID string) string {
	if hoveredID != "" {
		return hoveredID
	}
	return selectedID
}

// Graph indexes edges by participant for highlight queries.
type Graph struct {
	links map[string]map[string]EdgeType
}

// NewGraph builds the index. Later edges for the same pair are ignored.
func NewGraph(edges []Edge) *Graph {
	g := &Graph{links: make(map[string]map[string]EdgeType)}
	for _, e := range edges {
		a, b := e.Participants[0], e.Participants[1]
		g.link(a, b, e.Type)
		g.link(b, a, e.Type)
	}
	return g
}

func (g *Graph) link(from, to string, t EdgeType) {
	m := g.links[from]
	if m == nil {
		m = make(map[string]EdgeType)
		g.links[from] = m
	}
	if _, ok := m[to]; !ok {
		m[to] = t
	}
}

// Related reports whether id should be highlighted around focus. With no
// focus everything is related. The focus itself is related with no edge type.
// Otherwise id is related iff an edge joins it to focus, and that edge's
// type is returned.
func (g *Graph) Related(focus, id string) (bool, EdgeType) {
	if focus == "" || focus == id {
		return true, ""
	}
	if g == nil {
		return false, ""
	}
	t, ok := g.links[focus][id]
	return ok, t
}

// Degree returns the number of distinct neighbours of id.
func (g *Graph) Degree(id string) int {
	if g == nil {
		return 0
	}
	return len(g.links[id])
}
