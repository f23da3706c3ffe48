package relations

import "sort"

// Adjacency converts edges into a neighbour list keyed by business id.
// Lists are sorted for deterministic output and guaranteed bidirectional.
func Adjacency(edges []Edge) map[string][]string {
	conn := make(map[string]map[string]bool)
	add := func(a, b string) {
		if conn[a] == nil {
			conn[a] = make(map[string]bool)
		}
		conn[a][b] = true
	}
	for _, e := range edges {
		a, b := e.Participants[0], e.Participants[1]
		if a == b {
			continue
		}
		add(a, b)
		add(b, a)
	}

	result := make(map[string][]string, len(conn))
	for id, neighbors := range conn {
		ids := make([]string, 0, len(neighbors))
		for nid := range neighbors {
			ids = append(ids, nid)
		}
		sort.Strings(ids)
		result[id] = ids
	}
	return result
}

// Clusters returns the connected components of the edge graph, largest
// first. Members of each cluster are sorted; ties between clusters of the
// same size are broken by their first member. Isolated businesses do not
// appear.
func Clusters(edges []Edge) [][]string {
	adj := Adjacency(edges)

	ids := make([]string, 0, len(adj))
	for id := range adj {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	visited := make(map[string]bool, len(adj))
	var clusters [][]string
	for _, start := range ids {
		if visited[start] {
			continue
		}
		var members []string
		stack := []string{start}
		visited[start] = true
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, id)
			for _, n := range adj[id] {
				if !visited[n] {
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
		sort.Strings(members)
		clusters = append(clusters, members)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if len(clusters[i]) != len(clusters[j]) {
			return len(clusters[i]) > len(clusters[j])
		}
		return clusters[i][0] < clusters[j][0]
	})
	return clusters
}
