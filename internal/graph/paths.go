package graph

// ShortestPath returns one shortest directed path from source to target
// (inclusive), found by BFS, and whether target is reachable at all. This
// mirrors the path-analysis feature of the reference service's
// impact-analyzer service, which exposed both a shortest path and a
// bounded sample of simple paths.
func ShortestPath(g *Graph, source, target string) ([]string, bool) {
	from, ok := g.index[source]
	if !ok {
		return nil, false
	}
	to, ok := g.index[target]
	if !ok {
		return nil, false
	}
	if from == to {
		return []string{source}, true
	}

	prev := make([]int, len(g.nodes))
	for i := range prev {
		prev[i] = -1
	}
	visited := make([]bool, len(g.nodes))
	visited[from] = true
	queue := []int{from}

	found := false
	for len(queue) > 0 && !found {
		v := queue[0]
		queue = queue[1:]
		for _, e := range g.out[v] {
			if visited[e.to] {
				continue
			}
			visited[e.to] = true
			prev[e.to] = v
			if e.to == to {
				found = true
				break
			}
			queue = append(queue, e.to)
		}
	}

	if !visited[to] {
		return nil, false
	}

	var path []int
	for at := to; at != -1; at = prev[at] {
		path = append([]int{at}, path...)
		if at == from {
			break
		}
	}
	ids := make([]string, len(path))
	for i, idx := range path {
		ids[i] = g.nodes[idx].ID
	}
	return ids, true
}

// SimplePaths enumerates up to maxPaths simple (no repeated node) directed
// paths from source to target via bounded DFS, mirroring the reference
// service's networkx.all_simple_paths sample (capped at 10 there). A
// maxPaths of 0 or less returns no paths without searching.
func SimplePaths(g *Graph, source, target string, maxPaths int) [][]string {
	from, fromOK := g.index[source]
	to, toOK := g.index[target]
	if !fromOK || !toOK || maxPaths <= 0 {
		return nil
	}

	var paths [][]string
	visited := make([]bool, len(g.nodes))
	var walk func(v int, path []int)
	walk = func(v int, path []int) {
		if len(paths) >= maxPaths {
			return
		}
		if v == to {
			ids := make([]string, len(path))
			for i, idx := range path {
				ids[i] = g.nodes[idx].ID
			}
			paths = append(paths, ids)
			return
		}
		visited[v] = true
		for _, e := range g.out[v] {
			if !visited[e.to] && len(paths) < maxPaths {
				walk(e.to, append(path, e.to))
			}
		}
		visited[v] = false
	}
	walk(from, []int{from})
	return paths
}
