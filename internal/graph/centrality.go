package graph

// computeCentrality fills in DegreeCentrality, BetweennessCentrality, and
// ClosenessCentrality for every node in g, after all edges have been
// added. A graph with fewer than two nodes gets all zero centralities,
// and any node whose computation is numerically degenerate defaults to 0
// rather than failing the build.
func computeCentrality(g *Graph) {
	n := len(g.nodes)
	if n < 2 {
		return
	}

	computeDegreeCentrality(g)
	computeBetweennessCentrality(g)
	computeClosenessCentrality(g)
}

func computeDegreeCentrality(g *Graph) {
	n := len(g.nodes)
	denom := float64(n - 1)
	if denom <= 0 {
		return
	}
	for i := range g.nodes {
		deg := len(g.out[i]) + len(g.in[i])
		c := float64(deg) / denom
		if c < 0 || c > 1 {
			c = 0
		}
		g.nodes[i].DegreeCentrality = c
	}
}

// computeBetweennessCentrality runs Brandes' algorithm for directed graphs
// and normalizes to [0,1] by dividing by (n-1)(n-2), the maximum number of
// ordered pairs of nodes a directed shortest path between two other nodes
// can pass through.
func computeBetweennessCentrality(g *Graph) {
	n := len(g.nodes)
	betweenness := make([]float64, n)

	for s := 0; s < n; s++ {
		stack := make([]int, 0, n)
		preds := make([][]int, n)
		sigma := make([]float64, n)
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		sigma[s] = 1
		dist[s] = 0

		queue := make([]int, 0, n)
		queue = append(queue, s)
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, e := range g.out[v] {
				w := e.to
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				if sigma[w] == 0 {
					continue
				}
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != s {
				betweenness[w] += delta[w]
			}
		}
	}

	scale := 0.0
	if n > 2 {
		scale = 1.0 / float64((n-1)*(n-2))
	}
	for i := range g.nodes {
		c := betweenness[i] * scale
		if c < 0 || c > 1 || c != c { // c != c catches NaN degeneracy
			c = 0
		}
		g.nodes[i].BetweennessCentrality = c
	}
}

// computeClosenessCentrality computes, for each node v, closeness based on
// the shortest-path distance from every other node that can reach v
// (i.e. BFS over the reverse graph rooted at v), using the
// Wasserman-Faust "improved" formula so partially-connected graphs still
// get a meaningful, comparable score instead of collapsing to 0.
func computeClosenessCentrality(g *Graph) {
	n := len(g.nodes)
	for v := 0; v < n; v++ {
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		dist[v] = 0
		queue := []int{v}
		reachable := 0
		sumDist := 0
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, from := range g.in[u] {
				if dist[from] < 0 {
					dist[from] = dist[u] + 1
					reachable++
					sumDist += dist[from]
					queue = append(queue, from)
				}
			}
		}

		c := 0.0
		if reachable > 0 && sumDist > 0 {
			c = (float64(reachable) / float64(sumDist)) * (float64(reachable) / float64(n-1))
		}
		if c < 0 || c > 1 || c != c {
			c = 0
		}
		g.nodes[v].ClosenessCentrality = c
	}
}
