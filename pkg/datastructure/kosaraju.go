package datastructure

// RunKosaraju. finds the strongly connected components of the graph and the condensation dag between them.
// dfs is iterative, road graphs are deep enough to blow recursion.
func (g *Graph) RunKosaraju() {
	n := g.NumberOfVertices()

	inAdj := make([][]Index, n)
	for u := Index(0); u < Index(n); u++ {
		g.ForOutEdgesOf(u, func(e *OutEdge) {
			inAdj[e.head] = append(inAdj[e.head], u)
		})
	}

	// first pass, post order on the forward graph
	order := make([]Index, 0, n)
	visited := make([]bool, n)
	type frame struct {
		v    Index
		next Index // next outEdge to explore
	}
	stack := make([]frame, 0, 64)
	for root := Index(0); root < Index(n); root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack = append(stack, frame{v: root, next: g.vertices[root].firstOut})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < g.vertices[top.v+1].firstOut {
				head := g.outEdges[top.next].head
				top.next++
				if !visited[head] {
					visited[head] = true
					stack = append(stack, frame{v: head, next: g.vertices[head].firstOut})
				}
				continue
			}
			order = append(order, top.v)
			stack = stack[:len(stack)-1]
		}
	}

	// second pass on the reversed graph in reverse post order
	sccs := make([]Index, n)
	for i := range sccs {
		sccs[i] = INVALID_VERTEX_ID
	}
	numComponents := Index(0)
	dfsStack := make([]Index, 0, 64)
	for i := n - 1; i >= 0; i-- {
		root := order[i]
		if sccs[root] != INVALID_VERTEX_ID {
			continue
		}
		sccs[root] = numComponents
		dfsStack = append(dfsStack, root)
		for len(dfsStack) > 0 {
			v := dfsStack[len(dfsStack)-1]
			dfsStack = dfsStack[:len(dfsStack)-1]
			for _, tail := range inAdj[v] {
				if sccs[tail] == INVALID_VERTEX_ID {
					sccs[tail] = numComponents
					dfsStack = append(dfsStack, tail)
				}
			}
		}
		numComponents++
	}

	condAdj := make([][]Index, numComponents)
	seen := make(map[[2]Index]struct{})
	for u := Index(0); u < Index(n); u++ {
		g.ForOutEdgesOf(u, func(e *OutEdge) {
			from, to := sccs[u], sccs[e.head]
			if from == to {
				return
			}
			if _, ok := seen[[2]Index{from, to}]; ok {
				return
			}
			seen[[2]Index{from, to}] = struct{}{}
			condAdj[from] = append(condAdj[from], to)
		})
	}

	g.sccs = sccs
	g.sccCondensationAdj = condAdj
}

func (g *Graph) NumberOfSCCs() int {
	return len(g.sccCondensationAdj)
}

func (g *Graph) GetSCCOfAVertex(u Index) Index {
	return g.sccs[u]
}

// Reachable. v can be reached from u. needs RunKosaraju, without it every pair is reported reachable
func (g *Graph) Reachable(u, v Index) bool {
	if g.sccs == nil {
		return true
	}
	from, to := g.sccs[u], g.sccs[v]
	if from == to {
		return true
	}

	visited := make(map[Index]struct{})
	queue := []Index{from}
	visited[from] = struct{}{}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, next := range g.sccCondensationAdj[c] {
			if next == to {
				return true
			}
			if _, ok := visited[next]; !ok {
				visited[next] = struct{}{}
				queue = append(queue, next)
			}
		}
	}
	return false
}
