package routing

import (
	"github.com/lintang-b-s/osmroute/pkg"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

// Path. vertices from source to target (inclusive), Distance is the geometric length in meter,
// Cost the search cost of the target (equal to Distance without road class penalty)
type Path struct {
	Nodes    []da.Index
	Coords   []geo.Coordinate
	Edges    []da.Index
	Distance float64
	Cost     float64
}

func (p *Path) NumberOfNodes() int {
	return len(p.Nodes)
}

// UnpackPath. follow parent links from target back to source. a missing label, a parent edge that does not
// connect the two vertices, or more than |V| steps (cycle) is a pkg.ErrBrokenChain
func UnpackPath(graph *da.Graph, result *SearchResult) (*Path, error) {
	s, t := result.GetSource(), result.GetTarget()
	if _, ok := result.GetVertexInfo(t); !ok {
		return nil, util.WrapErrorf(nil, pkg.ErrBrokenChain, "target %d has no search label", t)
	}

	reversedNodes := make([]da.Index, 0, 32)
	reversedEdges := make([]da.Index, 0, 32)
	distance := 0.0

	maxSteps := graph.NumberOfVertices()
	cur := t
	for steps := 0; cur != s; steps++ {
		if steps >= maxSteps {
			return nil, util.WrapErrorf(nil, pkg.ErrBrokenChain, "predecessor cycle, walked %d steps without reaching source %d",
				steps, s)
		}

		info, ok := result.GetVertexInfo(cur)
		if !ok || info.GetParent() == da.INVALID_VERTEX_ID {
			return nil, util.WrapErrorf(nil, pkg.ErrBrokenChain, "vertex %d has no predecessor", cur)
		}

		parent := info.GetParent()
		edge, err := parentEdge(graph, parent, cur, info.GetParentEdge())
		if err != nil {
			return nil, err
		}

		distance += edge.GetLength()
		reversedNodes = append(reversedNodes, cur)
		reversedEdges = append(reversedEdges, edge.GetEdgeId())
		cur = parent
	}
	reversedNodes = append(reversedNodes, s)

	nodes := util.ReverseG(reversedNodes)
	coords := make([]geo.Coordinate, len(nodes))
	for i, v := range nodes {
		lat, lon := graph.GetVertexCoordinates(v)
		coords[i] = geo.NewCoordinate(lat, lon)
	}

	return &Path{
		Nodes:    nodes,
		Coords:   coords,
		Edges:    util.ReverseG(reversedEdges),
		Distance: distance,
		Cost:     result.GetCost(),
	}, nil
}

func parentEdge(graph *da.Graph, tail, head, edgeId da.Index) (*da.OutEdge, error) {
	if !graph.HasVertex(tail) {
		return nil, util.WrapErrorf(nil, pkg.ErrBrokenChain, "predecessor %d of %d is not a vertex", tail, head)
	}
	first := graph.GetExitOffset(tail)
	last := first + graph.GetOutDegree(tail)
	if edgeId >= first && edgeId < last && graph.GetOutEdge(edgeId).GetHead() == head {
		return graph.GetOutEdge(edgeId), nil
	}

	// label without an edge id, look the edge up
	if e, ok := graph.FindOutEdge(tail, head); ok {
		return e, nil
	}
	return nil, util.WrapErrorf(nil, pkg.ErrBrokenChain, "no edge %d -> %d", tail, head)
}
