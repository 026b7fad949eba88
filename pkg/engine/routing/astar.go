package routing

import (
	"context"

	"github.com/lintang-b-s/osmroute/pkg"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

// AStar. unidirectional a* over the road graph. the graph is only read, every query gets its own
// label table & priority queue so one AStar can serve concurrent queries
type AStar struct {
	graph *da.Graph
}

func NewAStar(graph *da.Graph) *AStar {
	return &AStar{graph: graph}
}

type astarQuery struct {
	graph  *da.Graph
	target da.Index

	targetLat, targetLon float64

	info map[da.Index]*VertexInfo
	pq   *da.MinHeap[da.Index]
	seq  uint64

	numSettledNodes int
}

func (as *AStar) ShortestPath(s, t da.Index) (*SearchResult, bool, error) {
	return as.ShortestPathWithContext(context.Background(), s, t)
}

// ShortestPathWithContext. returns found=false when t is unreachable from s. ctx is checked once per
// extract-min and ctx.Err() is returned when it is done
func (as *AStar) ShortestPathWithContext(ctx context.Context, s, t da.Index) (*SearchResult, bool, error) {
	if !as.graph.HasVertex(s) || !as.graph.HasVertex(t) {
		return nil, false, util.WrapErrorf(nil, pkg.ErrInvalidEndpoints, "source %d or target %d is not a vertex (|V| = %d)",
			s, t, as.graph.NumberOfVertices())
	}

	q := newAstarQuery(as.graph, t)
	q.push(s, 0, da.INVALID_VERTEX_ID, da.INVALID_VERTEX_ID)

	for !q.pq.IsEmpty() {
		if util.StopConcurrentOperation(ctx) {
			return nil, false, ctx.Err()
		}

		node, _ := q.pq.ExtractMin()
		u := node.GetItem()
		uInfo := q.info[u]
		uInfo.Visit()
		q.numSettledNodes++

		if u == t {
			result := NewSearchResult(s, t, uInfo.g, q.info)
			result.numSettledNodes = q.numSettledNodes
			return result, true, nil
		}

		q.relax(u, uInfo)
	}

	result := NewSearchResult(s, t, pkg.INF_WEIGHT, q.info)
	result.numSettledNodes = q.numSettledNodes
	return result, false, nil
}

func newAstarQuery(graph *da.Graph, t da.Index) *astarQuery {
	tLat, tLon := graph.GetVertexCoordinates(t)
	return &astarQuery{
		graph:     graph,
		target:    t,
		targetLat: tLat,
		targetLon: tLon,
		info:      make(map[da.Index]*VertexInfo),
		pq:        da.NewFourAryHeap[da.Index](),
	}
}

// heuristic. straight-line distance to the target in meter, the same metric as edge length so it never overestimates
func (q *astarQuery) heuristic(v da.Index) float64 {
	lat, lon := q.graph.GetVertexCoordinates(v)
	return geo.CalculateHaversineDistanceMeter(lat, lon, q.targetLat, q.targetLon)
}

func (q *astarQuery) push(v da.Index, g float64, parent, parentEdge da.Index) {
	h := q.heuristic(v)
	node := da.NewPriorityQueueNode(da.NewRank(g+h, h, q.seq), v)
	q.seq++
	q.info[v] = NewVertexInfo(g, h, parent, parentEdge, node)
	q.pq.Insert(node)
}

func (q *astarQuery) relax(u da.Index, uInfo *VertexInfo) {
	q.graph.ForOutEdgesOf(u, func(e *da.OutEdge) {
		v := e.GetHead()
		vInfo, labelled := q.info[v]
		if labelled && vInfo.IsVisited() {
			return
		}

		tentative := uInfo.g + e.GetWeight()
		if !labelled {
			q.push(v, tentative, u, e.GetEdgeId())
			return
		}

		// strict, equal cost paths keep the first predecessor
		if tentative >= vInfo.g {
			return
		}
		vInfo.update(tentative, u, e.GetEdgeId())
		hnode := vInfo.GetHeapNode()
		// keep the insertion sequence, only f changes
		_ = q.pq.DecreaseKey(hnode, da.NewRank(tentative+vInfo.h, vInfo.h, hnode.GetRank().GetSeq()))
	})
}
