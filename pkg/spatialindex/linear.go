package spatialindex

import (
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"go.uber.org/zap"
)

// Linear. brute force scan over every vertex, O(|V|) per query. fine for small maps and as a reference for Rtree
type Linear struct {
	graph *datastructure.Graph
}

func NewLinear() *Linear {
	return &Linear{}
}

func (l *Linear) Build(graph *datastructure.Graph, _ float64, log *zap.Logger) {
	l.graph = graph
	log.Info("Linear spatial index ready.", zap.Int("vertices", graph.NumberOfVertices()))
}

func (l *Linear) Len() int {
	if l.graph == nil {
		return 0
	}
	return l.graph.NumberOfVertices()
}

func (l *Linear) Nearest(qLat, qLon float64) datastructure.Index {
	best := newNearestCandidate()
	if l.graph == nil {
		return best.id
	}
	// vertices are visited in index order and offer only replaces on a strictly smaller distance
	l.graph.ForVertices(func(v *datastructure.Vertex) {
		best.offer(v.GetID(), geo.CalculateHaversineDistance(qLat, qLon, v.GetLat(), v.GetLon()))
	})
	return best.id
}

func (l *Linear) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	if l.graph == nil {
		return nil
	}
	results := make([]radiusHit, 0, 10)
	l.graph.ForVertices(func(v *datastructure.Vertex) {
		dist := geo.CalculateHaversineDistance(qLat, qLon, v.GetLat(), v.GetLon())
		if dist <= radius {
			results = append(results, radiusHit{id: v.GetID(), dist: dist})
		}
	})
	return sortHits(results)
}
