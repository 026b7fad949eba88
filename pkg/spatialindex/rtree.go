package spatialindex

import (
	"sort"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const defaultInitialRadiusKm = 0.05

type Rtree struct {
	tr    *rtree.RTreeG[datastructure.Index]
	graph *datastructure.Graph

	initialRadius float64 // km
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr:            &tr,
		initialRadius: defaultInitialRadiusKm,
	}
}

// Build. build r-tree with one point entry per graph vertex. initialRadius (in km) is the radius of the first
// search box used by Nearest
func (rt *Rtree) Build(graph *datastructure.Graph, initialRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("vertices", graph.NumberOfVertices()))
	rt.graph = graph
	if initialRadius > 0 {
		rt.initialRadius = initialRadius
	}

	graph.ForVertices(func(v *datastructure.Vertex) {
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(p, p, v.GetID())
	})

	log.Info("R-tree spatial index built.", zap.Int("entries", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// Nearest. vertex closest to (qLat, qLon) by haversine distance, lowest index on ties.
// the search box grows until the best candidate lies inside the radius the box is guaranteed to cover,
// so the answer is always the exact nearest vertex. returns INVALID_VERTEX_ID on an empty index
func (rt *Rtree) Nearest(qLat, qLon float64) datastructure.Index {
	if rt.tr.Len() == 0 {
		return datastructure.INVALID_VERTEX_ID
	}

	maxRadius := geo.EarthHalfCircumferenceKm()
	for radius := rt.initialRadius; radius < maxRadius; radius *= 2 {
		best := newNearestCandidate()
		rt.searchBoxes(qLat, qLon, radius, func(id datastructure.Index, lat, lon float64) {
			best.offer(id, geo.CalculateHaversineDistance(qLat, qLon, lat, lon))
		})
		if best.found() && best.dist <= radius {
			return best.id
		}
	}

	best := newNearestCandidate()
	rt.tr.Scan(func(min, max [2]float64, id datastructure.Index) bool {
		best.offer(id, geo.CalculateHaversineDistance(qLat, qLon, min[1], min[0]))
		return true
	})
	return best.id
}

// SearchWithinRadius search for all vertices within radius (in km) from the query point (qLat, qLon),
// ordered by distance then index
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	results := make([]radiusHit, 0, 10)
	rt.searchBoxes(qLat, qLon, radius, func(id datastructure.Index, lat, lon float64) {
		dist := geo.CalculateHaversineDistance(qLat, qLon, lat, lon)
		if dist <= radius {
			results = append(results, radiusHit{id: id, dist: dist})
		}
	})
	return sortHits(results)
}

func (rt *Rtree) searchBoxes(qLat, qLon, radius float64, handle func(id datastructure.Index, lat, lon float64)) {
	for _, box := range geo.RadiusBounds(qLat, qLon, radius) {
		rt.tr.Search([2]float64{box.MinLon, box.MinLat}, [2]float64{box.MaxLon, box.MaxLat},
			func(min, max [2]float64, id datastructure.Index) bool {
				handle(id, min[1], min[0])
				return true
			})
	}
}

type nearestCandidate struct {
	id   datastructure.Index
	dist float64
}

func newNearestCandidate() *nearestCandidate {
	return &nearestCandidate{id: datastructure.INVALID_VERTEX_ID}
}

func (c *nearestCandidate) found() bool {
	return c.id != datastructure.INVALID_VERTEX_ID
}

func (c *nearestCandidate) offer(id datastructure.Index, dist float64) {
	if !c.found() || dist < c.dist || (dist == c.dist && id < c.id) {
		c.id = id
		c.dist = dist
	}
}

type radiusHit struct {
	id   datastructure.Index
	dist float64
}

func sortHits(hits []radiusHit) []datastructure.Index {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].id < hits[j].id
	})
	ids := make([]datastructure.Index, len(hits))
	for i := range hits {
		ids[i] = hits[i].id
	}
	return ids
}
