package osmparser

import (
	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

type BuildOptions struct {
	// UseRoadClassPenalty. edge cost = length * pkg.RoadClassPenalty(roadClass). off by default, cost == length
	UseRoadClassPenalty bool
}

type Edge struct {
	from      datastructure.Index
	to        datastructure.Index
	weight    float64
	distance  float64
	roadClass pkg.OsmHighwayType
}

func NewEdge(from, to datastructure.Index, weight, distance float64, roadClass pkg.OsmHighwayType) Edge {
	return Edge{
		from:      from,
		to:        to,
		weight:    weight,
		distance:  distance,
		roadClass: roadClass,
	}
}

type graphBuilder struct {
	opts        BuildOptions
	points      map[int64]Point
	nodeIDMap   map[int64]datastructure.Index
	nodeToOsmId []int64

	scannedEdges []Edge
	edgeSet      map[[2]datastructure.Index]int // (from,to) -> position in scannedEdges
}

// BuildGraph. one vertex per point referenced by a way (in first-reference order), one directed edge per
// traversable consecutive point pair. returns pkg.ErrEmptyGraph if no vertex is created.
func BuildGraph(data *OsmData, opts BuildOptions) (*datastructure.Graph, error) {
	b := &graphBuilder{
		opts:         opts,
		points:       data.Points,
		nodeIDMap:    make(map[int64]datastructure.Index),
		nodeToOsmId:  make([]int64, 0),
		scannedEdges: make([]Edge, 0),
		edgeSet:      make(map[[2]datastructure.Index]int),
	}

	for _, way := range data.Ways {
		if err := b.processWay(way); err != nil {
			return nil, err
		}
	}

	if len(b.nodeToOsmId) == 0 {
		return nil, util.WrapErrorf(nil, pkg.ErrEmptyGraph, "no routable way in map data")
	}

	return b.buildCSR(), nil
}

func (b *graphBuilder) vertexOf(osmID int64) datastructure.Index {
	if id, ok := b.nodeIDMap[osmID]; ok {
		return id
	}
	id := datastructure.Index(len(b.nodeToOsmId))
	b.nodeIDMap[osmID] = id
	b.nodeToOsmId = append(b.nodeToOsmId, osmID)
	return id
}

func (b *graphBuilder) processWay(way Way) error {
	for _, ref := range way.Nodes {
		if _, ok := b.points[ref]; !ok {
			return util.WrapErrorf(nil, pkg.ErrMalformedData, "way %d references undefined node %d", way.ID, ref)
		}
	}

	// a single-node way still produces its vertex
	for _, ref := range way.Nodes {
		b.vertexOf(ref)
	}

	penalty := 1.0
	if b.opts.UseRoadClassPenalty {
		penalty = pkg.RoadClassPenalty(way.RoadClass)
	}

	for i := 1; i < len(way.Nodes); i++ {
		fromOsm, toOsm := way.Nodes[i-1], way.Nodes[i]
		if fromOsm == toOsm {
			continue
		}
		from, to := b.nodeIDMap[fromOsm], b.nodeIDMap[toOsm]
		fromPoint, toPoint := b.points[fromOsm], b.points[toOsm]

		distance := geo.CalculateHaversineDistanceMeter(fromPoint.Lat, fromPoint.Lon, toPoint.Lat, toPoint.Lon)
		weight := distance * penalty

		switch way.Direction {
		case FORWARD:
			b.addEdge(NewEdge(from, to, weight, distance, way.RoadClass))
		case BACKWARD:
			b.addEdge(NewEdge(to, from, weight, distance, way.RoadClass))
		default:
			b.addEdge(NewEdge(from, to, weight, distance, way.RoadClass))
			b.addEdge(NewEdge(to, from, weight, distance, way.RoadClass))
		}
	}
	return nil
}

// addEdge. two ways sharing the same segment keep only the cheapest edge
func (b *graphBuilder) addEdge(e Edge) {
	key := [2]datastructure.Index{e.from, e.to}
	if pos, ok := b.edgeSet[key]; ok {
		if e.weight < b.scannedEdges[pos].weight {
			b.scannedEdges[pos] = e
		}
		return
	}
	b.edgeSet[key] = len(b.scannedEdges)
	b.scannedEdges = append(b.scannedEdges, e)
}

func (b *graphBuilder) buildCSR() *datastructure.Graph {
	numV := len(b.nodeToOsmId)

	outDegree := make([]int, numV)
	for _, e := range b.scannedEdges {
		outDegree[e.from]++
	}

	vertices := make([]*datastructure.Vertex, numV+1)
	firstOut := make([]datastructure.Index, numV+1)
	for v := 0; v < numV; v++ {
		firstOut[v+1] = firstOut[v] + datastructure.Index(outDegree[v])
	}

	for v := 0; v < numV; v++ {
		p := b.points[b.nodeToOsmId[v]]
		vertices[v] = datastructure.NewVertex(p.Lat, p.Lon, datastructure.Index(v))
		vertices[v].SetOsmID(p.ID)
		vertices[v].SetFirstOut(firstOut[v])
	}
	// sentinel
	vertices[numV] = datastructure.NewVertex(0, 0, datastructure.Index(numV))
	vertices[numV].SetFirstOut(firstOut[numV])

	// stable placement, edges of u keep their scan order
	outEdges := make([]*datastructure.OutEdge, len(b.scannedEdges))
	next := make([]datastructure.Index, numV)
	copy(next, firstOut[:numV])
	for _, e := range b.scannedEdges {
		edgeId := next[e.from]
		outEdges[edgeId] = datastructure.NewOutEdge(edgeId, e.to, e.weight, e.distance, e.roadClass)
		next[e.from]++
	}

	return datastructure.NewGraph(vertices, outEdges)
}
