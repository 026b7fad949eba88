package datastructure

import (
	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

type Index uint32

const INVALID_VERTEX_ID Index = ^Index(0)

type Vertex struct {
	lat      float64
	lon      float64
	osmID    int64
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	id       Index
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

func (v *Vertex) SetFirstOut(firstOut Index) {
	v.firstOut = firstOut
}

func (v *Vertex) SetOsmID(osmID int64) {
	v.osmID = osmID
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetOsmID() int64 {
	return v.osmID
}

func (v *Vertex) GetFirstOut() Index {
	return v.firstOut
}

// outedge (tail, head). weight is the search cost, dist the geometric length, both in meter
type OutEdge struct {
	weight    float64
	dist      float64
	edgeId    Index
	head      Index
	roadClass pkg.OsmHighwayType
}

func NewOutEdge(edgeId, head Index, weight, dist float64, roadClass pkg.OsmHighwayType) *OutEdge {
	return &OutEdge{
		edgeId:    edgeId,
		head:      head,
		weight:    weight,
		dist:      dist,
		roadClass: roadClass,
	}
}

func (e *OutEdge) GetWeight() float64 {
	return e.weight
}

func (e *OutEdge) GetLength() float64 {
	return e.dist
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *OutEdge) GetEdgeId() Index {
	return e.edgeId
}

func (e *OutEdge) GetRoadClass() pkg.OsmHighwayType {
	return e.roadClass
}

// road network graph in compressed sparse row layout. static (i.e. can't add new edges)
// vertices has one extra sentinel entry so that outEdges of u are outEdges[vertices[u].firstOut:vertices[u+1].firstOut]
type Graph struct {
	vertices []*Vertex
	outEdges []*OutEdge

	boundingBox *geo.BoundingBox

	sccs               []Index   // scc id per vertex
	sccCondensationAdj [][]Index // dag between sccs
}

func NewGraph(vertices []*Vertex, outEdges []*OutEdge) *Graph {
	bb := geo.NewBoundingBox()
	for i := 0; i < len(vertices)-1; i++ {
		bb.Add(vertices[i].lat, vertices[i].lon)
	}
	return &Graph{vertices: vertices, outEdges: outEdges, boundingBox: bb}
}

func (g *Graph) NumberOfVertices() int {
	if len(g.vertices) == 0 {
		return 0
	}
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

// HasVertex. u is a vertex of this graph
func (g *Graph) HasVertex(u Index) bool {
	return int(u) < g.NumberOfVertices()
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	return g.vertices[u].lat, g.vertices[u].lon
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.vertices[u+1].firstOut - g.vertices[u].firstOut
}

func (g *Graph) GetExitOffset(u Index) Index {
	return g.vertices[u].firstOut
}

func (g *Graph) GetOutEdge(e Index) *OutEdge {
	return g.outEdges[e]
}

func (g *Graph) GetBoundingBox() *geo.BoundingBox {
	return g.boundingBox
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *OutEdge)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(g.outEdges[e])
	}
}

// FindOutEdge. cheapest edge u->v, parallel edges can exist when two ways share a segment
func (g *Graph) FindOutEdge(u, v Index) (*OutEdge, bool) {
	var (
		best  *OutEdge
		found bool
	)
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		if g.outEdges[e].head != v {
			continue
		}
		if !found || g.outEdges[e].weight < best.weight {
			best = g.outEdges[e]
			found = true
		}
	}
	return best, found
}

func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for i := 0; i < g.NumberOfVertices(); i++ {
		handle(g.vertices[i])
	}
}
