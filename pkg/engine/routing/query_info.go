package routing

import (
	"github.com/lintang-b-s/osmroute/pkg"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
)

// VertexInfo. search label of one vertex, owned by a single query
type VertexInfo struct {
	g          float64 // cost of the best known path from s
	h          float64 // haversine lower bound to t
	parent     da.Index
	parentEdge da.Index // outEdge id parent->this vertex
	visited    bool     // settled (closed set)
	heapNode   *da.PriorityQueueNode[da.Index]
}

func NewVertexInfo(g, h float64, parent, parentEdge da.Index, hnode *da.PriorityQueueNode[da.Index]) *VertexInfo {
	return &VertexInfo{
		g:          g,
		h:          h,
		parent:     parent,
		parentEdge: parentEdge,
		heapNode:   hnode,
	}
}

func (vi *VertexInfo) GetG() float64 {
	return vi.g
}

func (vi *VertexInfo) GetH() float64 {
	return vi.h
}

func (vi *VertexInfo) GetF() float64 {
	return vi.g + vi.h
}

func (vi *VertexInfo) GetParent() da.Index {
	return vi.parent
}

func (vi *VertexInfo) GetParentEdge() da.Index {
	return vi.parentEdge
}

func (vi *VertexInfo) update(g float64, parent, parentEdge da.Index) {
	vi.g = g
	vi.parent = parent
	vi.parentEdge = parentEdge
}

func (vi *VertexInfo) Visit() {
	vi.visited = true
}

func (vi *VertexInfo) IsVisited() bool {
	return vi.visited
}

func (vi *VertexInfo) GetHeapNode() *da.PriorityQueueNode[da.Index] {
	return vi.heapNode
}

// SearchResult. predecessor table of a finished query. vertices missing from info were never reached
type SearchResult struct {
	source da.Index
	target da.Index
	cost   float64
	info   map[da.Index]*VertexInfo

	numSettledNodes int
}

func NewSearchResult(source, target da.Index, cost float64, info map[da.Index]*VertexInfo) *SearchResult {
	return &SearchResult{
		source: source,
		target: target,
		cost:   cost,
		info:   info,
	}
}

func (sr *SearchResult) GetSource() da.Index {
	return sr.source
}

func (sr *SearchResult) GetTarget() da.Index {
	return sr.target
}

// GetCost. g of the target
func (sr *SearchResult) GetCost() float64 {
	return sr.cost
}

func (sr *SearchResult) GetVertexInfo(v da.Index) (*VertexInfo, bool) {
	info, ok := sr.info[v]
	return info, ok
}

// GetG. pkg.INF_WEIGHT for unreached vertices
func (sr *SearchResult) GetG(v da.Index) float64 {
	if info, ok := sr.info[v]; ok {
		return info.g
	}
	return pkg.INF_WEIGHT
}

func (sr *SearchResult) NumSettledNodes() int {
	return sr.numSettledNodes
}
