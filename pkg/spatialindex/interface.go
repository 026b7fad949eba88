package spatialindex

import (
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"go.uber.org/zap"
)

type SpatialIndex interface {
	Build(graph *datastructure.Graph, initialRadius float64, log *zap.Logger)
	Nearest(qLat, qLon float64) datastructure.Index
	SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index
	Len() int
}

const (
	RTREE  = "rtree"
	LINEAR = "linear"
)

// New. index by name, anything other than "linear" gets an r-tree
func New(kind string) SpatialIndex {
	if kind == LINEAR {
		return NewLinear()
	}
	return NewRtree()
}
