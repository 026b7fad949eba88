package engine

import (
	"context"
	"os"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/concurrent"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
	"github.com/lintang-b-s/osmroute/pkg/spatialindex"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

type Options struct {
	UseRoadClassPenalty bool
	SpatialIndex        string  // spatialindex.RTREE or spatialindex.LINEAR
	InitialRadiusKm     float64 // first search radius of the r-tree
	BatchWorkers        int
}

func DefaultOptions() Options {
	return Options{
		SpatialIndex:    spatialindex.RTREE,
		InitialRadiusKm: 0.05,
		BatchWorkers:    4,
	}
}

type Engine struct {
	graph  *datastructure.Graph
	index  spatialindex.SpatialIndex
	router routing.Router
	opts   Options
	logger *zap.Logger
}

type Query struct {
	Origin      geo.Coordinate
	Destination geo.Coordinate
}

func NewQuery(origin, destination geo.Coordinate) Query {
	return Query{Origin: origin, Destination: destination}
}

// Route. answer of one query, Source & Target are the snapped graph vertices
type Route struct {
	Source datastructure.Index
	Target datastructure.Index
	Path   *routing.Path

	NumSettledNodes int
}

type BatchResult struct {
	Route *Route
	Err   error
}

func NewEngineFromFile(mapFilePath string, opts Options, logger *zap.Logger) (*Engine, error) {
	logger.Info("Reading map from ", zap.String("mapFilePath", mapFilePath))
	data, err := os.ReadFile(mapFilePath)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "can't read map file %s", mapFilePath)
	}
	return NewEngine(data, opts, logger)
}

// NewEngine. parse -> graph -> spatial index. any failure aborts the load, no partial engine is returned
func NewEngine(data []byte, opts Options, logger *zap.Logger) (*Engine, error) {
	logger.Info("Parsing OSM map data...", zap.Int("bytes", len(data)))
	osmData, err := osmparser.Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Info("OSM map data parsed.", zap.Int("points", len(osmData.Points)),
		zap.Int("ways", len(osmData.Ways)), zap.Int("skippedWays", osmData.SkippedWays()))

	graph, err := osmparser.BuildGraph(osmData, osmparser.BuildOptions{UseRoadClassPenalty: opts.UseRoadClassPenalty})
	if err != nil {
		return nil, err
	}
	logger.Info("Road network graph built.", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Bool("roadClassPenalty", opts.UseRoadClassPenalty))

	graph.RunKosaraju()
	logger.Info("Strongly connected components computed.", zap.Int("sccs", graph.NumberOfSCCs()))

	index := spatialindex.New(opts.SpatialIndex)
	index.Build(graph, opts.InitialRadiusKm, logger)

	return &Engine{
		graph:  graph,
		index:  index,
		router: routing.NewAStar(graph),
		opts:   opts,
		logger: logger,
	}, nil
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

func (e *Engine) GetSpatialIndex() spatialindex.SpatialIndex {
	return e.index
}

// Snap. nearest graph vertex of a coordinate
func (e *Engine) Snap(c geo.Coordinate) (datastructure.Index, error) {
	if !validCoordinate(c) {
		return datastructure.INVALID_VERTEX_ID, util.WrapErrorf(nil, pkg.ErrInvalidEndpoints,
			"coordinate (%f, %f) is out of range", c.Lat, c.Lon)
	}
	v := e.index.Nearest(c.Lat, c.Lon)
	if !e.graph.HasVertex(v) {
		return datastructure.INVALID_VERTEX_ID, util.WrapErrorf(nil, pkg.ErrInvalidEndpoints,
			"coordinate (%f, %f) does not snap to any vertex", c.Lat, c.Lon)
	}
	return v, nil
}

// ShortestPath. snap both coordinates and run a*. an unreachable destination is pkg.ErrNoPathFound
func (e *Engine) ShortestPath(ctx context.Context, origin, destination geo.Coordinate) (*Route, error) {
	s, err := e.Snap(origin)
	if err != nil {
		return nil, err
	}
	t, err := e.Snap(destination)
	if err != nil {
		return nil, err
	}

	if !e.graph.Reachable(s, t) {
		return nil, util.WrapErrorf(nil, pkg.ErrNoPathFound, "vertex %d is not reachable from vertex %d", t, s)
	}

	result, found, err := e.router.ShortestPathWithContext(ctx, s, t)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, util.WrapErrorf(nil, pkg.ErrNoPathFound, "no path from vertex %d to vertex %d", s, t)
	}

	path, err := routing.UnpackPath(e.graph, result)
	if err != nil {
		e.logger.Error("path reconstruction failed", zap.Uint32("source", uint32(s)), zap.Uint32("target", uint32(t)),
			zap.Error(err))
		return nil, err
	}

	return &Route{
		Source:          s,
		Target:          t,
		Path:            path,
		NumSettledNodes: result.NumSettledNodes(),
	}, nil
}

// ShortestPathRelative. x (west->east) and y (south->north) in [0, 100] relative to the map bounding box
func (e *Engine) ShortestPathRelative(ctx context.Context, x1, y1, x2, y2 float64) (*Route, error) {
	for _, v := range []float64{x1, y1, x2, y2} {
		if v < 0 || v > 100 {
			return nil, util.WrapErrorf(nil, pkg.ErrInvalidEndpoints, "relative coordinate %f not in [0, 100]", v)
		}
	}
	bb := e.graph.GetBoundingBox()
	return e.ShortestPath(ctx, bb.RelativeCoordinate(x1, y1), bb.RelativeCoordinate(x2, y2))
}

// ShortestPaths. independent queries on BatchWorkers goroutines, result i answers queries[i]
func (e *Engine) ShortestPaths(ctx context.Context, queries []Query) []BatchResult {
	return concurrent.OrderedMap(e.opts.BatchWorkers, queries, func(q Query) BatchResult {
		route, err := e.ShortestPath(ctx, q.Origin, q.Destination)
		return BatchResult{Route: route, Err: err}
	})
}

func validCoordinate(c geo.Coordinate) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}
