package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	geojson "github.com/paulmach/go.geojson"
	"go.uber.org/zap"
)

type RoutingService struct {
	log     *zap.Logger
	engine  RoutingEngine
	timeout time.Duration
}

// RouteResult. route as served by the api, Polyline is google encoded (precision 5)
type RouteResult struct {
	Distance float64
	Polyline string
	Geometry *geojson.Geometry
	Nodes    int
}

type Query struct {
	OriginLat, OriginLon           float64
	DestinationLat, DestinationLon float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, timeout time.Duration) *RoutingService {
	return &RoutingService{
		log:     log,
		engine:  engine,
		timeout: timeout,
	}
}

func (rs *RoutingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if rs.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, rs.timeout)
}

func (rs *RoutingService) ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (*RouteResult, error) {
	ctx, cancel := rs.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	route, err := rs.engine.ShortestPath(ctx, geo.NewCoordinate(origLat, origLon), geo.NewCoordinate(dstLat, dstLon))
	routeQueryDuration.WithLabelValues("coordinate").Observe(time.Since(start).Seconds())
	if err != nil {
		rs.observeError(err, zap.Float64("origLat", origLat), zap.Float64("origLon", origLon),
			zap.Float64("dstLat", dstLat), zap.Float64("dstLon", dstLon))
		return nil, err
	}
	return rs.observeRoute(route), nil
}

func (rs *RoutingService) ShortestPathRelative(ctx context.Context, x1, y1, x2, y2 float64) (*RouteResult, error) {
	ctx, cancel := rs.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	route, err := rs.engine.ShortestPathRelative(ctx, x1, y1, x2, y2)
	routeQueryDuration.WithLabelValues("relative").Observe(time.Since(start).Seconds())
	if err != nil {
		rs.observeError(err, zap.Float64("x1", x1), zap.Float64("y1", y1), zap.Float64("x2", x2), zap.Float64("y2", y2))
		return nil, err
	}
	return rs.observeRoute(route), nil
}

// ShortestPaths. errs[i] is nil when results[i] is set
func (rs *RoutingService) ShortestPaths(ctx context.Context, queries []Query) ([]*RouteResult, []error) {
	ctx, cancel := rs.withTimeout(ctx)
	defer cancel()

	engineQueries := make([]engine.Query, len(queries))
	for i, q := range queries {
		engineQueries[i] = engine.NewQuery(geo.NewCoordinate(q.OriginLat, q.OriginLon),
			geo.NewCoordinate(q.DestinationLat, q.DestinationLon))
	}

	start := time.Now()
	batch := rs.engine.ShortestPaths(ctx, engineQueries)
	routeQueryDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds())

	results := make([]*RouteResult, len(batch))
	errs := make([]error, len(batch))
	for i, res := range batch {
		if res.Err != nil {
			rs.observeError(res.Err, zap.Int("query", i))
			errs[i] = res.Err
			continue
		}
		results[i] = rs.observeRoute(res.Route)
	}
	return results, errs
}

func (rs *RoutingService) observeRoute(route *engine.Route) *RouteResult {
	routeQueryTotal.WithLabelValues("found").Inc()
	routeSettledNodes.Observe(float64(route.NumSettledNodes))
	return &RouteResult{
		Distance: route.Path.Distance,
		Polyline: geo.PolylineFromCoords(route.Path.Coords),
		Geometry: geo.GeoJSONLineString(route.Path.Coords),
		Nodes:    route.Path.NumberOfNodes(),
	}
}

func (rs *RoutingService) observeError(err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	switch {
	case errors.Is(err, pkg.ErrNoPathFound):
		routeQueryTotal.WithLabelValues("no_path").Inc()
		rs.log.Debug("no path found", fields...)
	case errors.Is(err, pkg.ErrInvalidEndpoints):
		routeQueryTotal.WithLabelValues("invalid").Inc()
		rs.log.Warn("invalid route query", fields...)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		routeQueryTotal.WithLabelValues("timeout").Inc()
		rs.log.Warn("route query timed out", fields...)
	default:
		routeQueryTotal.WithLabelValues("error").Inc()
		rs.log.Error("route query failed", fields...)
	}
}
