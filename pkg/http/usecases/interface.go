package usecases

import (
	"context"

	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

type RoutingEngine interface {
	ShortestPath(ctx context.Context, origin, destination geo.Coordinate) (*engine.Route, error)
	ShortestPathRelative(ctx context.Context, x1, y1, x2, y2 float64) (*engine.Route, error)
	ShortestPaths(ctx context.Context, queries []engine.Query) []engine.BatchResult
}
