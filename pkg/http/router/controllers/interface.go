package controllers

import (
	"context"

	"github.com/lintang-b-s/osmroute/pkg/http/usecases"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (*usecases.RouteResult, error)
	ShortestPathRelative(ctx context.Context, x1, y1, x2, y2 float64) (*usecases.RouteResult, error)
	ShortestPaths(ctx context.Context, queries []usecases.Query) ([]*usecases.RouteResult, []error)
}
