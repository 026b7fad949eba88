package routing

import (
	"context"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
)

type Router interface {
	ShortestPath(s, t datastructure.Index) (*SearchResult, bool, error)
	ShortestPathWithContext(ctx context.Context, s, t datastructure.Index) (*SearchResult, bool, error)
}
