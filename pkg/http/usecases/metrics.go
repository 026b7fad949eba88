package usecases

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	routeQueryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "osmroute_route_query_total",
		Help: "Total route queries by result",
	}, []string{"result"})

	routeQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "osmroute_route_query_duration_seconds",
		Help:    "Route query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	}, []string{"kind"})

	routeSettledNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "osmroute_route_settled_nodes",
		Help:    "Number of vertices settled by a* per successful query",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})
)
