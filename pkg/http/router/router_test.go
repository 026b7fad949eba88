package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/http/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, limit RateLimit) http.Handler {
	t.Helper()
	e, err := engine.NewEngineFromFile("../../engine/testdata/town.osm", engine.DefaultOptions(), zap.NewNop())
	require.NoError(t, err)
	svc := usecases.NewRoutingService(zap.NewNop(), e, time.Second)
	return NewAPI(zap.NewNop()).Handler(svc, limit)
}

func TestHandlerHealthz(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())
}

func TestHandlerComputeRoutes(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/computeRoutes?origin_lat=-7.760&origin_lon=110.370&destination_lat=-7.762&destination_lon=110.372&format=geojson", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			Distance float64         `json:"distance"`
			Path     string          `json:"path"`
			Geometry json.RawMessage `json:"geometry"`
			Nodes    int             `json:"nodes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Greater(t, body.Data.Distance, 400.0)
	assert.Equal(t, 5, body.Data.Nodes)
	assert.NotEmpty(t, body.Data.Path)
	assert.Contains(t, string(body.Data.Geometry), "LineString")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/computeRoutes?origin_lat=-7.760&origin_lon=110.370&destination_lat=-7.800&destination_lon=110.401", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerMetrics(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet,
		"/api/computeRelativeRoutes?origin_x=0&origin_y=100&destination_x=50&destination_y=50", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "osmroute_http_requests_total")
	assert.Contains(t, rec.Body.String(), "osmroute_route_query_total")
}

func TestHandlerRejectsNonJSONBody(t *testing.T) {
	h := newTestHandler(t, RateLimit{})

	req := httptest.NewRequest(http.MethodPost, "/api/computeRoutesBatch", strings.NewReader("queries"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestHandlerRateLimit(t *testing.T) {
	h := newTestHandler(t, RateLimit{RPS: 0.001, Burst: 2})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
			"/api/computeRelativeRoutes?origin_x=0&origin_y=100&destination_x=0&destination_y=100", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
