package spatialindex

import (
	"sync"
	"testing"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// pointGraph. graph without edges, only vertex geometry matters for the spatial index
func pointGraph(coords []geo.Coordinate) *datastructure.Graph {
	vertices := make([]*datastructure.Vertex, len(coords)+1)
	for i, c := range coords {
		vertices[i] = datastructure.NewVertex(c.Lat, c.Lon, datastructure.Index(i))
	}
	vertices[len(coords)] = datastructure.NewVertex(0, 0, datastructure.Index(len(coords)))
	return datastructure.NewGraph(vertices, []*datastructure.OutEdge{})
}

func buildIndexes(t *testing.T, graph *datastructure.Graph, initialRadius float64) (*Rtree, *Linear) {
	t.Helper()
	log := zap.NewNop()
	rt := NewRtree()
	rt.Build(graph, initialRadius, log)
	lin := NewLinear()
	lin.Build(graph, initialRadius, log)
	require.Equal(t, graph.NumberOfVertices(), rt.Len())
	require.Equal(t, graph.NumberOfVertices(), lin.Len())
	return rt, lin
}

func TestNearest(t *testing.T) {
	graph := pointGraph([]geo.Coordinate{
		geo.NewCoordinate(-7.7600, 110.3700),
		geo.NewCoordinate(-7.7600, 110.3710),
		geo.NewCoordinate(-7.7610, 110.3710),
		geo.NewCoordinate(-7.7700, 110.3800),
	})
	rt, lin := buildIndexes(t, graph, 0.01)

	testCases := []struct {
		name     string
		lat, lon float64
		want     datastructure.Index
	}{
		{"exact vertex", -7.7610, 110.3710, 2},
		{"close to first", -7.7601, 110.3701, 0},
		{"far away, outside first boxes", -6.2000, 106.8166, 0},
		{"isolated vertex", -7.7699, 110.3799, 3},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rt.Nearest(tt.lat, tt.lon), "rtree")
			assert.Equal(t, tt.want, lin.Nearest(tt.lat, tt.lon), "linear")
		})
	}

	// far side of the earth still goes through the expanding search and agrees with the scan
	assert.Equal(t, lin.Nearest(40.0, -74.0), rt.Nearest(40.0, -74.0))
}

func TestNearestTieLowestIndex(t *testing.T) {
	// both vertices are equally far from the equator point between them
	graph := pointGraph([]geo.Coordinate{
		geo.NewCoordinate(0.001, 0.0),
		geo.NewCoordinate(-0.001, 0.0),
		geo.NewCoordinate(0.001, 0.0),
	})
	rt, lin := buildIndexes(t, graph, 0.05)

	for i := 0; i < 10; i++ {
		assert.Equal(t, datastructure.Index(0), rt.Nearest(0.0, 0.0))
		assert.Equal(t, datastructure.Index(0), lin.Nearest(0.0, 0.0))
	}
	assert.Equal(t, datastructure.Index(0), rt.Nearest(0.001, 0.0), "duplicate location resolves to first inserted")
}

func TestNearestEmpty(t *testing.T) {
	rt, lin := NewRtree(), NewLinear()
	assert.Equal(t, datastructure.INVALID_VERTEX_ID, rt.Nearest(1, 1))
	assert.Equal(t, datastructure.INVALID_VERTEX_ID, lin.Nearest(1, 1))
}

func TestNearestMatchesLinearScan(t *testing.T) {
	rd := rand.New(rand.NewSource(42))

	randomCoord := func(lat, lon, spread float64) geo.Coordinate {
		return geo.NewCoordinate(lat+(rd.Float64()-0.5)*spread, lon+(rd.Float64()-0.5)*spread)
	}

	coords := make([]geo.Coordinate, 0, 2000)
	for i := 0; i < 1500; i++ {
		coords = append(coords, randomCoord(-7.78, 110.37, 0.2))
	}
	// a distant sparse cluster so some queries need many radius doublings
	for i := 0; i < 500; i++ {
		coords = append(coords, randomCoord(-6.2, 106.8, 2.0))
	}
	graph := pointGraph(coords)
	rt, lin := buildIndexes(t, graph, 0.05)

	for i := 0; i < 500; i++ {
		var q geo.Coordinate
		switch i % 3 {
		case 0:
			q = randomCoord(-7.78, 110.37, 0.3)
		case 1:
			q = randomCoord(-6.2, 106.8, 4.0)
		default:
			q = randomCoord(-7.0, 108.5, 10.0)
		}
		want := lin.Nearest(q.Lat, q.Lon)
		got := rt.Nearest(q.Lat, q.Lon)
		require.Equal(t, want, got, "query (%v, %v)", q.Lat, q.Lon)
	}
}

func TestSearchWithinRadius(t *testing.T) {
	graph := pointGraph([]geo.Coordinate{
		geo.NewCoordinate(0.0, 0.0),
		geo.NewCoordinate(0.0, 0.005),  // ~0.56 km
		geo.NewCoordinate(0.0, -0.002), // ~0.22 km
		geo.NewCoordinate(0.0, 0.05),   // ~5.6 km
	})
	rt, lin := buildIndexes(t, graph, 0.05)

	want := []datastructure.Index{0, 2, 1}
	assert.Equal(t, want, rt.SearchWithinRadius(0.0, 0.0, 1.0))
	assert.Equal(t, want, lin.SearchWithinRadius(0.0, 0.0, 1.0))

	assert.Empty(t, rt.SearchWithinRadius(10.0, 10.0, 1.0))
}

func TestNearestConcurrent(t *testing.T) {
	rd := rand.New(rand.NewSource(7))
	coords := make([]geo.Coordinate, 300)
	for i := range coords {
		coords[i] = geo.NewCoordinate(rd.Float64(), rd.Float64())
	}
	graph := pointGraph(coords)
	rt, lin := buildIndexes(t, graph, 0.05)

	queries := make([]geo.Coordinate, 64)
	want := make([]datastructure.Index, len(queries))
	for i := range queries {
		queries[i] = geo.NewCoordinate(rd.Float64(), rd.Float64())
		want[i] = lin.Nearest(queries[i].Lat, queries[i].Lon)
	}

	got := make([]datastructure.Index, len(queries))
	var wg sync.WaitGroup
	for i := range queries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = rt.Nearest(queries[i].Lat, queries[i].Lon)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, want, got)
}

func TestNew(t *testing.T) {
	_, ok := New(LINEAR).(*Linear)
	assert.True(t, ok)
	_, ok = New(RTREE).(*Rtree)
	assert.True(t, ok)
	_, ok = New("").(*Rtree)
	assert.True(t, ok)
}
