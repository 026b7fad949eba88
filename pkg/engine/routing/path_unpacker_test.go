package routing

import (
	"testing"

	"github.com/lintang-b-s/osmroute/pkg"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackPathBrokenChain(t *testing.T) {
	// 0 - 1 - 2 line
	graph := newTestGraph(gridCoords()[:3], twoWay([2]int{0, 1}, [2]int{1, 2}))
	e01, _ := graph.FindOutEdge(0, 1)
	e12, _ := graph.FindOutEdge(1, 2)
	e21, _ := graph.FindOutEdge(2, 1)

	testCases := []struct {
		name string
		info map[da.Index]*VertexInfo
	}{
		{
			name: "target never labelled",
			info: map[da.Index]*VertexInfo{
				0: NewVertexInfo(0, 0, da.INVALID_VERTEX_ID, da.INVALID_VERTEX_ID, nil),
			},
		},
		{
			name: "missing predecessor label",
			info: map[da.Index]*VertexInfo{
				2: NewVertexInfo(200, 0, 1, e12.GetEdgeId(), nil),
			},
		},
		{
			name: "chain stops before source",
			info: map[da.Index]*VertexInfo{
				1: NewVertexInfo(100, 0, da.INVALID_VERTEX_ID, da.INVALID_VERTEX_ID, nil),
				2: NewVertexInfo(200, 0, 1, e12.GetEdgeId(), nil),
			},
		},
		{
			name: "predecessor cycle",
			info: map[da.Index]*VertexInfo{
				1: NewVertexInfo(100, 0, 2, e21.GetEdgeId(), nil),
				2: NewVertexInfo(200, 0, 1, e12.GetEdgeId(), nil),
			},
		},
		{
			name: "parent without connecting edge",
			info: map[da.Index]*VertexInfo{
				2: NewVertexInfo(200, 0, 0, e01.GetEdgeId(), nil),
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			path, err := UnpackPath(graph, NewSearchResult(0, 2, 200, tt.info))
			assert.ErrorIs(t, err, pkg.ErrBrokenChain)
			assert.Nil(t, path)
		})
	}
}

func TestUnpackPathLooksUpMissingEdgeId(t *testing.T) {
	graph := newTestGraph(gridCoords()[:3], twoWay([2]int{0, 1}, [2]int{1, 2}))
	e01, _ := graph.FindOutEdge(0, 1)
	e12, _ := graph.FindOutEdge(1, 2)

	info := map[da.Index]*VertexInfo{
		0: NewVertexInfo(0, 0, da.INVALID_VERTEX_ID, da.INVALID_VERTEX_ID, nil),
		1: NewVertexInfo(e01.GetWeight(), 0, 0, da.INVALID_VERTEX_ID, nil),
		2: NewVertexInfo(e01.GetWeight()+e12.GetWeight(), 0, 1, e12.GetEdgeId(), nil),
	}
	path, err := UnpackPath(graph, NewSearchResult(0, 2, e01.GetWeight()+e12.GetWeight(), info))
	require.NoError(t, err)
	assert.Equal(t, []da.Index{0, 1, 2}, path.Nodes)
	assert.Equal(t, []da.Index{e01.GetEdgeId(), e12.GetEdgeId()}, path.Edges)
	assert.InDelta(t, path.Cost, path.Distance, 1e-9)
	assert.Equal(t, 3, path.NumberOfNodes())
}
