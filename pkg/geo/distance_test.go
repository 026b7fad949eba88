package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHaversineDistance(t *testing.T) {
	testCases := []struct {
		name           string
		latOne, lonOne float64
		latTwo, lonTwo float64
		wantKm         float64
		delta          float64
	}{
		{
			name:   "same point",
			latOne: -7.76, lonOne: 110.37,
			latTwo: -7.76, lonTwo: 110.37,
			wantKm: 0,
			delta:  1e-12,
		},
		{
			name:   "one degree of longitude on the equator",
			latOne: 0, lonOne: 0,
			latTwo: 0, lonTwo: 1,
			wantKm: earthRadiusKM * math.Pi / 180,
			delta:  1e-9,
		},
		{
			name:   "one degree of latitude",
			latOne: 10, lonOne: 20,
			latTwo: 11, lonTwo: 20,
			wantKm: earthRadiusKM * math.Pi / 180,
			delta:  1e-9,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHaversineDistance(tt.latOne, tt.lonOne, tt.latTwo, tt.lonTwo)
			assert.InDelta(t, tt.wantKm, got, tt.delta)
			assert.InDelta(t, tt.wantKm*1000, CalculateHaversineDistanceMeter(tt.latOne, tt.lonOne, tt.latTwo, tt.lonTwo), tt.delta*1000)
		})
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := CalculateHaversineDistance(-7.7, 110.3, -7.8, 110.4)
	b := CalculateHaversineDistance(-7.8, 110.4, -7.7, 110.3)
	assert.Equal(t, a, b)
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := -7.767, 110.375
	for _, bearing := range []float64{0, 45, 90, 180, 225, 270} {
		dLat, dLon := GetDestinationPoint(lat, lon, bearing, 1.5)
		assert.InDelta(t, 1.5, CalculateHaversineDistance(lat, lon, dLat, dLon), 1e-6)
	}
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox()
	require.True(t, bb.IsEmpty())

	bb.Add(-7.8, 110.3)
	bb.Add(-7.7, 110.5)
	bb.Add(-7.75, 110.4)

	assert.False(t, bb.IsEmpty())
	assert.InDelta(t, -7.8, bb.Min().Lat, 1e-9)
	assert.InDelta(t, 110.3, bb.Min().Lon, 1e-9)
	assert.InDelta(t, -7.7, bb.Max().Lat, 1e-9)
	assert.InDelta(t, 110.5, bb.Max().Lon, 1e-9)
	assert.True(t, bb.Contains(-7.75, 110.45))
	assert.False(t, bb.Contains(-7.6, 110.45))

	origin := bb.RelativeCoordinate(0, 0)
	assert.InDelta(t, -7.8, origin.Lat, 1e-9)
	assert.InDelta(t, 110.3, origin.Lon, 1e-9)

	center := bb.RelativeCoordinate(50, 50)
	assert.InDelta(t, -7.75, center.Lat, 1e-9)
	assert.InDelta(t, 110.4, center.Lon, 1e-9)

	assert.Greater(t, bb.DiagonalKm(), 0.0)
}

func TestPolyline(t *testing.T) {
	path := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}
	encoded := PolylineFromCoords(path)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(path))
	for i := range path {
		assert.InDelta(t, path[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, path[i].Lon, decoded[i].Lon, 1e-5)
	}

	g := GeoJSONLineString(path)
	require.Len(t, g.LineString, 3)
	assert.Equal(t, []float64{-120.2, 38.5}, g.LineString[0])
}

func TestRadiusBounds(t *testing.T) {
	testCases := []struct {
		name     string
		lat, lon float64
		radiusKm float64
		numBoxes int
	}{
		{"yogyakarta", -7.76, 110.37, 1.0, 1},
		{"crosses antimeridian", 0.0, 179.999, 5.0, 2},
		{"covers north pole", 89.99, 10.0, 5.0, 1},
		{"whole sphere", 0.0, 0.0, 30000.0, 1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			boxes := RadiusBounds(tt.lat, tt.lon, tt.radiusKm)
			require.Len(t, boxes, tt.numBoxes)

			// every point on the circle must be covered by some box
			for bearing := 0.0; bearing < 360.0; bearing += 7.5 {
				lat, lon := GetDestinationPoint(tt.lat, tt.lon, bearing, tt.radiusKm*0.999)
				covered := false
				for _, b := range boxes {
					if lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon {
						covered = true
					}
				}
				assert.True(t, covered, "bearing %v: (%v, %v) not covered", bearing, lat, lon)
			}
		})
	}
}
