package geo

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. google encoded polyline of the path, precision 5
func PolylineFromCoords(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

// CoordsFromPolyline. inverse of PolylineFromCoords
func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	path := make([]Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, NewCoordinate(c[0], c[1]))
	}
	return path, nil
}

// GeoJSONLineString. geojson geometry is lon,lat ordered
func GeoJSONLineString(path []Coordinate) *geojson.Geometry {
	pts := make([][]float64, len(path))
	for i := range path {
		pts[i] = []float64{path[i].Lon, path[i].Lat}
	}
	return geojson.NewLineStringGeometry(pts)
}
