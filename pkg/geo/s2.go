package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// BoundingBox. lat/lon rectangle of the loaded map
type BoundingBox struct {
	rect s2.Rect
}

func NewBoundingBox() *BoundingBox {
	return &BoundingBox{rect: s2.EmptyRect()}
}

func (bb *BoundingBox) Add(lat, lon float64) {
	bb.rect = bb.rect.AddPoint(s2.LatLngFromDegrees(lat, lon))
}

func (bb *BoundingBox) IsEmpty() bool {
	return bb.rect.IsEmpty()
}

func (bb *BoundingBox) Min() Coordinate {
	lo := bb.rect.Lo()
	return NewCoordinate(lo.Lat.Degrees(), lo.Lng.Degrees())
}

func (bb *BoundingBox) Max() Coordinate {
	hi := bb.rect.Hi()
	return NewCoordinate(hi.Lat.Degrees(), hi.Lng.Degrees())
}

func (bb *BoundingBox) Contains(lat, lon float64) bool {
	return bb.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}

// DiagonalKm. great-circle length of the box diagonal in km
func (bb *BoundingBox) DiagonalKm() float64 {
	if bb.IsEmpty() {
		return 0
	}
	lo, hi := bb.Min(), bb.Max()
	return CalculateHaversineDistance(lo.Lat, lo.Lon, hi.Lat, hi.Lon)
}

// RelativeCoordinate. maps x (west->east) and y (south->north), both in [0, 100], onto the box.
func (bb *BoundingBox) RelativeCoordinate(x, y float64) Coordinate {
	lo, hi := bb.Min(), bb.Max()
	lat := lo.Lat + (hi.Lat-lo.Lat)*y/100.0
	lon := lo.Lon + (hi.Lon-lo.Lon)*x/100.0
	return NewCoordinate(lat, lon)
}

// LatLonBox. axis aligned lat/lon box in degrees, MinLon <= MaxLon
type LatLonBox struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// RadiusBounds. boxes covering every point within radiusKm (great-circle) of (lat, lon).
// the covering box is split in two when it crosses the antimeridian.
func RadiusBounds(lat, lon, radiusKm float64) []LatLonBox {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	angle := s1.Angle(radiusKm / earthRadiusKM)
	if angle >= math.Pi {
		return []LatLonBox{{MinLat: -90, MinLon: -180, MaxLat: 90, MaxLon: 180}}
	}
	rect := s2.CapFromCenterAngle(center, angle).RectBound()

	minLat, maxLat := s1.Angle(rect.Lat.Lo).Degrees(), s1.Angle(rect.Lat.Hi).Degrees()
	switch {
	case rect.Lng.IsFull():
		return []LatLonBox{{MinLat: minLat, MinLon: -180, MaxLat: maxLat, MaxLon: 180}}
	case rect.Lng.IsInverted():
		return []LatLonBox{
			{MinLat: minLat, MinLon: s1.Angle(rect.Lng.Lo).Degrees(), MaxLat: maxLat, MaxLon: 180},
			{MinLat: minLat, MinLon: -180, MaxLat: maxLat, MaxLon: s1.Angle(rect.Lng.Hi).Degrees()},
		}
	default:
		return []LatLonBox{{
			MinLat: minLat, MinLon: s1.Angle(rect.Lng.Lo).Degrees(),
			MaxLat: maxLat, MaxLon: s1.Angle(rect.Lng.Hi).Degrees(),
		}}
	}
}

// EarthHalfCircumferenceKm. no two points on the sphere are further apart
func EarthHalfCircumferenceKm() float64 {
	return math.Pi * earthRadiusKM
}
