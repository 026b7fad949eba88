package osmparser

import "github.com/lintang-b-s/osmroute/pkg"

type WayDirection uint8

const (
	BIDIRECTIONAL WayDirection = iota
	FORWARD                    // travel only in node order
	BACKWARD                   // travel only against node order
)

func (d WayDirection) String() string {
	switch d {
	case FORWARD:
		return "forward"
	case BACKWARD:
		return "backward"
	default:
		return "bidirectional"
	}
}

// Point. osm node
type Point struct {
	ID   int64
	Lat  float64
	Lon  float64
	Tags map[string]string
}

func NewPoint(id int64, lat, lon float64) Point {
	return Point{ID: id, Lat: lat, Lon: lon}
}

// Way. routable osm way, Nodes are osm node ids in traversal order
type Way struct {
	ID        int64
	Nodes     []int64
	RoadClass pkg.OsmHighwayType
	Direction WayDirection
	Name      string
}

func NewWay(id int64, nodes []int64, roadClass pkg.OsmHighwayType, direction WayDirection) Way {
	return Way{ID: id, Nodes: nodes, RoadClass: roadClass, Direction: direction}
}

type OsmData struct {
	Points map[int64]Point
	Ways   []Way

	skippedWays int
}

func NewOsmData() *OsmData {
	return &OsmData{
		Points: make(map[int64]Point),
		Ways:   make([]Way, 0),
	}
}

func (d *OsmData) AddPoint(p Point) {
	d.Points[p.ID] = p
}

func (d *OsmData) AddWay(w Way) {
	d.Ways = append(d.Ways, w)
}

// SkippedWays. number of ways dropped because they are not routable (untagged, footway, buildings, ...)
func (d *OsmData) SkippedWays() int {
	return d.skippedWays
}
