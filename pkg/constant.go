package pkg

import "errors"

const (
	INF_WEIGHT float64 = 1e15

	// meters per kilometer, geo distances are computed in km
	KM_TO_METER = 1000.0
)

var (
	ErrMalformedData    = errors.New("malformed map data")
	ErrEmptyGraph       = errors.New("map has no routable topology")
	ErrInvalidEndpoints = errors.New("route endpoints are not part of the graph")
	ErrNoPathFound      = errors.New("no path found")
	ErrBrokenChain      = errors.New("broken predecessor chain")
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}

func (h OsmHighwayType) String() string {
	switch h {
	case MOTORWAY:
		return "motorway"
	case TRUNK:
		return "trunk"
	case PRIMARY:
		return "primary"
	case SECONDARY:
		return "secondary"
	case TERTIARY:
		return "tertiary"
	case RESIDENTIAL:
		return "residential"
	case SERVICE:
		return "service"
	case UNCLASSIFIED:
		return "unclassified"
	case MOTORWAY_LINK:
		return "motorway_link"
	case TRUNK_LINK:
		return "trunk_link"
	case PRIMARY_LINK:
		return "primary_link"
	case SECONDARY_LINK:
		return "secondary_link"
	case TERTIARY_LINK:
		return "tertiary_link"
	case LIVING_STREET:
		return "living_street"
	case ROAD:
		return "road"
	case TRACK:
		return "track"
	case MOTORROAD:
		return "motorroad"
	default:
		return "unknown"
	}
}

// RoadClassPenalty. multiplier applied to an edge length when road class weighting is enabled.
// always >= 1 so the straight-line heuristic never overestimates.
func RoadClassPenalty(h OsmHighwayType) float64 {
	switch h {
	case MOTORWAY, TRUNK, MOTORROAD:
		return 1.0
	case PRIMARY, MOTORWAY_LINK, TRUNK_LINK:
		return 1.1
	case SECONDARY, PRIMARY_LINK:
		return 1.2
	case TERTIARY, SECONDARY_LINK, TERTIARY_LINK:
		return 1.3
	case RESIDENTIAL, UNCLASSIFIED, ROAD:
		return 1.5
	case LIVING_STREET, SERVICE:
		return 2.0
	case TRACK:
		return 3.0
	default:
		return 1.5
	}
}
