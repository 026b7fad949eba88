package osmparser

import (
	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/paulmach/osm"
)

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	// footway, path, steps, cycleway, pedestrian & bridleway are not routable for cars
	acceptedHighway = map[string]struct{}{
		"motorway":         {},
		"motorway_link":    {},
		"trunk":            {},
		"trunk_link":       {},
		"primary":          {},
		"primary_link":     {},
		"secondary":        {},
		"secondary_link":   {},
		"residential":      {},
		"residential_link": {},
		"service":          {},
		"tertiary":         {},
		"tertiary_link":    {},
		"road":             {},
		"track":            {},
		"unclassified":     {},
		"undefined":        {},
		"unknown":          {},
		"living_street":    {},
		"private":          {},
		"motorroad":        {},
	}
)

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := acceptedHighway[highway]; ok {
			return true
		}
	} else if junction != "" {
		return true
	}
	return false
}

func isRestricted(value string) bool {
	if value == "no" || value == "restricted" {
		return true
	}
	return false
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}

// wayDirection. https://wiki.openstreetmap.org/wiki/Key:oneway
func wayDirection(way *osm.Way) WayDirection {
	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	if okvf || okmvf {
		// okvf / okmvf = restricted/not allowed forward.
		return BACKWARD
	}
	if okvb || okmvb {
		return FORWARD
	}

	switch way.Tags.Find("oneway") {
	case "yes", "true", "1":
		return FORWARD
	case "-1", "reverse":
		return BACKWARD
	case "no", "false", "0":
		return BIDIRECTIONAL
	}

	switch way.Tags.Find("junction") {
	case "roundabout", "circular":
		return FORWARD
	}
	if way.Tags.Find("highway") == "motorway" {
		return FORWARD
	}
	return BIDIRECTIONAL
}

func roadClass(way *osm.Way) pkg.OsmHighwayType {
	return pkg.GetHighwayType(way.Tags.Find("highway"))
}
