package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/logger"
	"github.com/lintang-b-s/osmroute/pkg/spatialindex"
	"go.uber.org/zap"
)

var (
	mapFile        = flag.String("f", "../map.osm", "osm map file (.osm, .osm.bz2 or .osm.pbf)")
	absolute       = flag.Bool("abs", false, "coordinates are lat/lon instead of 0-100 relative to the map bounding box")
	roadClass      = flag.Bool("road_class_penalty", false, "weight edges by road class")
	spatialIndex   = flag.String("index", spatialindex.RTREE, "nearest vertex index: rtree or linear")
	verboseLogging = flag.Bool("v", false, "log map loading")
)

// usage: route [-f map.osm] [-abs] x1 y1 x2 y2
// with -abs the four values are origin lat, origin lon, destination lat, destination lon.
// without positional args the relative coordinates are read from stdin.
func main() {
	flag.Parse()

	log := zap.NewNop()
	if *verboseLogging {
		l, err := logger.New()
		if err != nil {
			panic(err)
		}
		log = l
	}

	fmt.Printf("Reading OpenStreetMap data from the following file: %s\n", *mapFile)
	opts := engine.DefaultOptions()
	opts.UseRoadClassPenalty = *roadClass
	opts.SpatialIndex = *spatialIndex
	e, err := engine.NewEngineFromFile(*mapFile, opts, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read: %v\n", err)
		os.Exit(1)
	}

	var vals []float64
	if flag.NArg() > 0 {
		vals, err = parseArgs(flag.Args())
	} else {
		vals, err = promptRelative(os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var route *engine.Route
	if *absolute {
		route, err = e.ShortestPath(context.Background(), geo.NewCoordinate(vals[0], vals[1]), geo.NewCoordinate(vals[2], vals[3]))
	} else {
		fmt.Printf("Using start node: (%v, %v)\nUsing end node: (%v, %v)\n", vals[0], vals[1], vals[2], vals[3])
		route, err = e.ShortestPathRelative(context.Background(), vals[0], vals[1], vals[2], vals[3])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Distance: %v meters.\n", route.Path.Distance)
}

func parseArgs(args []string) ([]float64, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("expected 4 coordinates, got %d", len(args))
	}
	vals := make([]float64, 4)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", a, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// promptRelative. asks until each value is a number in [0, 100]
func promptRelative(in io.Reader, out io.Writer) ([]float64, error) {
	prompts := []string{
		"Please insert a value for the x-coordinate of the start node (0-100): ",
		"Please insert a value for the y-coordinate of the start node (0-100): ",
		"Please insert a value for the x-coordinate of the end node (0-100): ",
		"Please insert a value for the y-coordinate of the end node (0-100): ",
	}
	sc := bufio.NewScanner(in)
	vals := make([]float64, 0, len(prompts))
	for _, p := range prompts {
		fmt.Fprint(out, p)
		for {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return nil, err
				}
				return nil, errors.New("unexpected end of input")
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(sc.Text()), 64)
			if err != nil {
				fmt.Fprint(out, "Invalid input. Please insert a valid coordinate: ")
				continue
			}
			if v < 0 || v > 100 {
				fmt.Fprint(out, "Only 0 to 100 accepted. Please insert a valid value: ")
				continue
			}
			vals = append(vals, v)
			break
		}
	}
	return vals, nil
}
