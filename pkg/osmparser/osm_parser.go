package osmparser

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/xml"
	"io"
	"math"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type mapFormat uint8

const (
	FORMAT_XML mapFormat = iota
	FORMAT_PBF
)

var (
	bzip2Magic    = []byte("BZh")
	pbfHeaderType = []byte("OSMHeader")
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
)

const maxPbfBlobHeaderSize = 64 * 1024

type osmScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

type OsmParser struct {
	pbfProcs int
}

func NewOSMParser() *OsmParser {
	return &OsmParser{pbfProcs: 1}
}

// Parse. decode a raw osm buffer (xml, pbf, or bzip2 compressed xml/pbf) into points & routable ways.
// every failure is reported as pkg.ErrMalformedData and no partial data is returned.
func Parse(data []byte) (*OsmData, error) {
	return NewOSMParser().Parse(data)
}

func (p *OsmParser) Parse(data []byte) (*OsmData, error) {
	if len(data) == 0 {
		return nil, util.WrapErrorf(nil, pkg.ErrMalformedData, "empty map data")
	}

	if bytes.HasPrefix(data, bzip2Magic) {
		decompressed, err := decompressBzip2(data)
		if err != nil {
			return nil, util.WrapErrorf(err, pkg.ErrMalformedData, "can't decompress bzip2 map data")
		}
		if len(decompressed) == 0 {
			return nil, util.WrapErrorf(nil, pkg.ErrMalformedData, "empty map data")
		}
		data = decompressed
	}

	format, err := detectFormat(data)
	if err != nil {
		return nil, util.WrapErrorf(err, pkg.ErrMalformedData, "unrecognized map header")
	}

	var scanner osmScanner
	switch format {
	case FORMAT_PBF:
		scanner = osmpbf.New(context.Background(), bytes.NewReader(data), p.pbfProcs)
	default:
		scanner = osmxml.New(context.Background(), bytes.NewReader(data))
	}
	defer scanner.Close()

	osmData, err := p.scan(scanner)
	if err != nil {
		return nil, err
	}
	return osmData, nil
}

func (p *OsmParser) scan(scanner osmScanner) (*OsmData, error) {
	osmData := NewOsmData()
	rawWays := make([]*osm.Way, 0)

	// must not be parallel
	for scanner.Scan() {
		o := scanner.Object()

		switch obj := o.(type) {
		case *osm.Node:
			if !validCoordinate(obj.Lat, obj.Lon) {
				return nil, util.WrapErrorf(nil, pkg.ErrMalformedData, "node %d has invalid coordinate (%f, %f)",
					obj.ID, obj.Lat, obj.Lon)
			}
			point := NewPoint(int64(obj.ID), obj.Lat, obj.Lon)
			if len(obj.Tags) > 0 {
				point.Tags = obj.Tags.Map()
			}
			osmData.AddPoint(point)
		case *osm.Way:
			rawWays = append(rawWays, obj)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, util.WrapErrorf(errors.Wrap(err, "Can't scan OSM data"), pkg.ErrMalformedData, "can't parse map data")
	}

	// node may appear after the way that references it, so resolve refs after the whole scan
	for _, way := range rawWays {
		for _, wayNode := range way.Nodes {
			if _, ok := osmData.Points[int64(wayNode.ID)]; !ok {
				return nil, util.WrapErrorf(nil, pkg.ErrMalformedData, "way %d references undefined node %d",
					way.ID, wayNode.ID)
			}
		}

		if len(way.Nodes) < 2 || !acceptOsmWay(way) {
			osmData.skippedWays++
			continue
		}

		nodes := make([]int64, 0, len(way.Nodes))
		for _, wayNode := range way.Nodes {
			nodes = append(nodes, int64(wayNode.ID))
		}
		w := NewWay(int64(way.ID), nodes, roadClass(way), wayDirection(way))
		w.Name = way.Tags.Find("name")
		osmData.AddWay(w)
	}

	return osmData, nil
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func decompressBzip2(data []byte) ([]byte, error) {
	bz, err := bzip2.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	return io.ReadAll(bz)
}

// detectFormat. pbf files start with a 4 byte big-endian BlobHeader length followed by an "OSMHeader" blob,
// everything else must be an xml document with an <osm> root element.
func detectFormat(data []byte) (mapFormat, error) {
	if len(data) > 4 {
		headerSize := binary.BigEndian.Uint32(data[:4])
		if headerSize > 0 && headerSize < maxPbfBlobHeaderSize && int(headerSize)+4 <= len(data) &&
			bytes.Contains(data[4:4+headerSize], pbfHeaderType) {
			return FORMAT_PBF, nil
		}
	}

	if err := checkXMLRoot(data); err != nil {
		return FORMAT_XML, err
	}
	return FORMAT_XML, nil
}

func checkXMLRoot(data []byte) error {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 || data[0] != '<' {
		return errors.New("map data is not an osm xml document")
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			return errors.Wrap(err, "Can't read xml header")
		}
		if start, ok := token.(xml.StartElement); ok {
			if start.Name.Local != "osm" {
				return errors.Errorf("unexpected root element <%s>, want <osm>", start.Name.Local)
			}
			return nil
		}
	}
}
