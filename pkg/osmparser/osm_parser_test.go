package osmparser

import (
	"bytes"
	"encoding/binary"
	"os"
	"strings"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSmallOsm(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/small.osm")
	require.NoError(t, err)
	return data
}

func TestParseXML(t *testing.T) {
	osmData, err := Parse(readSmallOsm(t))
	require.NoError(t, err)

	assert.Len(t, osmData.Points, 9)
	require.Len(t, osmData.Ways, 2, "footway and building must be skipped")
	assert.Equal(t, 2, osmData.SkippedWays())

	residential := osmData.Ways[0]
	assert.Equal(t, int64(100), residential.ID)
	assert.Equal(t, []int64{1, 2, 3}, residential.Nodes)
	assert.Equal(t, pkg.RESIDENTIAL, residential.RoadClass)
	assert.Equal(t, BIDIRECTIONAL, residential.Direction)
	assert.Equal(t, "Jalan Kaliurang", residential.Name)

	primary := osmData.Ways[1]
	assert.Equal(t, int64(101), primary.ID)
	assert.Equal(t, pkg.PRIMARY, primary.RoadClass)
	assert.Equal(t, FORWARD, primary.Direction)

	p3 := osmData.Points[3]
	assert.InDelta(t, -7.761, p3.Lat, 1e-9)
	assert.InDelta(t, 110.371, p3.Lon, 1e-9)
	assert.Equal(t, "traffic_signals", p3.Tags["highway"])
	assert.Nil(t, osmData.Points[1].Tags)
}

func TestParseBzip2(t *testing.T) {
	var buf bytes.Buffer
	bz, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write(readSmallOsm(t))
	require.NoError(t, err)
	require.NoError(t, bz.Close())

	osmData, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, osmData.Points, 9)
	assert.Len(t, osmData.Ways, 2)
}

func TestParseMalformed(t *testing.T) {
	small := string(readSmallOsm(t))

	testCases := []struct {
		name string
		data []byte
	}{
		{
			name: "empty buffer",
			data: []byte{},
		},
		{
			name: "whitespace only",
			data: []byte("  \n\t "),
		},
		{
			name: "not xml",
			data: []byte("hello, this is not a map"),
		},
		{
			name: "wrong root element",
			data: []byte(`<?xml version="1.0"?><html><body/></html>`),
		},
		{
			name: "truncated inside a way",
			data: []byte(small[:strings.Index(small, `<nd ref="2"/>`)+5]),
		},
		{
			name: "unterminated root",
			data: []byte(strings.Replace(small, "</osm>", "", 1)),
		},
		{
			name: "way references undefined node",
			data: []byte(`<osm version="0.6">
 <node id="1" lat="1.0" lon="1.0"/>
 <way id="10"><nd ref="1"/><nd ref="42"/><tag k="highway" v="residential"/></way>
</osm>`),
		},
		{
			name: "non routable way references undefined node",
			data: []byte(`<osm version="0.6">
 <node id="1" lat="1.0" lon="1.0"/>
 <way id="10"><nd ref="1"/><nd ref="42"/><tag k="building" v="yes"/></way>
</osm>`),
		},
		{
			name: "latitude out of range",
			data: []byte(`<osm version="0.6"><node id="1" lat="100.0" lon="1.0"/></osm>`),
		},
		{
			name: "broken bzip2 stream",
			data: []byte("BZh91AY&SYgarbage"),
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			osmData, err := Parse(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, pkg.ErrMalformedData)
			assert.Nil(t, osmData)
		})
	}
}

func TestParseEmptyOsmDocument(t *testing.T) {
	osmData, err := Parse([]byte(`<?xml version="1.0"?>` + "\n" + `<osm version="0.6"></osm>`))
	require.NoError(t, err)
	assert.Empty(t, osmData.Points)
	assert.Empty(t, osmData.Ways)
}

func TestDetectFormat(t *testing.T) {
	blobHeader := append([]byte{0x0a, 0x09}, []byte("OSMHeader")...)
	blobHeader = append(blobHeader, 0x18, 0x05)
	pbf := make([]byte, 4)
	binary.BigEndian.PutUint32(pbf, uint32(len(blobHeader)))
	pbf = append(pbf, blobHeader...)
	pbf = append(pbf, 0, 0, 0, 0, 0)

	format, err := detectFormat(pbf)
	require.NoError(t, err)
	assert.Equal(t, FORMAT_PBF, format)

	format, err = detectFormat(readSmallOsm(t))
	require.NoError(t, err)
	assert.Equal(t, FORMAT_XML, format)

	_, err = detectFormat([]byte("<gpx></gpx>"))
	assert.Error(t, err)
}

func TestWayDirection(t *testing.T) {
	testCases := []struct {
		name string
		tags osm.Tags
		want WayDirection
	}{
		{"no oneway tag", osm.Tags{{Key: "highway", Value: "residential"}}, BIDIRECTIONAL},
		{"oneway yes", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "yes"}}, FORWARD},
		{"oneway 1", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "1"}}, FORWARD},
		{"oneway -1", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "-1"}}, BACKWARD},
		{"oneway no", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "no"}}, BIDIRECTIONAL},
		{"roundabout", osm.Tags{{Key: "highway", Value: "tertiary"}, {Key: "junction", Value: "roundabout"}}, FORWARD},
		{"motorway implies oneway", osm.Tags{{Key: "highway", Value: "motorway"}}, FORWARD},
		{"motorway explicitly two way", osm.Tags{{Key: "highway", Value: "motorway"}, {Key: "oneway", Value: "no"}}, BIDIRECTIONAL},
		{"vehicle forward restricted", osm.Tags{{Key: "highway", Value: "service"}, {Key: "vehicle:forward", Value: "no"}}, BACKWARD},
		{"motor vehicle backward restricted", osm.Tags{{Key: "highway", Value: "service"}, {Key: "motor_vehicle:backward", Value: "no"}}, FORWARD},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			way := &osm.Way{ID: 1, Tags: tt.tags}
			assert.Equal(t, tt.want, wayDirection(way))
		})
	}
}

func TestAcceptOsmWay(t *testing.T) {
	assert.True(t, acceptOsmWay(&osm.Way{Tags: osm.Tags{{Key: "highway", Value: "living_street"}}}))
	assert.True(t, acceptOsmWay(&osm.Way{Tags: osm.Tags{{Key: "junction", Value: "roundabout"}}}))
	assert.False(t, acceptOsmWay(&osm.Way{Tags: osm.Tags{{Key: "highway", Value: "footway"}}}))
	assert.False(t, acceptOsmWay(&osm.Way{Tags: osm.Tags{{Key: "highway", Value: "steps"}}}))
	assert.False(t, acceptOsmWay(&osm.Way{Tags: osm.Tags{{Key: "landuse", Value: "forest"}}}))
}
