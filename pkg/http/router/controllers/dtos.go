package controllers

import (
	"github.com/lintang-b-s/osmroute/pkg/http/usecases"
	geojson "github.com/paulmach/go.geojson"
)

// lat/lon 0 is a valid coordinate, so no `required` here. missing query params are rejected while parsing.
type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

// x goes west->east, y goes south->north, both in percent of the map bounding box
type relativeShortestPathRequest struct {
	OriginX      float64 `json:"origin_x" validate:"min=0,max=100"`
	OriginY      float64 `json:"origin_y" validate:"min=0,max=100"`
	DestinationX float64 `json:"destination_x" validate:"min=0,max=100"`
	DestinationY float64 `json:"destination_y" validate:"min=0,max=100"`
}

type batchShortestPathRequest struct {
	Queries []shortestPathRequest `json:"queries" validate:"required,min=1,max=1000,dive"`
}

func (b batchShortestPathRequest) toQueries() []usecases.Query {
	queries := make([]usecases.Query, len(b.Queries))
	for i, q := range b.Queries {
		queries[i] = usecases.Query{
			OriginLat:      q.OriginLat,
			OriginLon:      q.OriginLon,
			DestinationLat: q.DestinationLat,
			DestinationLon: q.DestinationLon,
		}
	}
	return queries
}

type shortestPathResponse struct {
	Dist     float64           `json:"distance"`
	Path     string            `json:"path"`
	Geometry *geojson.Geometry `json:"geometry,omitempty"`
	Nodes    int               `json:"nodes"`
}

func NewShortestPathResponse(res *usecases.RouteResult, withGeometry bool) shortestPathResponse {
	resp := shortestPathResponse{
		Dist:  res.Distance,
		Path:  res.Polyline,
		Nodes: res.Nodes,
	}
	if withGeometry {
		resp.Geometry = res.Geometry
	}
	return resp
}

// batchItemResponse. exactly one of Route and Error is set
type batchItemResponse struct {
	Route *shortestPathResponse `json:"route,omitempty"`
	Error *errorBody            `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}
