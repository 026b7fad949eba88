package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/osmroute/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
	validate       *validator.Validate
	trans          ut.Translator
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &routingAPI{
		routingService: routingService,
		log:            log,
		validate:       validate,
		trans:          trans,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.GET("/computeRelativeRoutes", api.relativeShortestPath)
	group.POST("/computeRoutesBatch", api.batchShortestPath)
}

// shortestPath
//
//	@Summary		shortest path between two coordinates
//	@Tags			routing
//	@Param			origin_lat		query		number	true	"origin latitude"
//	@Param			origin_lon		query		number	true	"origin longitude"
//	@Param			destination_lat	query		number	true	"destination latitude"
//	@Param			destination_lon	query		number	true	"destination longitude"
//	@Param			format			query		string	false	"geojson to include the route geometry"
//	@Success		200				{object}	shortestPathResponse
//	@Failure		400				{object}	errorResponse
//	@Failure		404				{object}	errorResponse
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request shortestPathRequest

	query := r.URL.Query()
	vals, err := parseFloatParams(query, "origin_lat", "origin_lon", "destination_lat", "destination_lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.OriginLat, request.OriginLon, request.DestinationLat, request.DestinationLon = vals[0], vals[1], vals[2], vals[3]

	if !api.validateRequest(w, r, request) {
		return
	}

	res, err := api.routingService.ShortestPath(r.Context(), request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(res, wantGeometry(query))}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// relativeShortestPath
//
//	@Summary		shortest path between two points given in percent of the map bounding box
//	@Tags			routing
//	@Param			origin_x		query		number	true	"origin x, 0 = west edge, 100 = east edge"
//	@Param			origin_y		query		number	true	"origin y, 0 = south edge, 100 = north edge"
//	@Param			destination_x	query		number	true	"destination x"
//	@Param			destination_y	query		number	true	"destination y"
//	@Success		200				{object}	shortestPathResponse
//	@Failure		400				{object}	errorResponse
//	@Failure		404				{object}	errorResponse
//	@Router			/computeRelativeRoutes [get]
func (api *routingAPI) relativeShortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request relativeShortestPathRequest

	query := r.URL.Query()
	vals, err := parseFloatParams(query, "origin_x", "origin_y", "destination_x", "destination_y")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.OriginX, request.OriginY, request.DestinationX, request.DestinationY = vals[0], vals[1], vals[2], vals[3]

	if !api.validateRequest(w, r, request) {
		return
	}

	res, err := api.routingService.ShortestPathRelative(r.Context(), request.OriginX, request.OriginY,
		request.DestinationX, request.DestinationY)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(res, wantGeometry(query))}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// batchShortestPath. one failed query does not fail the batch, its error is reported in place
//
//	@Summary		many independent shortest path queries
//	@Tags			routing
//	@Accept			json
//	@Param			body	body		batchShortestPathRequest	true	"queries"
//	@Success		200		{array}		batchItemResponse
//	@Failure		400		{object}	errorResponse
//	@Router			/computeRoutesBatch [post]
func (api *routingAPI) batchShortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request batchShortestPathRequest

	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if !api.validateRequest(w, r, request) {
		return
	}

	results, errs := api.routingService.ShortestPaths(r.Context(), request.toQueries())

	items := make([]batchItemResponse, len(results))
	for i := range results {
		if errs[i] != nil {
			_, code := statusOf(errs[i])
			items[i].Error = &errorBody{Code: code, Message: errs[i].Error()}
			continue
		}
		resp := NewShortestPathResponse(results[i], false)
		items[i].Route = &resp
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": items}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// validateRequest. writes a 400 and returns false when req fails its validate tags
func (api *routingAPI) validateRequest(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := api.validate.Struct(req); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, util.WrapErrorf(nil, util.ErrBadParamInput, "validation error: %v", vvString))
		return false
	}
	return true
}

func parseFloatParams(query url.Values, names ...string) ([]float64, error) {
	vals := make([]float64, len(names))
	for i, name := range names {
		v, err := strconv.ParseFloat(query.Get(name), 64)
		if err != nil {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "%s is required and must be a valid float", name)
		}
		vals[i] = v
	}
	return vals, nil
}

func wantGeometry(query url.Values) bool {
	return query.Get("format") == "geojson"
}
