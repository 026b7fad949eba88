package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/http"
	"github.com/lintang-b-s/osmroute/pkg/http/usecases"
	"github.com/lintang-b-s/osmroute/pkg/logger"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mapFile = flag.String("f", "", "osm map file (.osm, .osm.bz2 or .osm.pbf), overrides MAP_FILE")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		logger.Fatal("can't read config", zap.Error(err))
	}
	if *mapFile != "" {
		viper.Set("MAP_FILE", *mapFile)
	}

	opts := engine.Options{
		UseRoadClassPenalty: viper.GetBool("USE_ROAD_CLASS_PENALTY"),
		SpatialIndex:        viper.GetString("SPATIAL_INDEX"),
		InitialRadiusKm:     viper.GetFloat64("RTREE_INITIAL_RADIUS_KM"),
		BatchWorkers:        viper.GetInt("BATCH_WORKERS"),
	}
	routingEngine, err := engine.NewEngineFromFile(viper.GetString("MAP_FILE"), opts, logger)
	if err != nil {
		logger.Fatal("can't load map", zap.Error(err))
	}

	routingService := usecases.NewRoutingService(logger, routingEngine, viper.GetDuration("API_TIMEOUT"))

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api := http.NewServer(logger).Use(ctx, routingService)

	signal := http.GracefulShutdown()
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server error", zap.Error(err))
	}

	logger.Info("osmroute Routing Engine Server Stopped", zap.String("signal", signal.String()))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
