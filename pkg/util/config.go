package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig. reads ./data/config.* if present. a missing config file is not an error, defaults and env vars apply.
func ReadConfig() error {
	SetDefaults()

	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetDefaults() {
	viper.SetDefault("MAP_FILE", "./data/map.osm")
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
	viper.SetDefault("HTTP_SERVER_SHUTDOWN_TIMEOUT", "15s")

	viper.SetDefault("USE_ROAD_CLASS_PENALTY", false)
	viper.SetDefault("SPATIAL_INDEX", "rtree")
	viper.SetDefault("RTREE_INITIAL_RADIUS_KM", 0.05)
	viper.SetDefault("BATCH_WORKERS", 4)

	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.AutomaticEnv()
}
