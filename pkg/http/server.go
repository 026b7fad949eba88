package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/osmroute/pkg/http/router"
	"github.com/lintang-b-s/osmroute/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/osmroute/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. starts the api in the background, Wait returns its error once ctx is canceled
func (s *Server) Use(
	ctx context.Context,
	routingService controllers.RoutingService,
) *Server {
	config := http_server.NewConfigFromViper()

	limit := http_router.RateLimit{}
	if viper.GetBool("USE_RATE_LIMIT") {
		limit.RPS = viper.GetFloat64("RATE_LIMIT_RPS")
		limit.Burst = viper.GetInt("RATE_LIMIT_BURST")
	}

	api := http_router.NewAPI(s.Log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(ctx, config, limit, routingService)
	})
	s.g = g

	return s
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

// GracefulShutdown. blocks until SIGINT / SIGTERM
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	return <-quit
}
