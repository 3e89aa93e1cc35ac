package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/natevvv/astar-routing/internal/config"
	"github.com/natevvv/astar-routing/pkg/routing"
	"github.com/natevvv/astar-routing/pkg/server/openapi_server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the routing API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.Server.Listen
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, err := loadGraph(ctx, cfg)
			if err != nil {
				return err
			}
			router, err := routing.NewRouter(g, cfg.Search.Navigator, logger)
			if err != nil {
				return err
			}

			service := openapi_server.NewDefaultApiService(router)
			controller := openapi_server.NewDefaultApiController(service)
			limiter := openapi_server.NewIPRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)

			srv := &http.Server{
				Addr:         listen,
				Handler:      openapi_server.NewRouter(logger, limiter, controller),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("starting server", "listen", listen, "navigator", router.Navigator())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config or :8080)")
	return cmd
}
