package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/LopezVillaFrancisco/wollen-music-app/pkg/interfaces"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Example: `  # Start on the configured port (3001 by default)
  wollen serve

  # Start on a custom port
  wollen serve --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			if port != "" {
				a.cfg.Server.Port = port
			}

			handler := interfaces.NewCatalogHandler(a.service, interfaces.HandlerConfig{
				RequestTimeout:    a.cfg.Server.RequestTimeout,
				TrendsTimeout:     a.cfg.Server.TrendsTimeout,
				TrendDefaultLimit: a.cfg.Trends.DefaultLimit,
				TrendMaxLimit:     a.cfg.Trends.MaxLimit,
			}, a.logger)
			router := interfaces.NewRouter(handler, a.logger)

			for _, route := range interfaces.Routes(router) {
				a.logger.Info("route registered", "route", route)
			}

			server := &http.Server{
				Addr:         a.cfg.Server.Addr(),
				Handler:      interfaces.WithCORS(router, a.cfg.Server.AllowedOrigins),
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			}

			serverErr := make(chan error, 1)
			go func() {
				a.logger.Info("server listening", "addr", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				a.logger.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					a.logger.Error("server shutdown failed", "err", err)
					return err
				}
				a.logger.Info("server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on, overrides the config")

	return cmd
}
