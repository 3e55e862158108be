package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autograph-dev/autograph"
	httpadapter "github.com/autograph-dev/autograph/internal/adapters/http"
	redisstore "github.com/autograph-dev/autograph/internal/adapters/redis"
	"github.com/autograph-dev/autograph/internal/logging"
	"github.com/autograph-dev/autograph/internal/observability"
	"github.com/autograph-dev/autograph/internal/presentation/tui"
	"github.com/autograph-dev/autograph/pkg/adapters/memory"
	"github.com/autograph-dev/autograph/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the compiler as an HTTP service",
	Long: `Starts the JSON API: stateless compile/decompile/validate endpoints,
flow-record CRUD, the type catalog, and Prometheus metrics on /metrics.

Flows are kept in memory unless --redis points at a Redis instance.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		level, _ := cmd.Flags().GetString("log-level")

		logger := logging.New(logging.ParseLevel(level))

		var store ports.FlowStore
		if redisAddr != "" {
			store = redisstore.New(redisAddr, "", 0)
			logger.Info("using redis flow store", "addr", redisAddr)
		} else {
			store = memory.New()
			logger.Info("using in-memory flow store")
		}

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		compiler := autograph.New(
			autograph.WithLogger(logger),
			autograph.WithMetrics(metrics),
		)

		tui.PrintBanner()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           httpadapter.NewHandler(compiler, store, httpadapter.WithRegistry(registry)),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("autograph server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server failed", "err", err)
				stop()
			}
		}()

		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for flow storage (host:port); empty keeps flows in memory")
}
