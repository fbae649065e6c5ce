package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/layer-3/walletgate/adapters/events"
	"github.com/layer-3/walletgate/adapters/provider"
	"github.com/layer-3/walletgate/adapters/surface"
	"github.com/layer-3/walletgate/core"
	"github.com/layer-3/walletgate/feed"
	"github.com/layer-3/walletgate/service"
	transporthttp "github.com/layer-3/walletgate/transport/http"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gate handle and the token-feed proxy over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := appConfig

	var client *redis.Client
	if cfg.RedisURL != "" {
		var err error
		client, err = openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	bus, err := newEventBus(client)
	if err != nil {
		return err
	}
	defer bus.Close()

	err = events.Listen(ctx, bus.subscriber, events.Handlers{
		OnConnected: func(res core.ConnectionResult) {
			logger.Info("wallet connected event", zap.String("wallet", string(res.Type)), zap.String("address", res.Address))
		},
		OnDisconnected: func(wallet core.WalletType) {
			logger.Info("wallet disconnected event", zap.String("wallet", string(wallet)))
		},
	})
	if err != nil {
		return err
	}

	sessions, err := newSessionStore(cfg, client)
	if err != nil {
		return err
	}

	registry := provider.NewRegistry()
	if cfg.EthRPCURL != "" {
		eth, err := provider.DialEthereum(ctx, cfg.EthRPCURL)
		if err != nil {
			return err
		}
		defer eth.Close()
		registry.SetEthereum(eth)
	}

	gate := service.NewGate(
		cfg.Gate(),
		registry,
		sessions,
		events.NewWatermillPublisher(bus.publisher),
		surface.NewLog(logger),
		service.WithLogger(logger),
	)
	gate.Start(ctx)
	defer gate.Stop()

	var limiter feed.Limiter = feed.NewMemoryLimiter(cfg.RateLimit, feed.DefaultWindow)
	if client != nil {
		limiter = feed.NewRedisLimiter(client, "", cfg.RateLimit, feed.DefaultWindow)
	}
	fetcher := feed.NewFetcher(cfg.Sources,
		feed.WithTimeout(cfg.UpstreamTimeout),
		feed.WithLogger(logger),
	)

	gin.SetMode(gin.ReleaseMode)
	router, err := transporthttp.SetupRouter(transporthttp.RouterConfig{
		Gate:           gate,
		Feed:           fetcher,
		Limiter:        limiter,
		TrustedProxies: cfg.TrustedProxyCIDRs,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           transporthttp.WithCORS(router, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
