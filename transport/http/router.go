package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/layer-3/walletgate/feed"
	"github.com/layer-3/walletgate/service"
)

// RouterConfig carries the router's collaborators
type RouterConfig struct {
	Gate           service.Handle
	Feed           TokenFetcher
	Limiter        feed.Limiter
	TrustedProxies []string
	Logger         *zap.Logger
}

// SetupRouter sets up the Gin router
func SetupRouter(cfg RouterConfig) (*gin.Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	router.Use(gin.Recovery(), RequestID(), AccessLog(logger.Named("http")))

	// Wallet gate routes
	if cfg.Gate != nil {
		handlers := NewGateHandlers(cfg.Gate)
		wallet := router.Group("/wallet")
		{
			wallet.GET("/status", handlers.Status)
			wallet.POST("/detect", handlers.Detect)
			wallet.POST("/reauth", handlers.Reauth)
			wallet.POST("/connect/:type", handlers.Connect)
		}
	}

	// Token feed routes
	if cfg.Feed != nil {
		handlers := NewFeedHandlers(cfg.Feed)
		api := router.Group("/api")
		if cfg.Limiter != nil {
			api.Use(RateLimit(cfg.Limiter, logger.Named("ratelimit")))
		}
		{
			api.GET("/tokens", handlers.Tokens)
		}
	}

	return router, nil
}

// WithCORS lets the listed origins call h from a browser. An empty list allows any origin.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID, "Retry-After", "X-RateLimit-Remaining"},
		MaxAge:         600,
	}).Handler(h)
}
