package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/layer-3/walletgate/core"
	"github.com/layer-3/walletgate/feed"
	"github.com/layer-3/walletgate/service"
)

// GateHandlers exposes the gate handle over HTTP
type GateHandlers struct {
	gate service.Handle
}

// NewGateHandlers creates new gate handlers
func NewGateHandlers(gate service.Handle) *GateHandlers {
	return &GateHandlers{gate: gate}
}

// Status returns a snapshot of the gate
func (h *GateHandlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.gate.Status())
}

// Detect re-runs provider detection
func (h *GateHandlers) Detect(c *gin.Context) {
	h.gate.Detect()
	c.JSON(http.StatusAccepted, gin.H{"detected": h.gate.Status().Detected})
}

// Reauth forgets the session and restarts the loading screen
func (h *GateHandlers) Reauth(c *gin.Context) {
	h.gate.ForceReauth(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Re-authentication started"})
}

// Connect runs an interactive connect for the wallet in the path
func (h *GateHandlers) Connect(c *gin.Context) {
	wallet, err := core.ParseWalletType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown wallet type"})
		return
	}

	if err := h.gate.Select(c.Request.Context(), wallet); err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Connection failed"

		var failed *core.ConnectionFailedError
		switch {
		case errors.Is(err, core.ErrProviderNotFound):
			statusCode = http.StatusNotFound
			errorMsg = "Wallet not installed"
		case errors.Is(err, core.ErrUserRejected):
			statusCode = http.StatusForbidden
			errorMsg = "Connection rejected"
		case errors.Is(err, core.ErrRequestAlreadyPending):
			statusCode = http.StatusConflict
			errorMsg = "Request already pending in wallet"
		case errors.Is(err, core.ErrNotSelecting),
			errors.Is(err, core.ErrConnectInProgress),
			errors.Is(err, core.ErrControlDisabled),
			errors.Is(err, core.ErrAlreadyConnected),
			errors.Is(err, core.ErrCycleSuperseded):
			statusCode = http.StatusConflict
			errorMsg = err.Error()
		case errors.As(err, &failed):
			statusCode = http.StatusBadGateway
			errorMsg = failed.Error()
		}

		c.JSON(statusCode, gin.H{"error": errorMsg, "label": core.ErrorLabel(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": true, "wallet": wallet})
}

// TokenFetcher is the feed lookup the token endpoint serves from
type TokenFetcher interface {
	Fetch(ctx context.Context, source string, limit int) (feed.Result, error)
}

// FeedHandlers serves the token-feed proxy
type FeedHandlers struct {
	fetcher TokenFetcher
	now     func() time.Time
}

// NewFeedHandlers creates new feed handlers
func NewFeedHandlers(fetcher TokenFetcher) *FeedHandlers {
	return &FeedHandlers{fetcher: fetcher, now: time.Now}
}

// Tokens proxies one whitelisted upstream
func (h *FeedHandlers) Tokens(c *gin.Context) {
	limit, err := feed.ParseLimit(c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, feed.Failure(err.Error(), h.now()))
		return
	}

	res, err := h.fetcher.Fetch(c.Request.Context(), c.Query("source"), limit)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Internal error"

		switch {
		case errors.Is(err, feed.ErrUnknownSource):
			statusCode = http.StatusBadRequest
			errorMsg = "Unknown source"
		case errors.Is(err, feed.ErrAllUpstreamsFailed):
			statusCode = http.StatusBadGateway
			errorMsg = feed.ErrAllUpstreamsFailed.Error()
		}

		c.JSON(statusCode, feed.Failure(errorMsg, h.now()))
		return
	}

	c.JSON(http.StatusOK, feed.Ok(res, h.now()))
}
