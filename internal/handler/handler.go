package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rpatil/nse-market-proxy/internal/model"
	"github.com/rpatil/nse-market-proxy/internal/stream"
	"github.com/rpatil/nse-market-proxy/internal/version"
)

// MarketService provides the per-category snapshot operations.
type MarketService interface {
	Stocks(ctx context.Context) []model.StockQuote
	Quote(ctx context.Context, symbol string) (model.StockQuote, error)
	Indices(ctx context.Context) map[string]model.IndexSnapshot
	Movers(ctx context.Context) model.MoversPair
	All(ctx context.Context) *model.MarketSnapshot
	ClearCache()
}

// Handler wires the REST surface to the market service.
type Handler struct {
	svc    MarketService
	hub    *stream.Hub
	logger *slog.Logger
}

// New creates a Handler. hub may be nil, in which case the WebSocket route
// is not registered.
func New(svc MarketService, hub *stream.Hub, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, hub: hub, logger: logger}
}

// InitRoutes builds the gin engine with all routes and middleware.
func (h *Handler) InitRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), CORS())

	r.GET("/", h.Home)

	api := r.Group("/api")
	api.GET("/stocks", h.GetStocks)
	api.GET("/stock/:symbol", h.GetStock)
	api.GET("/indices", h.GetIndices)
	api.GET("/movers", h.GetMovers)
	api.GET("/all", h.GetAll)
	api.POST("/clear-cache", h.ClearCache)

	if h.hub != nil {
		r.GET("/ws", h.Stream)
	}

	return r
}

// Home serves the static health/info payload. Never fails.
func (h *Handler) Home(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"message": "NSE Real-Time Data API",
		"version": version.Version,
		"endpoints": gin.H{
			"/api/stocks":         "Get top stocks data",
			"/api/stock/<symbol>": "Get specific stock data",
			"/api/indices":        "Get market indices",
			"/api/movers":         "Get top gainers and losers",
			"/api/all":            "Get complete market data",
			"/api/clear-cache":    "Reset the cache (POST)",
		},
	})
}

// GetStocks serves the cached bulk quote list. Always 200; an empty list
// on total upstream failure.
func (h *Handler) GetStocks(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.Stocks(ctx.Request.Context()))
}

// GetStock serves an uncached single quote. Any upstream failure becomes
// one generic 500; upstream status codes never reach the client.
func (h *Handler) GetStock(ctx *gin.Context) {
	symbol := ctx.Param("symbol")
	quote, err := h.svc.Quote(ctx.Request.Context(), symbol)
	if err != nil {
		h.logger.Warn("single quote fetch failed",
			"symbol", symbol,
			"request_id", ctx.GetString(requestIDKey),
			"err", err,
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock data"})
		return
	}
	ctx.JSON(http.StatusOK, quote)
}

// GetIndices serves the cached allow-listed index mapping. Always 200.
func (h *Handler) GetIndices(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.Indices(ctx.Request.Context()))
}

// GetMovers serves gainers/losers fresh on every call. Always 200.
func (h *Handler) GetMovers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.Movers(ctx.Request.Context()))
}

// GetAll serves the cached complete market snapshot. Always 200.
func (h *Handler) GetAll(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.All(ctx.Request.Context()))
}

// ClearCache resets the shared cache slot. Always 200.
func (h *Handler) ClearCache(ctx *gin.Context) {
	h.svc.ClearCache()
	ctx.JSON(http.StatusOK, gin.H{"message": "Cache cleared successfully"})
}
