package api

import (
	"encoding/json"
	"net/http"
	"time"

	models "GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
	icache "GoldPulse/internal/service/cache"
	"GoldPulse/internal/service/metrics"
	"GoldPulse/internal/service/ratelimit"
	"GoldPulse/internal/usecase"
	pkgcache "GoldPulse/pkg/cache"
	xhttp "GoldPulse/pkg/http"
	xlogger "GoldPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SignalsEchoHandler exposes the signal pipeline over HTTP.
type SignalsEchoHandler struct {
	logger    *xlogger.Logger
	signals   *usecase.SignalService
	candles   *usecase.CandlesUseCase
	collector *usecase.QuoteCollector
	cache     icache.BytesCache
	rl        *ratelimit.Limiter
}

func NewSignalsEchoHandler(logger *xlogger.Logger, signals *usecase.SignalService, candles *usecase.CandlesUseCase) *SignalsEchoHandler {
	metrics.Register()
	return &SignalsEchoHandler{
		logger:  logger,
		signals: signals,
		candles: candles,
		rl:      ratelimit.New(),
	}
}

// SetCache enables short-lived response caching for the read endpoints.
func (h *SignalsEchoHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetCollector wires the live quote collector for health reporting.
func (h *SignalsEchoHandler) SetCollector(c *usecase.QuoteCollector) { h.collector = c }

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/signal", h.Signal)
	g.GET("/phase", h.Phase)
	g.GET("/zones", h.Zones)
	g.GET("/patterns", h.Patterns)
	g.GET("/candles", h.Candles)
	e.GET("/health", h.Health)
}

func (h *SignalsEchoHandler) Signal(c echo.Context) error {
	start := time.Now()
	endpoint := "signal"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SignalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":signal", 5, 2) {
		h.logger.Warn("signal rate_limited", xlogger.String("remote", c.RealIP()))
		return c.String(http.StatusTooManyRequests, "rate limited")
	}
	iv := domrepo.NormalizeInterval(req.Interval)

	cacheKey := pkgcache.GenerateKeyWithParams("resp:signal", req.Symbol, iv)
	if b, ok := h.cached(endpoint, cacheKey); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	res, err := h.signals.GetSignal(c.Request().Context(), usecase.GetSignalParams{
		Symbol:   req.Symbol,
		Interval: iv,
		Bars:     req.N,
	})
	if err != nil {
		metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("signal usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	h.store(cacheKey, res, 15*time.Second)
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsEchoHandler) Phase(c echo.Context) error {
	start := time.Now()
	endpoint := "phase"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.PhaseRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	iv := domrepo.NormalizeInterval(req.Interval)

	res, err := h.signals.GetPhase(c.Request().Context(), usecase.GetSignalParams{
		Symbol:   req.Symbol,
		Interval: iv,
		Bars:     req.N,
	})
	if err != nil {
		metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("phase usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsEchoHandler) Zones(c echo.Context) error {
	start := time.Now()
	endpoint := "zones"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ZonesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	iv := domrepo.NormalizeInterval(req.Interval)

	cacheKey := pkgcache.GenerateKeyWithParams("resp:zones", req.Symbol, iv)
	if b, ok := h.cached(endpoint, cacheKey); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	res, err := h.signals.GetZones(c.Request().Context(), usecase.GetSignalParams{
		Symbol:   req.Symbol,
		Interval: iv,
		Bars:     req.N,
	})
	if err != nil {
		metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("zones usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.store(cacheKey, res, 30*time.Second)
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsEchoHandler) Patterns(c echo.Context) error {
	start := time.Now()
	endpoint := "patterns"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.PatternsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	iv := domrepo.NormalizeInterval(req.Interval)

	res, err := h.signals.GetPatterns(c.Request().Context(), usecase.GetSignalParams{
		Symbol:   req.Symbol,
		Interval: iv,
		Bars:     req.N,
	})
	if err != nil {
		metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("patterns usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsEchoHandler) Candles(c echo.Context) error {
	start := time.Now()
	endpoint := "candles"
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.CandlesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	iv := domrepo.NormalizeInterval(req.Interval)
	var from, to int64
	if s := c.QueryParam("from"); s != "" {
		t, ok := xhttp.ParseTime(s)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("invalid from time %q", s).WithParam("from", s))
		}
		from = t.Unix()
	}
	if s := c.QueryParam("to"); s != "" {
		t, ok := xhttp.ParseTime(s)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("invalid to time %q", s).WithParam("to", s))
		}
		to = t.Unix()
	}

	res, err := h.candles.GetCandles(c.Request().Context(), usecase.GetCandlesParams{
		Symbol:   req.Symbol,
		From:     from,
		To:       to,
		Interval: iv,
		Limit:    req.N,
	})
	if err != nil {
		metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("candles usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsEchoHandler) Health(c echo.Context) error {
	status := map[string]any{
		"status": "ok",
		"time":   time.Now().Unix(),
	}
	if h.collector != nil {
		status["spot_stream"] = h.collector.IsConnected()
	}
	return c.JSON(http.StatusOK, status)
}

func (h *SignalsEchoHandler) cached(endpoint, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("response cache get error", xlogger.Error(err))
		return nil, false
	}
	if ok {
		metrics.EndpointCacheHits.WithLabelValues(endpoint).Inc()
	}
	return b, ok
}

func (h *SignalsEchoHandler) store(key string, v any, ttl time.Duration) {
	if h.cache == nil {
		return
	}
	b, err := json.Marshal(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    v,
	})
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(key, b, ttl); err != nil {
		h.logger.Warn("response cache set error", xlogger.Error(err))
	}
}
