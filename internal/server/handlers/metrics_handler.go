package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harborview/venue-metrics/internal/service/metrics"
	"github.com/harborview/venue-metrics/internal/service/periods"
)

// DefaultEventThreshold filters the highlighted large events when no
// threshold query parameter is supplied.
const DefaultEventThreshold = 10000

// MetricsHandler serves the per-page metric payloads. Aggregation failures
// are logged and answered with an empty payload rather than an error status,
// so a storage hiccup degrades the dashboard instead of breaking it.
type MetricsHandler struct {
	svc     *metrics.Service
	timeout time.Duration
	logger  *zap.Logger
}

// NewMetricsHandler constructs the HTTP handler adapter.
func NewMetricsHandler(svc *metrics.Service, timeout time.Duration, logger *zap.Logger) *MetricsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &MetricsHandler{svc: svc, timeout: timeout, logger: logger}
}

// Home serves the combined home page metrics.
func (h *MetricsHandler) Home(c *gin.Context) {
	month, year := h.periodParams(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	payload, err := h.svc.HomePageMetrics(ctx, month, year)
	if err != nil {
		h.logger.Error("failed assembling home metrics",
			zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		c.JSON(http.StatusOK, &metrics.HomeMetrics{})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// RestaurantSnapshot serves the restaurant snapshot page metrics.
func (h *MetricsHandler) RestaurantSnapshot(c *gin.Context) {
	month, year := h.periodParams(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	payload, err := h.svc.SnapshotPageMetrics(ctx, month, year)
	if err != nil {
		h.logger.Error("failed assembling snapshot metrics",
			zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		c.JSON(http.StatusOK, &metrics.SnapshotMetrics{})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// RestaurantStatement serves the restaurant statement metrics and the
// flattened table rows.
func (h *MetricsHandler) RestaurantStatement(c *gin.Context) {
	month, year := h.periodParams(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	payload, err := h.svc.StatementPageMetrics(ctx, month, year)
	if err != nil {
		h.logger.Error("failed assembling statement metrics",
			zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"metrics": &metrics.StatementMetrics{}, "rows": []metrics.StatementRow{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics": payload,
		"rows":    metrics.BuildStatementRows(payload),
	})
}

// Events serves the banquet page metrics.
func (h *MetricsHandler) Events(c *gin.Context) {
	month, year := h.periodParams(c)
	threshold := h.floatParam(c, "threshold", DefaultEventThreshold)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	payload, err := h.svc.EventsPageMetrics(ctx, month, year, threshold)
	if err != nil {
		h.logger.Error("failed assembling event metrics",
			zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		c.JSON(http.StatusOK, &metrics.EventsMetrics{})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// AnnualBudget serves the budget page table rows for a year.
func (h *MetricsHandler) AnnualBudget(c *gin.Context) {
	_, year := h.periodParams(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	rows, err := h.svc.AnnualBudgetData(ctx, year)
	if err != nil {
		h.logger.Error("failed assembling annual budget data",
			zap.Int("year", year), zap.Error(err))
		c.JSON(http.StatusOK, []metrics.BudgetRow{})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// periodParams resolves month and year from the query string, defaulting to
// the current calendar month. Values outside 1-12 fall back to the current
// month.
func (h *MetricsHandler) periodParams(c *gin.Context) (month, year int) {
	now := time.Now()
	month = h.intParam(c, "month", int(now.Month()))
	year = h.intParam(c, "year", now.Year())

	if month < 1 || month > 12 {
		h.logger.Warn("month out of range, using current month", zap.Int("month", month))
		month = int(now.Month())
	}
	return month, year
}

// PeriodKind resolves the period query parameter; unknown values are handled
// downstream by the period calculator's monthly fallback.
func PeriodKind(c *gin.Context) periods.Kind {
	return periods.Kind(c.DefaultQuery("period", string(periods.Monthly)))
}

func (h *MetricsHandler) intParam(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		h.logger.Warn("invalid integer query parameter",
			zap.String("param", name), zap.String("value", raw))
		return fallback
	}
	return value
}

func (h *MetricsHandler) floatParam(c *gin.Context, name string, fallback float64) float64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		h.logger.Warn("invalid numeric query parameter",
			zap.String("param", name), zap.String("value", raw))
		return fallback
	}
	return value
}
