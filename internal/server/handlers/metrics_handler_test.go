package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/venue-metrics/internal/domain/models"
	"github.com/harborview/venue-metrics/internal/domain/repository"
	"github.com/harborview/venue-metrics/internal/service/metrics"
)

// Zero-value repository stubs. The failing budget stub simulates a storage
// outage on the first lookup every page assembly performs.

type stubRestaurants struct{}

func (stubRestaurants) TotalSales(context.Context, time.Time, time.Time) (float64, error) {
	return 0, nil
}
func (stubRestaurants) TotalCosts(context.Context, time.Time, time.Time) (float64, error) {
	return 0, nil
}
func (stubRestaurants) SalesByCategory(context.Context, time.Time, time.Time) ([]repository.CategoryTotal, error) {
	return nil, nil
}
func (stubRestaurants) CostsByCategory(context.Context, time.Time, time.Time) ([]repository.CategoryTotal, error) {
	return nil, nil
}
func (stubRestaurants) TopSellingItems(context.Context, time.Time, time.Time, int) ([]repository.ItemSales, error) {
	return nil, nil
}
func (stubRestaurants) ItemSalesTrends(context.Context, time.Time, time.Time, time.Time, time.Time, int, bool) ([]repository.ItemTrend, error) {
	return nil, nil
}
func (stubRestaurants) AverageSalesByDay(context.Context, time.Time, time.Time) ([]repository.DayAverage, error) {
	return nil, nil
}
func (stubRestaurants) InsertSales(context.Context, []models.RestaurantSale) error { return nil }

type stubEvents struct{}

func (stubEvents) TotalSales(context.Context, time.Time, time.Time) (float64, error) { return 0, nil }
func (stubEvents) TotalFoodSales(context.Context, time.Time, time.Time) (float64, error) {
	return 0, nil
}
func (stubEvents) TotalBevSales(context.Context, time.Time, time.Time) (float64, error) {
	return 0, nil
}
func (stubEvents) TotalCosts(context.Context, time.Time, time.Time) (float64, error) { return 0, nil }
func (stubEvents) TotalFoodCosts(context.Context, time.Time, time.Time) (float64, error) {
	return 0, nil
}
func (stubEvents) TotalBevCosts(context.Context, time.Time, time.Time) (float64, error) {
	return 0, nil
}
func (stubEvents) TopEvents(context.Context, time.Time, time.Time, int) ([]repository.EventSummary, error) {
	return nil, nil
}
func (stubEvents) EventsAboveThreshold(context.Context, time.Time, time.Time, float64) ([]repository.EventSummary, error) {
	return nil, nil
}
func (stubEvents) CountEvents(context.Context, time.Time, time.Time) (int64, error) { return 0, nil }
func (stubEvents) AverageEventSales(context.Context, time.Time, time.Time) (float64, error) {
	return 0, nil
}
func (stubEvents) TypeBreakdown(context.Context, time.Time, time.Time) ([]repository.EventTypeCount, error) {
	return nil, nil
}
func (stubEvents) InsertEvents(context.Context, []models.Event) error { return nil }

type stubBudgets struct {
	err error
}

func (s stubBudgets) MonthlyTotal(context.Context, repository.BudgetField, int, int) (float64, error) {
	return 0, s.err
}
func (s stubBudgets) YTDTotal(context.Context, repository.BudgetField, int, int) (float64, error) {
	return 0, s.err
}
func (s stubBudgets) AnnualBudgets(context.Context, int) ([]models.Budget, error) {
	return nil, s.err
}
func (s stubBudgets) Upsert(context.Context, *models.Budget) error { return s.err }

func newTestHandler(budgets repository.BudgetRepository) *MetricsHandler {
	svc := metrics.NewService(stubRestaurants{}, stubEvents{}, budgets, nil)
	return NewMetricsHandler(svc, time.Second, nil)
}

func performRequest(handler gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHomeReturnsPayload(t *testing.T) {
	h := newTestHandler(stubBudgets{})

	w := performRequest(h.Home, "/test?month=3&year=2025")
	require.Equal(t, http.StatusOK, w.Code)

	var payload metrics.HomeMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.NotNil(t, payload.MonthlyRevenueMetrics)
	assert.Equal(t, 3, payload.MonthlyRevenueMetrics.Month)
	assert.Equal(t, 2025, payload.MonthlyRevenueMetrics.Year)
}

func TestHomeFallsBackOnStorageError(t *testing.T) {
	h := newTestHandler(stubBudgets{err: errors.New("connection reset")})

	w := performRequest(h.Home, "/test?month=3&year=2025")

	// Storage failures degrade to an empty payload, never an error status.
	require.Equal(t, http.StatusOK, w.Code)

	var payload metrics.HomeMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Nil(t, payload.MonthlyRevenueMetrics)
	assert.Nil(t, payload.TopMenuItem)
}

func TestEventsFallsBackOnStorageError(t *testing.T) {
	h := newTestHandler(stubBudgets{err: errors.New("connection reset")})

	w := performRequest(h.Events, "/test?month=3&year=2025")
	require.Equal(t, http.StatusOK, w.Code)

	var payload metrics.EventsMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Nil(t, payload.MonthlyRevenueMetrics)
}

func TestPeriodParamDefaults(t *testing.T) {
	h := newTestHandler(stubBudgets{})

	// An out-of-range month falls back to the current month.
	w := performRequest(h.Home, "/test?month=13&year=2025")
	require.Equal(t, http.StatusOK, w.Code)

	var payload metrics.HomeMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.NotNil(t, payload.MonthlyRevenueMetrics)
	assert.Equal(t, int(time.Now().Month()), payload.MonthlyRevenueMetrics.Month)

	// A malformed month is ignored the same way.
	w = performRequest(h.Home, "/test?month=abc")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRestaurantStatementIncludesRows(t *testing.T) {
	h := newTestHandler(stubBudgets{})

	w := performRequest(h.RestaurantStatement, "/test?month=3&year=2025")
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Rows []metrics.StatementRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Len(t, payload.Rows, 12)
}
