package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harborview/venue-metrics/internal/domain/models"
	"github.com/harborview/venue-metrics/internal/domain/repository"
)

// BudgetImporter pulls budget rows from an external source into the store.
type BudgetImporter interface {
	Import(ctx context.Context) (int, error)
}

// BudgetHandler maintains budget documents: direct upserts and bulk import
// from the configured spreadsheet.
type BudgetHandler struct {
	budgets  repository.BudgetRepository
	importer BudgetImporter
	logger   *zap.Logger
}

// NewBudgetHandler constructs the budget HTTP handler. The importer may be
// nil when no spreadsheet is configured.
func NewBudgetHandler(budgets repository.BudgetRepository, importer BudgetImporter, logger *zap.Logger) *BudgetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BudgetHandler{budgets: budgets, importer: importer, logger: logger}
}

type upsertBudgetRequest struct {
	Month      int     `json:"month" binding:"required"`
	Year       int     `json:"year" binding:"required"`
	FoodSales  float64 `json:"food_sales"`
	BevSales   float64 `json:"bev_sales"`
	EventSales float64 `json:"event_sales"`
	FoodCost   float64 `json:"food_cost"`
	BevCost    float64 `json:"bev_cost"`
	EventCost  float64 `json:"event_cost"`
}

// Upsert creates or replaces the budget for one (year, month).
func (h *BudgetHandler) Upsert(c *gin.Context) {
	var req upsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid budget payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	budget, err := models.NewBudget(req.Month, req.Year, req.FoodSales, req.BevSales, req.EventSales, req.FoodCost, req.BevCost, req.EventCost)
	if err != nil {
		h.logger.Warn("rejected budget payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.budgets.Upsert(c.Request.Context(), budget); err != nil {
		h.logger.Error("failed upserting budget",
			zap.Int("month", req.Month), zap.Int("year", req.Year), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save budget"})
		return
	}

	c.JSON(http.StatusOK, budget)
}

// Import triggers a bulk budget import from the configured spreadsheet.
func (h *BudgetHandler) Import(c *gin.Context) {
	if h.importer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "budget import is not configured"})
		return
	}

	imported, err := h.importer.Import(c.Request.Context())
	if err != nil {
		h.logger.Error("budget import failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "budget import failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
