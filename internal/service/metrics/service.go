// Package metrics assembles the per-page comparison structures (actual
// versus budgeted versus prior-year, month-to-date and year-to-date) that
// every dashboard page consumes. Assemblers are stateless: each call reads,
// computes, and returns with no cross-call memory.
package metrics

import (
	"go.uber.org/zap"

	"github.com/harborview/venue-metrics/internal/domain/repository"
	"github.com/harborview/venue-metrics/internal/service/periods"
)

// Service composes the record aggregators into page-level metrics.
type Service struct {
	restaurants repository.RestaurantRepository
	events      repository.EventRepository
	budgets     repository.BudgetRepository
	periods     *periods.Calculator
	logger      *zap.Logger
}

// NewService wires a metrics service over the given repositories.
func NewService(restaurants repository.RestaurantRepository, events repository.EventRepository, budgets repository.BudgetRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		restaurants: restaurants,
		events:      events,
		budgets:     budgets,
		periods:     periods.NewCalculator(logger),
		logger:      logger,
	}
}
