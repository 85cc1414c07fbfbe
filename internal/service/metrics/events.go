package metrics

import (
	"context"
	"fmt"

	"github.com/harborview/venue-metrics/internal/domain/repository"
	"github.com/harborview/venue-metrics/internal/service/periods"
)

// EventsMonthlyRevenue is the banquet page's monthly revenue view.
type EventsMonthlyRevenue struct {
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	BudgetedRevenue float64 `json:"budgeted_revenue"`
	FoodRevenue     float64 `json:"food_revenue"`
	BeverageRevenue float64 `json:"beverage_revenue"`
	TotalRevenue    float64 `json:"total_revenue"`
	Variance        float64 `json:"variance"`
}

// RevenueComparison compares an actual figure against the prior year.
type RevenueComparison struct {
	Actual    float64 `json:"actual"`
	PriorYear float64 `json:"py"`
}

// TotalComparison adds the budgeted figure to a prior-year comparison.
type TotalComparison struct {
	Actual    float64 `json:"actual"`
	Budgeted  float64 `json:"budgeted"`
	PriorYear float64 `json:"py"`
}

// EventsYTDRevenue is the banquet page's year-to-date revenue view, broken
// down by category with prior-year figures alongside.
type EventsYTDRevenue struct {
	Food     RevenueComparison `json:"food"`
	Beverage RevenueComparison `json:"beverage"`
	Total    TotalComparison   `json:"total"`
}

// PeriodCount labels an event count for one compared period.
type PeriodCount struct {
	Name      string `json:"name"`
	NumEvents int64  `json:"num_events"`
}

// EventsMetrics bundles everything the banquet page renders.
type EventsMetrics struct {
	MonthlyRevenueMetrics *EventsMonthlyRevenue        `json:"monthly_revenue_metrics"`
	YTDRevenueMetrics     *EventsYTDRevenue            `json:"ytd_revenue_metrics"`
	EventCounts           []PeriodCount                `json:"event_counts"`
	AverageEventSales     float64                      `json:"average_event_sales"`
	TypeBreakdown         []repository.EventTypeCount  `json:"type_breakdown"`
	TopEvents             []repository.EventSummary    `json:"top_events"`
	EventsAboveThreshold  []repository.EventSummary    `json:"events_above_threshold"`
}

// EventsMonthlyRevenueMetrics assembles the month's banquet revenue view.
func (s *Service) EventsMonthlyRevenueMetrics(ctx context.Context, month, year int) (*EventsMonthlyRevenue, error) {
	start, end := periods.MonthlyRange(month, year)

	budgeted, err := s.budgets.MonthlyTotal(ctx, repository.BudgetEventSales, month, year)
	if err != nil {
		return nil, fmt.Errorf("monthly budgeted event revenue: %w", err)
	}
	food, err := s.events.TotalFoodSales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly event food revenue: %w", err)
	}
	beverage, err := s.events.TotalBevSales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly event beverage revenue: %w", err)
	}

	total := Total(Float(food), Float(beverage))

	return &EventsMonthlyRevenue{
		Month:           month,
		Year:            year,
		BudgetedRevenue: budgeted,
		FoodRevenue:     food,
		BeverageRevenue: beverage,
		TotalRevenue:    total,
		Variance:        total - budgeted,
	}, nil
}

// EventsYTDRevenueMetrics assembles the year-to-date banquet revenue view
// with prior-year comparisons per category.
func (s *Service) EventsYTDRevenueMetrics(ctx context.Context, month, year int) (*EventsYTDRevenue, error) {
	currentStart, currentEnd := periods.YTDRange(month, year)
	priorStart, priorEnd := periods.YTDRange(month, year-1)

	food, err := s.events.TotalFoodSales(ctx, currentStart, currentEnd)
	if err != nil {
		return nil, fmt.Errorf("ytd event food revenue: %w", err)
	}
	priorFood, err := s.events.TotalFoodSales(ctx, priorStart, priorEnd)
	if err != nil {
		return nil, fmt.Errorf("prior year event food revenue: %w", err)
	}
	beverage, err := s.events.TotalBevSales(ctx, currentStart, currentEnd)
	if err != nil {
		return nil, fmt.Errorf("ytd event beverage revenue: %w", err)
	}
	priorBeverage, err := s.events.TotalBevSales(ctx, priorStart, priorEnd)
	if err != nil {
		return nil, fmt.Errorf("prior year event beverage revenue: %w", err)
	}
	budgetedTotal, err := s.budgets.YTDTotal(ctx, repository.BudgetEventSales, month, year)
	if err != nil {
		return nil, fmt.Errorf("ytd budgeted event revenue: %w", err)
	}

	return &EventsYTDRevenue{
		Food:     RevenueComparison{Actual: food, PriorYear: priorFood},
		Beverage: RevenueComparison{Actual: beverage, PriorYear: priorBeverage},
		Total: TotalComparison{
			Actual:    Total(Float(food), Float(beverage)),
			Budgeted:  budgetedTotal,
			PriorYear: Total(Float(priorFood), Float(priorBeverage)),
		},
	}, nil
}

// EventCountComparison counts events in the period against the same period a
// year earlier.
func (s *Service) EventCountComparison(ctx context.Context, kind periods.Kind, month, year int) ([]PeriodCount, error) {
	currentStart, currentEnd := s.periods.Range(kind, month, year)
	priorStart, priorEnd := s.periods.Range(kind, month, year-1)

	current, err := s.events.CountEvents(ctx, currentStart, currentEnd)
	if err != nil {
		return nil, fmt.Errorf("current event count: %w", err)
	}
	prior, err := s.events.CountEvents(ctx, priorStart, priorEnd)
	if err != nil {
		return nil, fmt.Errorf("prior year event count: %w", err)
	}

	return []PeriodCount{
		{Name: "Current", NumEvents: current},
		{Name: "Prior Year", NumEvents: prior},
	}, nil
}

// EventsPageMetrics assembles the full banquet page payload. Threshold
// filters the highlighted large events.
func (s *Service) EventsPageMetrics(ctx context.Context, month, year int, threshold float64) (*EventsMetrics, error) {
	monthlyRevenue, err := s.EventsMonthlyRevenueMetrics(ctx, month, year)
	if err != nil {
		return nil, err
	}
	ytdRevenue, err := s.EventsYTDRevenueMetrics(ctx, month, year)
	if err != nil {
		return nil, err
	}
	counts, err := s.EventCountComparison(ctx, periods.Monthly, month, year)
	if err != nil {
		return nil, err
	}

	start, end := periods.MonthlyRange(month, year)
	average, err := s.events.AverageEventSales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("average event sales: %w", err)
	}
	breakdown, err := s.events.TypeBreakdown(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("event type breakdown: %w", err)
	}
	topEvents, err := s.events.TopEvents(ctx, start, end, 5)
	if err != nil {
		return nil, fmt.Errorf("top events: %w", err)
	}
	aboveThreshold, err := s.events.EventsAboveThreshold(ctx, start, end, threshold)
	if err != nil {
		return nil, fmt.Errorf("events above threshold: %w", err)
	}

	return &EventsMetrics{
		MonthlyRevenueMetrics: monthlyRevenue,
		YTDRevenueMetrics:     ytdRevenue,
		EventCounts:           counts,
		AverageEventSales:     average,
		TypeBreakdown:         breakdown,
		TopEvents:             topEvents,
		EventsAboveThreshold:  aboveThreshold,
	}, nil
}
