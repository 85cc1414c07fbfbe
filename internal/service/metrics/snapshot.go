package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/harborview/venue-metrics/internal/domain/repository"
	"github.com/harborview/venue-metrics/internal/service/periods"
)

// DayOfWeekAverage carries the average daily sales for one named weekday.
type DayOfWeekAverage struct {
	DayOfWeek    string  `json:"day_of_week"`
	AverageSales float64 `json:"average_sales"`
}

// NamedValue pairs a display name with a plain numeric value.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TrendValue pairs a display name with a nullable percent change.
type TrendValue struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// SnapshotMetrics bundles everything the restaurant snapshot page renders.
type SnapshotMetrics struct {
	AvgSalesByDay    []DayOfWeekAverage         `json:"avg_sales_by_day"`
	TopFiveMenuItems []NamedValue               `json:"top_five_menu_items"`
	HotMenuItems     []TrendValue               `json:"hot_menu_items"`
	ColdMenuItems    []TrendValue               `json:"cold_menu_items"`
	SalesByCategory  []repository.CategoryTotal `json:"sales_by_category"`
}

// AvgSalesByDay averages daily sales per weekday over the period, resolving
// the store's 1=Sunday numbering to weekday names.
func (s *Service) AvgSalesByDay(ctx context.Context, kind periods.Kind, month, year int) ([]DayOfWeekAverage, error) {
	start, end := s.periods.Range(kind, month, year)

	days, err := s.restaurants.AverageSalesByDay(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("average sales by day: %w", err)
	}

	averages := make([]DayOfWeekAverage, 0, len(days))
	for _, day := range days {
		averages = append(averages, DayOfWeekAverage{
			DayOfWeek:    time.Weekday(day.DayOfWeek - 1).String(),
			AverageSales: day.AverageSales,
		})
	}
	return averages, nil
}

// TopNMenuItems returns the best selling menu items for the period as
// name/value pairs.
func (s *Service) TopNMenuItems(ctx context.Context, kind periods.Kind, month, year, n int) ([]NamedValue, error) {
	start, end := s.periods.Range(kind, month, year)

	items, err := s.restaurants.TopSellingItems(ctx, start, end, n)
	if err != nil {
		return nil, fmt.Errorf("top %d menu items: %w", n, err)
	}

	values := make([]NamedValue, 0, len(items))
	for _, item := range items {
		values = append(values, NamedValue{Name: item.Name, Value: item.TotalSales})
	}
	return values, nil
}

// HotOrColdMenuItems compares the month's per-item sales against the
// previous month and returns the biggest movers: rising items when hot is
// true, falling items otherwise. Percent change stays nil for items with no
// prior-month sales.
func (s *Service) HotOrColdMenuItems(ctx context.Context, month, year, limit int, hot bool) ([]TrendValue, error) {
	currentStart, currentEnd := periods.MonthlyRange(month, year)

	previousMonth, previousYear := periods.PreviousMonth(month, year)
	previousStart, previousEnd := periods.MonthlyRange(previousMonth, previousYear)

	trends, err := s.restaurants.ItemSalesTrends(ctx, currentStart, currentEnd, previousStart, previousEnd, limit, !hot)
	if err != nil {
		return nil, fmt.Errorf("item sales trends: %w", err)
	}

	values := make([]TrendValue, 0, len(trends))
	for _, trend := range trends {
		values = append(values, TrendValue{Name: trend.Name, Value: trend.PercentChange})
	}
	return values, nil
}

// SalesByCategory sums restaurant sales per category for the period.
func (s *Service) SalesByCategory(ctx context.Context, kind periods.Kind, month, year int) ([]repository.CategoryTotal, error) {
	start, end := s.periods.Range(kind, month, year)

	categories, err := s.restaurants.SalesByCategory(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}
	return categories, nil
}

// SnapshotPageMetrics assembles the full restaurant snapshot payload:
// monthly day-of-week averages and hot/cold movers, year-to-date top sellers
// and category mix.
func (s *Service) SnapshotPageMetrics(ctx context.Context, month, year int) (*SnapshotMetrics, error) {
	avgByDay, err := s.AvgSalesByDay(ctx, periods.Monthly, month, year)
	if err != nil {
		return nil, err
	}
	topFive, err := s.TopNMenuItems(ctx, periods.YearToDate, month, year, 5)
	if err != nil {
		return nil, err
	}
	hot, err := s.HotOrColdMenuItems(ctx, month, year, 3, true)
	if err != nil {
		return nil, err
	}
	cold, err := s.HotOrColdMenuItems(ctx, month, year, 3, false)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.SalesByCategory(ctx, periods.YearToDate, month, year)
	if err != nil {
		return nil, err
	}

	return &SnapshotMetrics{
		AvgSalesByDay:    avgByDay,
		TopFiveMenuItems: topFive,
		HotMenuItems:     hot,
		ColdMenuItems:    cold,
		SalesByCategory:  byCategory,
	}, nil
}
