// Package repository declares the data-access contracts the metrics layer
// reads through. The mongodb package provides the production implementation;
// tests substitute in-memory fakes.
package repository

import (
	"context"
	"time"

	"github.com/harborview/venue-metrics/internal/domain/models"
)

// BudgetField names a numeric field on a budget document that the budget
// aggregators can total.
type BudgetField string

const (
	BudgetFoodSales   BudgetField = "food_sales"
	BudgetBevSales    BudgetField = "bev_sales"
	BudgetEventSales  BudgetField = "event_sales"
	BudgetTotalSales  BudgetField = "total_sales"
	BudgetFoodCost    BudgetField = "food_cost"
	BudgetBevCost     BudgetField = "bev_cost"
	BudgetEventCost   BudgetField = "event_cost"
	BudgetTotalCost   BudgetField = "total_cost"
	BudgetGrossProfit BudgetField = "gross_profit"
)

// CategoryTotal is one grouped-sum bucket. Categories with no matching
// records in range are absent from results, never present with zero.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// ItemSales is a menu item resolved to its display name with summed sales.
type ItemSales struct {
	Name       string  `bson:"name" json:"name"`
	TotalSales float64 `bson:"total_sales" json:"total_sales"`
}

// ItemTrend compares a menu item's sales between two equal-length periods.
// PercentChange is nil when the previous total is zero.
type ItemTrend struct {
	Name          string   `bson:"name" json:"name"`
	CurrentTotal  float64  `bson:"current_total" json:"current_total"`
	PreviousTotal float64  `bson:"previous_total" json:"previous_total"`
	Difference    float64  `bson:"difference" json:"difference"`
	PercentChange *float64 `bson:"percent_change" json:"percent_change"`
}

// DayAverage is the average of daily sales totals across all days in range
// sharing a weekday. DayOfWeek uses 1=Sunday through 7=Saturday.
type DayAverage struct {
	DayOfWeek    int     `bson:"day_of_week" json:"day_of_week"`
	AverageSales float64 `bson:"average_sales" json:"average_sales"`
}

// EventSummary is an event projected for display, with the computed
// "client_name event_type" display name.
type EventSummary struct {
	ClientName  string    `bson:"client_name" json:"client_name"`
	EventType   string    `bson:"event_type" json:"event_type"`
	EventDate   time.Time `bson:"event_date" json:"event_date"`
	TotalSales  float64   `bson:"total_sales" json:"total_sales"`
	DisplayName string    `bson:"display_name" json:"display_name"`
}

// EventTypeCount is the number of events of one type within a range.
type EventTypeCount struct {
	EventType string `bson:"event_type" json:"event_type"`
	Count     int64  `bson:"count" json:"count"`
}

// RestaurantRepository aggregates itemized restaurant sales. All intervals
// are half-open: records with start <= sale date < end qualify.
type RestaurantRepository interface {
	TotalSales(ctx context.Context, start, end time.Time) (float64, error)
	TotalCosts(ctx context.Context, start, end time.Time) (float64, error)
	SalesByCategory(ctx context.Context, start, end time.Time) ([]CategoryTotal, error)
	CostsByCategory(ctx context.Context, start, end time.Time) ([]CategoryTotal, error)
	TopSellingItems(ctx context.Context, start, end time.Time, limit int) ([]ItemSales, error)
	ItemSalesTrends(ctx context.Context, currentStart, currentEnd, previousStart, previousEnd time.Time, limit int, ascending bool) ([]ItemTrend, error)
	AverageSalesByDay(ctx context.Context, start, end time.Time) ([]DayAverage, error)
	InsertSales(ctx context.Context, sales []models.RestaurantSale) error
}

// EventRepository aggregates banquet events over half-open date intervals.
type EventRepository interface {
	TotalSales(ctx context.Context, start, end time.Time) (float64, error)
	TotalFoodSales(ctx context.Context, start, end time.Time) (float64, error)
	TotalBevSales(ctx context.Context, start, end time.Time) (float64, error)
	TotalCosts(ctx context.Context, start, end time.Time) (float64, error)
	TotalFoodCosts(ctx context.Context, start, end time.Time) (float64, error)
	TotalBevCosts(ctx context.Context, start, end time.Time) (float64, error)
	TopEvents(ctx context.Context, start, end time.Time, limit int) ([]EventSummary, error)
	EventsAboveThreshold(ctx context.Context, start, end time.Time, threshold float64) ([]EventSummary, error)
	CountEvents(ctx context.Context, start, end time.Time) (int64, error)
	AverageEventSales(ctx context.Context, start, end time.Time) (float64, error)
	TypeBreakdown(ctx context.Context, start, end time.Time) ([]EventTypeCount, error)
	InsertEvents(ctx context.Context, events []models.Event) error
}

// BudgetRepository looks up budgeted figures. Missing budget rows are not
// errors; totals default to 0.0.
type BudgetRepository interface {
	// MonthlyTotal returns the named field from the unique budget document
	// for (month, year), or 0.0 when none exists.
	MonthlyTotal(ctx context.Context, field BudgetField, month, year int) (float64, error)
	// YTDTotal sums the named field across the year's budget documents with
	// month <= the given month.
	YTDTotal(ctx context.Context, field BudgetField, month, year int) (float64, error)
	AnnualBudgets(ctx context.Context, year int) ([]models.Budget, error)
	// Upsert writes the budget keyed by (year, month), recomputing derived
	// fields and preserving the one-budget-per-period invariant.
	Upsert(ctx context.Context, budget *models.Budget) error
}

// MenuItemRepository manages the menu item reference collection.
type MenuItemRepository interface {
	InsertMenuItems(ctx context.Context, items []models.MenuItem) error
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
}
