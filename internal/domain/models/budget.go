package models

import (
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Budget holds the budgeted financials for a single (year, month) period.
// At most one budget document may exist per (year, month) pair; the mongo
// repository enforces this with a unique index.
type Budget struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Month       int                `bson:"month" json:"month"`
	Year        int                `bson:"year" json:"year"`
	FoodSales   float64            `bson:"food_sales" json:"food_sales"`
	BevSales    float64            `bson:"bev_sales" json:"bev_sales"`
	EventSales  float64            `bson:"event_sales" json:"event_sales"`
	TotalSales  float64            `bson:"total_sales" json:"total_sales"`
	FoodCost    float64            `bson:"food_cost" json:"food_cost"`
	BevCost     float64            `bson:"bev_cost" json:"bev_cost"`
	EventCost   float64            `bson:"event_cost" json:"event_cost"`
	TotalCost   float64            `bson:"total_cost" json:"total_cost"`
	GrossProfit float64            `bson:"gross_profit" json:"gross_profit"`
}

// NewBudget validates the period and builds a budget document with the
// derived totals populated.
func NewBudget(month, year int, foodSales, bevSales, eventSales, foodCost, bevCost, eventCost float64) (*Budget, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("budget month must be between 1 and 12, got %d", month)
	}

	budget := &Budget{
		Month:      month,
		Year:       year,
		FoodSales:  foodSales,
		BevSales:   bevSales,
		EventSales: eventSales,
		FoodCost:   foodCost,
		BevCost:    bevCost,
		EventCost:  eventCost,
	}
	budget.Recompute()
	return budget, nil
}

// Recompute refreshes total sales, total cost, and gross profit from the
// department figures. Callers never set the derived fields directly.
func (b *Budget) Recompute() {
	b.TotalSales = round2(b.FoodSales + b.BevSales + b.EventSales)
	b.TotalCost = round2(b.FoodCost + b.BevCost + b.EventCost)
	b.GrossProfit = round2(b.TotalSales - b.TotalCost)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
