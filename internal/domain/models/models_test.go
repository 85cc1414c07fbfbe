package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewBudgetDerivesTotals(t *testing.T) {
	budget, err := NewBudget(3, 2025, 100, 50, 25, 30, 15, 10)
	require.NoError(t, err)

	assert.Equal(t, 175.0, budget.TotalSales)
	assert.Equal(t, 55.0, budget.TotalCost)
	assert.Equal(t, 120.0, budget.GrossProfit)
}

func TestNewBudgetRejectsBadMonth(t *testing.T) {
	_, err := NewBudget(0, 2025, 0, 0, 0, 0, 0, 0)
	assert.Error(t, err)

	_, err = NewBudget(13, 2025, 0, 0, 0, 0, 0, 0)
	assert.Error(t, err)
}

func TestBudgetRecomputeIsIdempotent(t *testing.T) {
	budget, err := NewBudget(6, 2025, 1000.333, 500.333, 250, 300, 150, 100)
	require.NoError(t, err)

	first := *budget
	budget.Recompute()
	assert.Equal(t, first, *budget)
}

func TestBudgetRecomputeRounds(t *testing.T) {
	budget := &Budget{FoodSales: 10.006, BevSales: 0, EventSales: 0, FoodCost: 3.333, BevCost: 3.333, EventCost: 3.333}
	budget.Recompute()

	assert.Equal(t, 10.01, budget.TotalSales)
	assert.Equal(t, 10.0, budget.TotalCost)
	assert.Equal(t, 0.01, budget.GrossProfit)
}

func TestNewEventDerivesTotals(t *testing.T) {
	event, err := NewEvent("Avery Collins", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), "Wedding", 200, 80, 60, 30)
	require.NoError(t, err)

	assert.Equal(t, 280.0, event.TotalSales)
	assert.Equal(t, 90.0, event.TotalCost)
	assert.Equal(t, "Avery Collins Wedding", event.DisplayName())
}

func TestNewEventValidation(t *testing.T) {
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	_, err := NewEvent("", date, "Wedding", 0, 0, 0, 0)
	assert.Error(t, err)

	_, err = NewEvent("Avery Collins", date, "Quinceanera", 0, 0, 0, 0)
	assert.Error(t, err)
}

func TestNewMenuItemValidation(t *testing.T) {
	item, err := NewMenuItem("Pub Burger", CategoryFood, 15, 5.40)
	require.NoError(t, err)
	assert.Equal(t, CategoryFood, item.Category)

	_, err = NewMenuItem("", CategoryFood, 1, 1)
	assert.Error(t, err)

	_, err = NewMenuItem("Mystery Dish", "Dessert", 1, 1)
	assert.Error(t, err)

	_, err = NewMenuItem("Pub Burger", CategoryFood, -1, 1)
	assert.Error(t, err)
}

func TestNewRestaurantSaleDenormalizesItem(t *testing.T) {
	item := &MenuItem{
		ID:       primitive.NewObjectID(),
		Name:     "Domestic Beer",
		Category: CategoryBeverage,
		Price:    6,
		Cost:     2,
	}

	sale, err := NewRestaurantSale(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), item, 4)
	require.NoError(t, err)

	assert.Equal(t, item.ID, sale.ItemID)
	assert.Equal(t, CategoryBeverage, sale.Category)
	assert.Equal(t, 24.0, sale.TotalSales)
	assert.Equal(t, 8.0, sale.TotalCost)
}

func TestNewRestaurantSaleValidation(t *testing.T) {
	date := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	_, err := NewRestaurantSale(date, nil, 1)
	assert.Error(t, err)

	item := &MenuItem{Name: "Coke", Category: CategoryBeverage, Price: 3, Cost: 0.5}
	_, err = NewRestaurantSale(date, item, 0)
	assert.Error(t, err)
}

func TestRestaurantSaleRecomputeAfterMutation(t *testing.T) {
	item := &MenuItem{Name: "Coffee", Category: CategoryBeverage, Price: 3, Cost: 0.55}
	sale, err := NewRestaurantSale(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), item, 2)
	require.NoError(t, err)

	sale.Quantity = 10
	sale.Recompute()

	assert.Equal(t, 30.0, sale.TotalSales)
	assert.Equal(t, 5.5, sale.TotalCost)
}
