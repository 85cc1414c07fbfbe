package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementPageMetrics(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	got, err := svc.StatementPageMetrics(context.Background(), 3, 2025)
	require.NoError(t, err)

	// Actual March figures.
	assert.InDelta(t, 225, got.Actual.Revenue.MTD.FoodRevenue, 1e-9)
	assert.InDelta(t, 120, got.Actual.Revenue.MTD.BeverageRevenue, 1e-9)
	assert.InDelta(t, 345, got.Actual.Revenue.MTD.TotalRevenue, 1e-9)
	assert.InDelta(t, 75, got.Actual.Cost.MTD.FoodCost, 1e-9)
	assert.InDelta(t, 40, got.Actual.Cost.MTD.BeverageCost, 1e-9)
	require.NotNil(t, got.Actual.Cost.MTD.FoodCostPct)
	assert.InDelta(t, 33.33, *got.Actual.Cost.MTD.FoodCostPct, 1e-9)
	assert.InDelta(t, 230, got.Actual.Profit.MTD.GrossProfit, 1e-9)

	// Actual year-to-date figures.
	assert.InDelta(t, 285, got.Actual.Revenue.YTD.FoodRevenue, 1e-9)
	assert.InDelta(t, 210, got.Actual.Revenue.YTD.BeverageRevenue, 1e-9)
	assert.InDelta(t, 165, got.Actual.Cost.YTD.TotalCost, 1e-9)
	assert.InDelta(t, 330, got.Actual.Profit.YTD.GrossProfit, 1e-9)

	// Budgeted figures come from budget documents, not sales.
	assert.InDelta(t, 250, got.Budgeted.Revenue.MTD.FoodRevenue, 1e-9)
	assert.InDelta(t, 450, got.Budgeted.Revenue.YTD.FoodRevenue, 1e-9)
	require.NotNil(t, got.Budgeted.Cost.MTD.FoodCostPct)
	assert.InDelta(t, 32, *got.Budgeted.Cost.MTD.FoodCostPct, 1e-9)

	// Prior year has only March 2024 food sales; the beverage percentage
	// cannot be computed against zero revenue.
	assert.InDelta(t, 30, got.PriorYear.Revenue.MTD.FoodRevenue, 1e-9)
	assert.InDelta(t, 0, got.PriorYear.Revenue.MTD.BeverageRevenue, 1e-9)
	assert.Nil(t, got.PriorYear.Cost.MTD.BeverageCostPct)
}

func TestBuildStatementRows(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	metrics, err := svc.StatementPageMetrics(context.Background(), 3, 2025)
	require.NoError(t, err)

	rows := BuildStatementRows(metrics)
	require.Len(t, rows, 12)

	wantLineItems := []string{
		SectionRevenues, "Food", "Beverage", "Total",
		SectionCosts, "Food", "Beverage", "Total",
		SectionCOGSPct, "Food", "Beverage",
		SectionGrossProfit,
	}
	for i, want := range wantLineItems {
		assert.Equal(t, want, rows[i].LineItem, "row %d", i)
	}

	// Section headers carry no values.
	for _, i := range []int{0, 4, 8} {
		assert.Nil(t, rows[i].MTDActual, "row %d", i)
		assert.Nil(t, rows[i].MTDPctBudget, "row %d", i)
		assert.Nil(t, rows[i].YTDPctPY, "row %d", i)
	}

	// Revenue Food row: percent-of columns are fractions of 1.
	food := rows[1]
	require.NotNil(t, food.MTDActual)
	assert.InDelta(t, 225, *food.MTDActual, 1e-9)
	require.NotNil(t, food.MTDBudget)
	assert.InDelta(t, 250, *food.MTDBudget, 1e-9)
	require.NotNil(t, food.MTDPctBudget)
	assert.InDelta(t, 0.9, *food.MTDPctBudget, 1e-9)
	require.NotNil(t, food.MTDPriorYear)
	assert.InDelta(t, 30, *food.MTDPriorYear, 1e-9)
	require.NotNil(t, food.MTDPctPY)
	assert.InDelta(t, 7.5, *food.MTDPctPY, 1e-9)
	require.NotNil(t, food.YTDPctBudget)
	assert.InDelta(t, 0.63, *food.YTDPctBudget, 1e-9)

	// Prior-year beverage revenue is zero, so the percent-of-prior-year
	// column on the beverage revenue row is nil.
	beverage := rows[2]
	require.NotNil(t, beverage.MTDActual)
	assert.InDelta(t, 120, *beverage.MTDActual, 1e-9)
	assert.Nil(t, beverage.MTDPctPY)

	// The gross profit header doubles as a data row.
	profit := rows[11]
	require.NotNil(t, profit.MTDActual)
	assert.InDelta(t, 230, *profit.MTDActual, 1e-9)
	require.NotNil(t, profit.MTDBudget)
	assert.InDelta(t, 270, *profit.MTDBudget, 1e-9)
}
