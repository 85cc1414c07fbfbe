package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/harborview/venue-metrics/internal/domain/repository"
	"github.com/harborview/venue-metrics/internal/service/periods"
)

// Statement table section headers, in display order.
const (
	SectionRevenues    = "Revenues"
	SectionCosts       = "Costs"
	SectionCOGSPct     = "COGS %"
	SectionGrossProfit = "Gross Profit"
)

// RevenueLine breaks one period's restaurant revenue down by category.
type RevenueLine struct {
	FoodRevenue     float64 `json:"food_revenue"`
	BeverageRevenue float64 `json:"beverage_revenue"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// CostLine breaks one period's restaurant costs down by category, with each
// category's cost as a percentage of the matching revenue. Percentages stay
// nil when the revenue is zero.
type CostLine struct {
	FoodCost        float64  `json:"food_cost"`
	BeverageCost    float64  `json:"beverage_cost"`
	TotalCost       float64  `json:"total_cost"`
	FoodCostPct     *float64 `json:"food_cost_pct"`
	BeverageCostPct *float64 `json:"beverage_cost_pct"`
}

// ProfitLine carries one period's gross profit.
type ProfitLine struct {
	GrossProfit float64 `json:"gross_profit"`
}

// RevenueMetrics pairs the month-to-date and year-to-date revenue lines.
type RevenueMetrics struct {
	MTD RevenueLine `json:"mtd"`
	YTD RevenueLine `json:"ytd"`
}

// CostMetrics pairs the month-to-date and year-to-date cost lines.
type CostMetrics struct {
	MTD CostLine `json:"mtd"`
	YTD CostLine `json:"ytd"`
}

// ProfitMetrics pairs the month-to-date and year-to-date profit lines.
type ProfitMetrics struct {
	MTD ProfitLine `json:"mtd"`
	YTD ProfitLine `json:"ytd"`
}

// PeriodStatement is one column group of the statement: revenue, cost, and
// profit for a single basis (actual, budgeted, or prior year).
type PeriodStatement struct {
	Revenue RevenueMetrics `json:"revenue"`
	Cost    CostMetrics    `json:"cost"`
	Profit  ProfitMetrics  `json:"profit"`
}

// StatementMetrics holds the three bases the statement page compares.
type StatementMetrics struct {
	Actual    PeriodStatement `json:"actual"`
	Budgeted  PeriodStatement `json:"budgeted"`
	PriorYear PeriodStatement `json:"prior_year"`
}

// StatementRow is one rendered table row. Section headers carry only the line
// item name; every value field stays nil. Percent-of columns are fractions of
// 1 so renderers can apply a percent format directly.
type StatementRow struct {
	LineItem     string   `json:"line_item"`
	MTDActual    *float64 `json:"mtd_actual"`
	MTDBudget    *float64 `json:"mtd_budget"`
	MTDPctBudget *float64 `json:"mtd_pct_budget"`
	MTDPriorYear *float64 `json:"mtd_py"`
	MTDPctPY     *float64 `json:"mtd_pct_py"`
	YTDActual    *float64 `json:"ytd_actual"`
	YTDBudget    *float64 `json:"ytd_budget"`
	YTDPctBudget *float64 `json:"ytd_pct_budget"`
	YTDPriorYear *float64 `json:"ytd_py"`
	YTDPctPY     *float64 `json:"ytd_pct_py"`
}

// StatementPageMetrics assembles the restaurant statement for (month, year):
// actual figures, the matching budget, and the same months a year earlier.
func (s *Service) StatementPageMetrics(ctx context.Context, month, year int) (*StatementMetrics, error) {
	actual, err := s.actualStatement(ctx, month, year)
	if err != nil {
		return nil, err
	}
	budgeted, err := s.budgetedStatement(ctx, month, year)
	if err != nil {
		return nil, err
	}
	priorYear, err := s.actualStatement(ctx, month, year-1)
	if err != nil {
		return nil, err
	}

	return &StatementMetrics{
		Actual:    *actual,
		Budgeted:  *budgeted,
		PriorYear: *priorYear,
	}, nil
}

func (s *Service) actualStatement(ctx context.Context, month, year int) (*PeriodStatement, error) {
	mtdStart, mtdEnd := periods.MonthlyRange(month, year)
	ytdStart, ytdEnd := periods.YTDRange(month, year)

	mtdRevenue, err := s.revenueLine(ctx, mtdStart, mtdEnd)
	if err != nil {
		return nil, fmt.Errorf("mtd revenue: %w", err)
	}
	ytdRevenue, err := s.revenueLine(ctx, ytdStart, ytdEnd)
	if err != nil {
		return nil, fmt.Errorf("ytd revenue: %w", err)
	}
	mtdCost, err := s.costLine(ctx, mtdStart, mtdEnd, mtdRevenue)
	if err != nil {
		return nil, fmt.Errorf("mtd costs: %w", err)
	}
	ytdCost, err := s.costLine(ctx, ytdStart, ytdEnd, ytdRevenue)
	if err != nil {
		return nil, fmt.Errorf("ytd costs: %w", err)
	}

	return &PeriodStatement{
		Revenue: RevenueMetrics{MTD: mtdRevenue, YTD: ytdRevenue},
		Cost:    CostMetrics{MTD: mtdCost, YTD: ytdCost},
		Profit:  profitMetrics(mtdRevenue, ytdRevenue, mtdCost, ytdCost),
	}, nil
}

func (s *Service) revenueLine(ctx context.Context, start, end time.Time) (RevenueLine, error) {
	categories, err := s.restaurants.SalesByCategory(ctx, start, end)
	if err != nil {
		return RevenueLine{}, err
	}

	food, beverage := splitCategories(categories)
	return RevenueLine{
		FoodRevenue:     food,
		BeverageRevenue: beverage,
		TotalRevenue:    Total(Float(food), Float(beverage)),
	}, nil
}

func (s *Service) costLine(ctx context.Context, start, end time.Time, revenue RevenueLine) (CostLine, error) {
	categories, err := s.restaurants.CostsByCategory(ctx, start, end)
	if err != nil {
		return CostLine{}, err
	}

	food, beverage := splitCategories(categories)
	return CostLine{
		FoodCost:        food,
		BeverageCost:    beverage,
		TotalCost:       Total(Float(food), Float(beverage)),
		FoodCostPct:     Percentage(Float(food), Float(revenue.FoodRevenue), 2, false),
		BeverageCostPct: Percentage(Float(beverage), Float(revenue.BeverageRevenue), 2, false),
	}, nil
}

func (s *Service) budgetedStatement(ctx context.Context, month, year int) (*PeriodStatement, error) {
	mtdRevenue, err := s.budgetedRevenueLine(ctx, month, year, s.budgets.MonthlyTotal)
	if err != nil {
		return nil, fmt.Errorf("mtd budgeted revenue: %w", err)
	}
	ytdRevenue, err := s.budgetedRevenueLine(ctx, month, year, s.budgets.YTDTotal)
	if err != nil {
		return nil, fmt.Errorf("ytd budgeted revenue: %w", err)
	}
	mtdCost, err := s.budgetedCostLine(ctx, month, year, mtdRevenue, s.budgets.MonthlyTotal)
	if err != nil {
		return nil, fmt.Errorf("mtd budgeted costs: %w", err)
	}
	ytdCost, err := s.budgetedCostLine(ctx, month, year, ytdRevenue, s.budgets.YTDTotal)
	if err != nil {
		return nil, fmt.Errorf("ytd budgeted costs: %w", err)
	}

	return &PeriodStatement{
		Revenue: RevenueMetrics{MTD: mtdRevenue, YTD: ytdRevenue},
		Cost:    CostMetrics{MTD: mtdCost, YTD: ytdCost},
		Profit:  profitMetrics(mtdRevenue, ytdRevenue, mtdCost, ytdCost),
	}, nil
}

type budgetLookup func(ctx context.Context, field repository.BudgetField, month, year int) (float64, error)

func (s *Service) budgetedRevenueLine(ctx context.Context, month, year int, lookup budgetLookup) (RevenueLine, error) {
	food, err := lookup(ctx, repository.BudgetFoodSales, month, year)
	if err != nil {
		return RevenueLine{}, err
	}
	beverage, err := lookup(ctx, repository.BudgetBevSales, month, year)
	if err != nil {
		return RevenueLine{}, err
	}
	return RevenueLine{
		FoodRevenue:     food,
		BeverageRevenue: beverage,
		TotalRevenue:    Total(Float(food), Float(beverage)),
	}, nil
}

func (s *Service) budgetedCostLine(ctx context.Context, month, year int, revenue RevenueLine, lookup budgetLookup) (CostLine, error) {
	food, err := lookup(ctx, repository.BudgetFoodCost, month, year)
	if err != nil {
		return CostLine{}, err
	}
	beverage, err := lookup(ctx, repository.BudgetBevCost, month, year)
	if err != nil {
		return CostLine{}, err
	}
	return CostLine{
		FoodCost:        food,
		BeverageCost:    beverage,
		TotalCost:       Total(Float(food), Float(beverage)),
		FoodCostPct:     Percentage(Float(food), Float(revenue.FoodRevenue), 2, false),
		BeverageCostPct: Percentage(Float(beverage), Float(revenue.BeverageRevenue), 2, false),
	}, nil
}

func profitMetrics(mtdRevenue, ytdRevenue RevenueLine, mtdCost, ytdCost CostLine) ProfitMetrics {
	return ProfitMetrics{
		MTD: ProfitLine{GrossProfit: GrossProfit(Float(mtdRevenue.TotalRevenue), Float(mtdCost.TotalCost))},
		YTD: ProfitLine{GrossProfit: GrossProfit(Float(ytdRevenue.TotalRevenue), Float(ytdCost.TotalCost))},
	}
}

func splitCategories(categories []repository.CategoryTotal) (food, beverage float64) {
	for _, category := range categories {
		switch category.Category {
		case "Food":
			food = category.Total
		case "Beverage":
			beverage = category.Total
		}
	}
	return food, beverage
}

// BuildStatementRows flattens assembled statement metrics into the table's
// row order: a nil header row opens each section, category rows follow, and
// the gross profit header doubles as its own data row.
func BuildStatementRows(m *StatementMetrics) []StatementRow {
	rows := make([]StatementRow, 0, 12)

	rows = append(rows, StatementRow{LineItem: SectionRevenues})
	rows = append(rows,
		dataRow("Food",
			m.Actual.Revenue.MTD.FoodRevenue, m.Budgeted.Revenue.MTD.FoodRevenue, m.PriorYear.Revenue.MTD.FoodRevenue,
			m.Actual.Revenue.YTD.FoodRevenue, m.Budgeted.Revenue.YTD.FoodRevenue, m.PriorYear.Revenue.YTD.FoodRevenue),
		dataRow("Beverage",
			m.Actual.Revenue.MTD.BeverageRevenue, m.Budgeted.Revenue.MTD.BeverageRevenue, m.PriorYear.Revenue.MTD.BeverageRevenue,
			m.Actual.Revenue.YTD.BeverageRevenue, m.Budgeted.Revenue.YTD.BeverageRevenue, m.PriorYear.Revenue.YTD.BeverageRevenue),
		dataRow("Total",
			m.Actual.Revenue.MTD.TotalRevenue, m.Budgeted.Revenue.MTD.TotalRevenue, m.PriorYear.Revenue.MTD.TotalRevenue,
			m.Actual.Revenue.YTD.TotalRevenue, m.Budgeted.Revenue.YTD.TotalRevenue, m.PriorYear.Revenue.YTD.TotalRevenue),
	)

	rows = append(rows, StatementRow{LineItem: SectionCosts})
	rows = append(rows,
		dataRow("Food",
			m.Actual.Cost.MTD.FoodCost, m.Budgeted.Cost.MTD.FoodCost, m.PriorYear.Cost.MTD.FoodCost,
			m.Actual.Cost.YTD.FoodCost, m.Budgeted.Cost.YTD.FoodCost, m.PriorYear.Cost.YTD.FoodCost),
		dataRow("Beverage",
			m.Actual.Cost.MTD.BeverageCost, m.Budgeted.Cost.MTD.BeverageCost, m.PriorYear.Cost.MTD.BeverageCost,
			m.Actual.Cost.YTD.BeverageCost, m.Budgeted.Cost.YTD.BeverageCost, m.PriorYear.Cost.YTD.BeverageCost),
		dataRow("Total",
			m.Actual.Cost.MTD.TotalCost, m.Budgeted.Cost.MTD.TotalCost, m.PriorYear.Cost.MTD.TotalCost,
			m.Actual.Cost.YTD.TotalCost, m.Budgeted.Cost.YTD.TotalCost, m.PriorYear.Cost.YTD.TotalCost),
	)

	rows = append(rows, StatementRow{LineItem: SectionCOGSPct})
	rows = append(rows,
		pctRow("Food",
			m.Actual.Cost.MTD.FoodCostPct, m.Budgeted.Cost.MTD.FoodCostPct, m.PriorYear.Cost.MTD.FoodCostPct,
			m.Actual.Cost.YTD.FoodCostPct, m.Budgeted.Cost.YTD.FoodCostPct, m.PriorYear.Cost.YTD.FoodCostPct),
		pctRow("Beverage",
			m.Actual.Cost.MTD.BeverageCostPct, m.Budgeted.Cost.MTD.BeverageCostPct, m.PriorYear.Cost.MTD.BeverageCostPct,
			m.Actual.Cost.YTD.BeverageCostPct, m.Budgeted.Cost.YTD.BeverageCostPct, m.PriorYear.Cost.YTD.BeverageCostPct),
	)

	rows = append(rows, dataRow(SectionGrossProfit,
		m.Actual.Profit.MTD.GrossProfit, m.Budgeted.Profit.MTD.GrossProfit, m.PriorYear.Profit.MTD.GrossProfit,
		m.Actual.Profit.YTD.GrossProfit, m.Budgeted.Profit.YTD.GrossProfit, m.PriorYear.Profit.YTD.GrossProfit))

	return rows
}

func dataRow(lineItem string, mtdActual, mtdBudget, mtdPY, ytdActual, ytdBudget, ytdPY float64) StatementRow {
	return pctRow(lineItem,
		Float(mtdActual), Float(mtdBudget), Float(mtdPY),
		Float(ytdActual), Float(ytdBudget), Float(ytdPY))
}

func pctRow(lineItem string, mtdActual, mtdBudget, mtdPY, ytdActual, ytdBudget, ytdPY *float64) StatementRow {
	return StatementRow{
		LineItem:     lineItem,
		MTDActual:    mtdActual,
		MTDBudget:    mtdBudget,
		MTDPctBudget: Percentage(mtdActual, mtdBudget, 2, true),
		MTDPriorYear: mtdPY,
		MTDPctPY:     Percentage(mtdActual, mtdPY, 2, true),
		YTDActual:    ytdActual,
		YTDBudget:    ytdBudget,
		YTDPctBudget: Percentage(ytdActual, ytdBudget, 2, true),
		YTDPriorYear: ytdPY,
		YTDPctPY:     Percentage(ytdActual, ytdPY, 2, true),
	}
}
