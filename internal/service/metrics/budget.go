package metrics

import (
	"context"
	"fmt"

	"github.com/harborview/venue-metrics/internal/domain/models"
	"github.com/harborview/venue-metrics/internal/domain/repository"
)

// BudgetRow is one account line of the annual budget table: a value per
// calendar month plus the year total. Values index months 1 through 12;
// missing months read as zero. Section rows carry only the account label.
type BudgetRow struct {
	RowID     string             `json:"row_id"`
	Account   string             `json:"account"`
	IsSection bool               `json:"is_section,omitempty"`
	Values    map[string]float64 `json:"values,omitempty"`
	Total     float64            `json:"total,omitempty"`
	Formatted map[string]string  `json:"formatted,omitempty"`
}

// AnnualBudgetData loads the year's budgets and flattens them into the budget
// table's row order: revenues, costs, cost percentages, gross profit.
func (s *Service) AnnualBudgetData(ctx context.Context, year int) ([]BudgetRow, error) {
	budgets, err := s.budgets.AnnualBudgets(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("annual budgets: %w", err)
	}

	byMonth := make(map[int]*models.Budget, len(budgets))
	for i := range budgets {
		byMonth[budgets[i].Month] = &budgets[i]
	}

	field := func(b *models.Budget, f repository.BudgetField) float64 {
		if b == nil {
			return 0
		}
		switch f {
		case repository.BudgetFoodSales:
			return b.FoodSales
		case repository.BudgetBevSales:
			return b.BevSales
		case repository.BudgetEventSales:
			return b.EventSales
		case repository.BudgetTotalSales:
			return b.TotalSales
		case repository.BudgetFoodCost:
			return b.FoodCost
		case repository.BudgetBevCost:
			return b.BevCost
		case repository.BudgetEventCost:
			return b.EventCost
		case repository.BudgetTotalCost:
			return b.TotalCost
		case repository.BudgetGrossProfit:
			return b.GrossProfit
		}
		return 0
	}

	row := func(rowID, account string, f repository.BudgetField) BudgetRow {
		values := make(map[string]float64, 12)
		var total float64
		for month := 1; month <= 12; month++ {
			v := field(byMonth[month], f)
			values[fmt.Sprint(month)] = v
			total += v
		}
		return BudgetRow{RowID: rowID, Account: account, Values: values, Total: total}
	}

	percentRow := func(rowID, account string, costField, salesField repository.BudgetField) BudgetRow {
		formatted := make(map[string]string, 12)
		var totalSales, totalCost float64
		for month := 1; month <= 12; month++ {
			sales := field(byMonth[month], salesField)
			cost := field(byMonth[month], costField)
			formatted[fmt.Sprint(month)] = FormatMetric(Percentage(Float(cost), Float(sales), 2, false), "%", 2)
			totalSales += sales
			totalCost += cost
		}
		formatted["total"] = FormatMetric(Percentage(Float(totalCost), Float(totalSales), 2, false), "%", 2)
		return BudgetRow{
			RowID:     rowID,
			Account:   account,
			Formatted: formatted,
		}
	}

	sectionRow := func(rowID, account string) BudgetRow {
		return BudgetRow{RowID: rowID, Account: account, IsSection: true}
	}

	rows := []BudgetRow{
		sectionRow("section_revenue", "Revenues"),
		row("food_sales", "Food", repository.BudgetFoodSales),
		row("bev_sales", "Beverage", repository.BudgetBevSales),
		row("event_sales", "Event", repository.BudgetEventSales),
		row("total_sales", "Total Revenues", repository.BudgetTotalSales),
		sectionRow("section_cost", "Cost of Sales"),
		row("food_cost", "Food", repository.BudgetFoodCost),
		row("bev_cost", "Beverage", repository.BudgetBevCost),
		row("event_cost", "Event", repository.BudgetEventCost),
		row("total_cost", "Total Cost", repository.BudgetTotalCost),
		sectionRow("section_cogs_pct", "COGS - %"),
		percentRow("food_cogs_pct", "Food", repository.BudgetFoodCost, repository.BudgetFoodSales),
		percentRow("bev_cogs_pct", "Beverage", repository.BudgetBevCost, repository.BudgetBevSales),
		percentRow("event_cogs_pct", "Event", repository.BudgetEventCost, repository.BudgetEventSales),
		row("gross_profit", "Gross Profit", repository.BudgetGrossProfit),
	}

	return rows, nil
}
