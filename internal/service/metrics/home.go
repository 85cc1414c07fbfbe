package metrics

import (
	"context"
	"fmt"

	"github.com/harborview/venue-metrics/internal/domain/repository"
	"github.com/harborview/venue-metrics/internal/service/periods"
)

// CombinedMonthlyRevenue is the home page's monthly revenue view across both
// departments. Variance is signed: positive means ahead of budget.
type CombinedMonthlyRevenue struct {
	Month             int     `json:"month"`
	Year              int     `json:"year"`
	BudgetedRevenue   float64 `json:"budgeted_revenue"`
	RestaurantRevenue float64 `json:"restaurant_revenue"`
	EventsRevenue     float64 `json:"events_revenue"`
	TotalRevenue      float64 `json:"total_revenue"`
	Variance          float64 `json:"variance"`
}

// CombinedYTDRevenue is the home page's year-to-date revenue view, retaining
// the per-department budget breakdown for COGS computations.
type CombinedYTDRevenue struct {
	Month                     int     `json:"month"`
	Year                      int     `json:"year"`
	BudgetedRevenue           float64 `json:"budgeted_revenue"`
	RestaurantRevenue         float64 `json:"restaurant_revenue"`
	BudgetedRestaurantRevenue float64 `json:"budgeted_restaurant_revenue"`
	EventRevenue              float64 `json:"event_revenue"`
	BudgetedEventRevenue      float64 `json:"budgeted_event_revenue"`
	TotalRevenue              float64 `json:"total_revenue"`
	Variance                  float64 `json:"variance"`
}

// CombinedYTDCosts is the home page's year-to-date cost view.
type CombinedYTDCosts struct {
	Month                   int     `json:"month"`
	Year                    int     `json:"year"`
	RestaurantCosts         float64 `json:"restaurant_costs"`
	EventCosts              float64 `json:"event_costs"`
	ActualTotalCosts        float64 `json:"actual_total_costs"`
	BudgetedRestaurantCosts float64 `json:"budgeted_restaurant_costs"`
	BudgetedEventCosts      float64 `json:"budgeted_event_costs"`
	BudgetedTotalCosts      float64 `json:"budgeted_total_costs"`
}

// COGSPct carries cost-of-goods percentages per department, actual and
// budgeted computed independently. Fields stay nil when the matching revenue
// is zero.
type COGSPct struct {
	RestaurantActualCOGSPct   *float64 `json:"restaurant_actual_cogs_pct"`
	RestaurantBudgetedCOGSPct *float64 `json:"restaurant_budgeted_cogs_pct"`
	EventActualCOGSPct        *float64 `json:"event_actual_cogs_pct"`
	EventBudgetedCOGSPct      *float64 `json:"event_budgeted_cogs_pct"`
}

// GrossProfitComparison holds actual and budgeted gross profit side by side.
type GrossProfitComparison struct {
	Actual   float64 `json:"actual"`
	Budgeted float64 `json:"budgeted"`
}

// NamedTotal is a top performer resolved to its display name.
type NamedTotal struct {
	Name       string  `json:"name"`
	TotalSales float64 `json:"total_sales"`
}

// HomeMetrics bundles everything the home page renders.
type HomeMetrics struct {
	MonthlyRevenueMetrics *CombinedMonthlyRevenue `json:"monthly_revenue_metrics"`
	YTDRevenueMetrics     *CombinedYTDRevenue     `json:"ytd_revenue_metrics"`
	YTDCostMetrics        *CombinedYTDCosts       `json:"ytd_cost_metrics"`
	COGSPctMetrics        *COGSPct                `json:"cogs_pct_metrics"`
	GrossProfitMetrics    *GrossProfitComparison  `json:"gross_profit_metrics"`
	TopMenuItem           *NamedTotal             `json:"top_menu_item"`
	TopEvent              *NamedTotal             `json:"top_event"`
}

// CombinedMonthlyRevenueMetrics assembles the month's combined revenue view.
func (s *Service) CombinedMonthlyRevenueMetrics(ctx context.Context, month, year int) (*CombinedMonthlyRevenue, error) {
	start, end := periods.MonthlyRange(month, year)

	budgeted, err := s.budgets.MonthlyTotal(ctx, repository.BudgetTotalSales, month, year)
	if err != nil {
		return nil, fmt.Errorf("monthly budgeted revenue: %w", err)
	}
	restaurant, err := s.restaurants.TotalSales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly restaurant revenue: %w", err)
	}
	events, err := s.events.TotalSales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly event revenue: %w", err)
	}

	total := Total(Float(restaurant), Float(events))

	return &CombinedMonthlyRevenue{
		Month:             month,
		Year:              year,
		BudgetedRevenue:   budgeted,
		RestaurantRevenue: restaurant,
		EventsRevenue:     events,
		TotalRevenue:      total,
		Variance:          total - budgeted,
	}, nil
}

// CombinedYTDRevenueMetrics assembles the year-to-date combined revenue view.
func (s *Service) CombinedYTDRevenueMetrics(ctx context.Context, month, year int) (*CombinedYTDRevenue, error) {
	start, end := periods.YTDRange(month, year)

	budgeted, err := s.budgets.YTDTotal(ctx, repository.BudgetTotalSales, month, year)
	if err != nil {
		return nil, fmt.Errorf("ytd budgeted revenue: %w", err)
	}
	restaurant, err := s.restaurants.TotalSales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("ytd restaurant revenue: %w", err)
	}
	budgetedRestaurant, err := s.ytdBudgetedRestaurant(ctx, repository.BudgetFoodSales, repository.BudgetBevSales, month, year)
	if err != nil {
		return nil, fmt.Errorf("ytd budgeted restaurant revenue: %w", err)
	}
	events, err := s.events.TotalSales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("ytd event revenue: %w", err)
	}
	budgetedEvents, err := s.budgets.YTDTotal(ctx, repository.BudgetEventSales, month, year)
	if err != nil {
		return nil, fmt.Errorf("ytd budgeted event revenue: %w", err)
	}

	total := Total(Float(restaurant), Float(events))

	return &CombinedYTDRevenue{
		Month:                     month,
		Year:                      year,
		BudgetedRevenue:           budgeted,
		RestaurantRevenue:         restaurant,
		BudgetedRestaurantRevenue: budgetedRestaurant,
		EventRevenue:              events,
		BudgetedEventRevenue:      budgetedEvents,
		TotalRevenue:              total,
		Variance:                  total - budgeted,
	}, nil
}

// CombinedYTDCostMetrics assembles the year-to-date combined cost view.
func (s *Service) CombinedYTDCostMetrics(ctx context.Context, month, year int) (*CombinedYTDCosts, error) {
	start, end := periods.YTDRange(month, year)

	restaurant, err := s.restaurants.TotalCosts(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("ytd restaurant costs: %w", err)
	}
	events, err := s.events.TotalCosts(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("ytd event costs: %w", err)
	}
	budgetedRestaurant, err := s.ytdBudgetedRestaurant(ctx, repository.BudgetFoodCost, repository.BudgetBevCost, month, year)
	if err != nil {
		return nil, fmt.Errorf("ytd budgeted restaurant costs: %w", err)
	}
	budgetedEvents, err := s.budgets.YTDTotal(ctx, repository.BudgetEventCost, month, year)
	if err != nil {
		return nil, fmt.Errorf("ytd budgeted event costs: %w", err)
	}

	return &CombinedYTDCosts{
		Month:                   month,
		Year:                    year,
		RestaurantCosts:         restaurant,
		EventCosts:              events,
		ActualTotalCosts:        Total(Float(restaurant), Float(events)),
		BudgetedRestaurantCosts: budgetedRestaurant,
		BudgetedEventCosts:      budgetedEvents,
		BudgetedTotalCosts:      Total(Float(budgetedRestaurant), Float(budgetedEvents)),
	}, nil
}

// ytdBudgetedRestaurant sums the food and beverage components of a restaurant
// budget figure year to date.
func (s *Service) ytdBudgetedRestaurant(ctx context.Context, foodField, bevField repository.BudgetField, month, year int) (float64, error) {
	food, err := s.budgets.YTDTotal(ctx, foodField, month, year)
	if err != nil {
		return 0, err
	}
	bev, err := s.budgets.YTDTotal(ctx, bevField, month, year)
	if err != nil {
		return 0, err
	}
	return food + bev, nil
}

// COGSPctMetrics derives cost-of-goods percentages from assembled revenue and
// cost views. Each percentage degrades to nil when its revenue is zero.
func COGSPctMetrics(revenue *CombinedYTDRevenue, costs *CombinedYTDCosts) *COGSPct {
	return &COGSPct{
		RestaurantActualCOGSPct:   Percentage(Float(costs.RestaurantCosts), Float(revenue.RestaurantRevenue), 2, false),
		RestaurantBudgetedCOGSPct: Percentage(Float(costs.BudgetedRestaurantCosts), Float(revenue.BudgetedRestaurantRevenue), 2, false),
		EventActualCOGSPct:        Percentage(Float(costs.EventCosts), Float(revenue.EventRevenue), 2, false),
		EventBudgetedCOGSPct:      Percentage(Float(costs.BudgetedEventCosts), Float(revenue.BudgetedEventRevenue), 2, false),
	}
}

// GrossProfitMetrics computes actual and budgeted gross profit independently.
func GrossProfitMetrics(actualRevenue, actualCosts, budgetedRevenue, budgetedCosts float64) *GrossProfitComparison {
	return &GrossProfitComparison{
		Actual:   GrossProfit(Float(actualRevenue), Float(actualCosts)),
		Budgeted: GrossProfit(Float(budgetedRevenue), Float(budgetedCosts)),
	}
}

// TopMenuItem returns the best selling menu item for the period, or nil when
// no sales fall in range.
func (s *Service) TopMenuItem(ctx context.Context, kind periods.Kind, month, year int) (*NamedTotal, error) {
	start, end := s.periods.Range(kind, month, year)

	items, err := s.restaurants.TopSellingItems(ctx, start, end, 1)
	if err != nil {
		return nil, fmt.Errorf("top menu item: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &NamedTotal{Name: items[0].Name, TotalSales: items[0].TotalSales}, nil
}

// TopEvent returns the highest grossing event for the period, or nil when no
// events fall in range.
func (s *Service) TopEvent(ctx context.Context, kind periods.Kind, month, year int) (*NamedTotal, error) {
	start, end := s.periods.Range(kind, month, year)

	events, err := s.events.TopEvents(ctx, start, end, 1)
	if err != nil {
		return nil, fmt.Errorf("top event: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &NamedTotal{Name: events[0].DisplayName, TotalSales: events[0].TotalSales}, nil
}

// HomePageMetrics assembles the full home page payload for (month, year).
func (s *Service) HomePageMetrics(ctx context.Context, month, year int) (*HomeMetrics, error) {
	monthlyRevenue, err := s.CombinedMonthlyRevenueMetrics(ctx, month, year)
	if err != nil {
		return nil, err
	}
	ytdRevenue, err := s.CombinedYTDRevenueMetrics(ctx, month, year)
	if err != nil {
		return nil, err
	}
	ytdCosts, err := s.CombinedYTDCostMetrics(ctx, month, year)
	if err != nil {
		return nil, err
	}
	topItem, err := s.TopMenuItem(ctx, periods.Monthly, month, year)
	if err != nil {
		return nil, err
	}
	topEvent, err := s.TopEvent(ctx, periods.Monthly, month, year)
	if err != nil {
		return nil, err
	}

	return &HomeMetrics{
		MonthlyRevenueMetrics: monthlyRevenue,
		YTDRevenueMetrics:     ytdRevenue,
		YTDCostMetrics:        ytdCosts,
		COGSPctMetrics:        COGSPctMetrics(ytdRevenue, ytdCosts),
		GrossProfitMetrics:    GrossProfitMetrics(ytdRevenue.TotalRevenue, ytdCosts.ActualTotalCosts, ytdRevenue.BudgetedRevenue, ytdCosts.BudgetedTotalCosts),
		TopMenuItem:           topItem,
		TopEvent:              topEvent,
	}, nil
}
