// Package seeder populates the store with two years of plausible demo data:
// a fixed menu, randomized daily restaurant sales, zero to three events per
// open day, and budgets derived from the seeded actuals with a small
// variance.
package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harborview/venue-metrics/internal/domain/models"
	"github.com/harborview/venue-metrics/internal/domain/repository"
)

const (
	minEventsPerDay = 0
	maxEventsPerDay = 3

	minEventFoodSales = 750
	maxEventFoodSales = 3100
	minEventBevSales  = 200
	maxEventBevSales  = 1500

	minFoodCostPct = 0.28
	maxFoodCostPct = 0.41
	minBevCostPct  = 0.15
	maxBevCostPct  = 0.25

	maxFoodQtySold = 15
	maxBevQtySold  = 25

	minSalesVariance = 0.9
	maxSalesVariance = 1.1
	minCostVariance  = 0.97
	maxCostVariance  = 1.03
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Carlos", "Maria",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Wilson",
	"Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Nguyen", "Kim",
}

// Seeder writes demo data through the domain repositories.
type Seeder struct {
	menuItems   repository.MenuItemRepository
	restaurants repository.RestaurantRepository
	events      repository.EventRepository
	budgets     repository.BudgetRepository
	rng         *rand.Rand
	logger      *zap.Logger
}

// New builds a seeder. The seed fixes the random stream so repeated runs
// produce the same data set.
func New(menuItems repository.MenuItemRepository, restaurants repository.RestaurantRepository, events repository.EventRepository, budgets repository.BudgetRepository, seed int64, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		menuItems:   menuItems,
		restaurants: restaurants,
		events:      events,
		budgets:     budgets,
		rng:         rand.New(rand.NewSource(seed)),
		logger:      logger.Named("seeder"),
	}
}

// Run seeds every collection for the [start, end] date range, skipping the
// given closed days. Budgets are derived last so they track the seeded
// actuals.
func (s *Seeder) Run(ctx context.Context, start, end time.Time, closed map[string]bool) error {
	items, err := s.SeedMenuItems(ctx)
	if err != nil {
		return fmt.Errorf("seed menu items: %w", err)
	}
	s.logger.Info("menu items seeded", zap.Int("count", len(items)))

	sales, err := s.SeedRestaurantSales(ctx, items, start, end, closed)
	if err != nil {
		return fmt.Errorf("seed restaurant sales: %w", err)
	}
	s.logger.Info("restaurant sales seeded", zap.Int("count", sales))

	events, err := s.SeedEvents(ctx, start, end, closed)
	if err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	s.logger.Info("events seeded", zap.Int("count", events))

	budgets, err := s.SeedBudgets(ctx, start, end)
	if err != nil {
		return fmt.Errorf("seed budgets: %w", err)
	}
	s.logger.Info("budgets seeded", zap.Int("count", budgets))

	return nil
}

// SeedMenuItems inserts the fixed menu, skipping names already present.
func (s *Seeder) SeedMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	existing, err := s.menuItems.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, item := range existing {
		known[item.Name] = true
	}

	var missing []models.MenuItem
	for _, item := range menuCatalog() {
		if !known[item.Name] {
			item.ID = primitive.NewObjectID()
			missing = append(missing, item)
		}
	}
	if len(missing) > 0 {
		if err := s.menuItems.InsertMenuItems(ctx, missing); err != nil {
			return nil, err
		}
	}

	return s.menuItems.ListMenuItems(ctx)
}

// SeedRestaurantSales creates one sale per menu item per open day with a
// random quantity; a zero quantity means the item did not sell that day.
func (s *Seeder) SeedRestaurantSales(ctx context.Context, items []models.MenuItem, start, end time.Time, closed map[string]bool) (int, error) {
	total := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if closed[day.Format("2006-01-02")] {
			continue
		}

		var daily []models.RestaurantSale
		for i := range items {
			maxQty := maxFoodQtySold
			if items[i].Category == models.CategoryBeverage {
				maxQty = maxBevQtySold
			}
			quantity := s.rng.Intn(maxQty + 1)
			if quantity == 0 {
				continue
			}

			sale, err := models.NewRestaurantSale(day, &items[i], quantity)
			if err != nil {
				return total, err
			}
			daily = append(daily, *sale)
		}

		if len(daily) > 0 {
			if err := s.restaurants.InsertSales(ctx, daily); err != nil {
				return total, err
			}
			total += len(daily)
		}
	}
	return total, nil
}

// SeedEvents creates zero to three events per open day with randomized
// clients, types, sales, and costs.
func (s *Seeder) SeedEvents(ctx context.Context, start, end time.Time, closed map[string]bool) (int, error) {
	total := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if closed[day.Format("2006-01-02")] {
			continue
		}

		count := minEventsPerDay + s.rng.Intn(maxEventsPerDay-minEventsPerDay+1)
		if count == 0 {
			continue
		}

		daily := make([]models.Event, 0, count)
		for i := 0; i < count; i++ {
			event, err := s.makeEvent(day)
			if err != nil {
				return total, err
			}
			daily = append(daily, *event)
		}

		if err := s.events.InsertEvents(ctx, daily); err != nil {
			return total, err
		}
		total += len(daily)
	}
	return total, nil
}

func (s *Seeder) makeEvent(day time.Time) (*models.Event, error) {
	clientName := fmt.Sprintf("%s %s",
		firstNames[s.rng.Intn(len(firstNames))],
		lastNames[s.rng.Intn(len(lastNames))])
	eventType := models.EventTypes[s.rng.Intn(len(models.EventTypes))]

	foodSales := float64(minEventFoodSales + s.rng.Intn(maxEventFoodSales-minEventFoodSales+1))
	bevSales := float64(minEventBevSales + s.rng.Intn(maxEventBevSales-minEventBevSales+1))
	foodCost := foodSales * s.between(minFoodCostPct, maxFoodCostPct)
	bevCost := bevSales * s.between(minBevCostPct, maxBevCostPct)

	return models.NewEvent(clientName, day, eventType, foodSales, bevSales, foodCost, bevCost)
}

// SeedBudgets derives one budget per month from the seeded actuals, nudging
// sales and costs by a small variance so comparisons are interesting.
func (s *Seeder) SeedBudgets(ctx context.Context, start, end time.Time) (int, error) {
	total := 0
	for year := start.Year(); year <= end.Year(); year++ {
		for month := 1; month <= 12; month++ {
			monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			if monthStart.Before(time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)) || monthStart.After(end) {
				continue
			}
			monthEnd := monthStart.AddDate(0, 1, 0)

			budget, err := s.makeBudget(ctx, month, year, monthStart, monthEnd)
			if err != nil {
				return total, err
			}
			if err := s.budgets.Upsert(ctx, budget); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

func (s *Seeder) makeBudget(ctx context.Context, month, year int, start, end time.Time) (*models.Budget, error) {
	salesByCategory, err := s.restaurants.SalesByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}
	costsByCategory, err := s.restaurants.CostsByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}
	eventSales, err := s.events.TotalSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	eventCosts, err := s.events.TotalCosts(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var foodSales, bevSales, foodCost, bevCost float64
	for _, c := range salesByCategory {
		switch c.Category {
		case models.CategoryFood:
			foodSales = c.Total
		case models.CategoryBeverage:
			bevSales = c.Total
		}
	}
	for _, c := range costsByCategory {
		switch c.Category {
		case models.CategoryFood:
			foodCost = c.Total
		case models.CategoryBeverage:
			bevCost = c.Total
		}
	}

	return models.NewBudget(month, year,
		s.applyVariance(foodSales, minSalesVariance, maxSalesVariance),
		s.applyVariance(bevSales, minSalesVariance, maxSalesVariance),
		s.applyVariance(eventSales, minSalesVariance, maxSalesVariance),
		s.applyVariance(foodCost, minCostVariance, maxCostVariance),
		s.applyVariance(bevCost, minCostVariance, maxCostVariance),
		s.applyVariance(eventCosts, minCostVariance, maxCostVariance))
}

func (s *Seeder) applyVariance(base, minPct, maxPct float64) float64 {
	return base * s.between(minPct, maxPct)
}

func (s *Seeder) between(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

func menuCatalog() []models.MenuItem {
	type entry struct {
		name     string
		category string
		price    float64
		cost     float64
	}
	entries := []entry{
		{"Buffalo Wings", models.CategoryFood, 13, 5.50},
		{"Loaded Nachos", models.CategoryFood, 12, 3.00},
		{"Quesadilla", models.CategoryFood, 12, 3.25},
		{"Chicken Tenders", models.CategoryFood, 11, 3.85},
		{"French Fries", models.CategoryFood, 4, 1.40},
		{"Tater Tots", models.CategoryFood, 4, 1.75},
		{"Pecan Bleu Salad", models.CategoryFood, 14, 5.25},
		{"BLT Salad", models.CategoryFood, 15, 5.30},
		{"Taco Salad", models.CategoryFood, 14, 3.50},
		{"Pub Burger", models.CategoryFood, 15, 5.40},
		{"Patty Melt", models.CategoryFood, 14, 4.65},
		{"Fajita Burger", models.CategoryFood, 15, 4.95},
		{"Chicken Sandwich", models.CategoryFood, 13, 4.40},
		{"Chicken Panini", models.CategoryFood, 13, 4.25},
		{"Steak Sandwich", models.CategoryFood, 15, 5.35},
		{"Chicken Caesar Wrap", models.CategoryFood, 13, 4.15},
		{"BBQ Ribs", models.CategoryFood, 16, 5.92},
		{"Pasta Primavera", models.CategoryFood, 13, 3.12},
		{"Cajun Roasted Chicken", models.CategoryFood, 14, 3.76},
		{"Blackened Salmon", models.CategoryFood, 17, 5.25},
		{"Coke", models.CategoryBeverage, 3, 0.50},
		{"Diet Coke", models.CategoryBeverage, 3, 0.50},
		{"Sprite", models.CategoryBeverage, 3, 0.50},
		{"Iced Tea", models.CategoryBeverage, 3, 0.40},
		{"Hot Tea", models.CategoryBeverage, 2.50, 0.40},
		{"Coffee", models.CategoryBeverage, 3, 0.55},
		{"Bottled Water", models.CategoryBeverage, 2, 0.15},
		{"Domestic Beer", models.CategoryBeverage, 6, 2.00},
		{"Import Beer", models.CategoryBeverage, 7, 2.50},
		{"House Red Wine", models.CategoryBeverage, 8, 3.00},
	}

	items := make([]models.MenuItem, 0, len(entries))
	for _, e := range entries {
		item, err := models.NewMenuItem(e.name, e.category, e.price, e.cost)
		if err != nil {
			// catalog entries are static and always valid
			panic(err)
		}
		items = append(items, *item)
	}
	return items
}
