package metrics

import (
	"context"
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harborview/venue-metrics/internal/domain/models"
	"github.com/harborview/venue-metrics/internal/domain/repository"
)

// In-memory repository fakes mirroring the aggregation semantics of the
// mongodb package: half-open date intervals, absent categories omitted, and
// zero totals for empty ranges.

type fakeRestaurantRepo struct {
	sales []models.RestaurantSale
	names map[primitive.ObjectID]string
}

func (f *fakeRestaurantRepo) inRange(start, end time.Time) []models.RestaurantSale {
	var out []models.RestaurantSale
	for _, s := range f.sales {
		if !s.SaleDate.Before(start) && s.SaleDate.Before(end) {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeRestaurantRepo) TotalSales(_ context.Context, start, end time.Time) (float64, error) {
	var total float64
	for _, s := range f.inRange(start, end) {
		total += s.TotalSales
	}
	return total, nil
}

func (f *fakeRestaurantRepo) TotalCosts(_ context.Context, start, end time.Time) (float64, error) {
	var total float64
	for _, s := range f.inRange(start, end) {
		total += s.TotalCost
	}
	return total, nil
}

func (f *fakeRestaurantRepo) SalesByCategory(_ context.Context, start, end time.Time) ([]repository.CategoryTotal, error) {
	totals := map[string]float64{}
	for _, s := range f.inRange(start, end) {
		totals[s.Category] += s.TotalSales
	}
	return categorySlice(totals), nil
}

func (f *fakeRestaurantRepo) CostsByCategory(_ context.Context, start, end time.Time) ([]repository.CategoryTotal, error) {
	totals := map[string]float64{}
	for _, s := range f.inRange(start, end) {
		totals[s.Category] += s.TotalCost
	}
	return categorySlice(totals), nil
}

func (f *fakeRestaurantRepo) TopSellingItems(_ context.Context, start, end time.Time, limit int) ([]repository.ItemSales, error) {
	totals := map[primitive.ObjectID]float64{}
	for _, s := range f.inRange(start, end) {
		totals[s.ItemID] += s.TotalSales
	}

	items := make([]repository.ItemSales, 0, len(totals))
	for id, total := range totals {
		items = append(items, repository.ItemSales{Name: f.names[id], TotalSales: total})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].TotalSales > items[j].TotalSales })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeRestaurantRepo) ItemSalesTrends(_ context.Context, currentStart, currentEnd, previousStart, previousEnd time.Time, limit int, ascending bool) ([]repository.ItemTrend, error) {
	current := map[primitive.ObjectID]float64{}
	for _, s := range f.inRange(currentStart, currentEnd) {
		current[s.ItemID] += s.TotalSales
	}
	previous := map[primitive.ObjectID]float64{}
	for _, s := range f.inRange(previousStart, previousEnd) {
		previous[s.ItemID] += s.TotalSales
	}

	trends := make([]repository.ItemTrend, 0, len(current))
	for id, cur := range current {
		prev := previous[id]
		trend := repository.ItemTrend{
			Name:          f.names[id],
			CurrentTotal:  cur,
			PreviousTotal: prev,
			Difference:    cur - prev,
		}
		if prev != 0 {
			pct := math.Round((cur-prev)/prev*100*10) / 10
			trend.PercentChange = &pct
		}
		trends = append(trends, trend)
	}
	sort.Slice(trends, func(i, j int) bool {
		if ascending {
			return trends[i].Difference < trends[j].Difference
		}
		return trends[i].Difference > trends[j].Difference
	})
	if len(trends) > limit {
		trends = trends[:limit]
	}
	return trends, nil
}

func (f *fakeRestaurantRepo) AverageSalesByDay(_ context.Context, start, end time.Time) ([]repository.DayAverage, error) {
	dayTotals := map[time.Time]float64{}
	for _, s := range f.inRange(start, end) {
		day := s.SaleDate.Truncate(24 * time.Hour)
		dayTotals[day] += s.TotalSales
	}

	sums := map[int]float64{}
	counts := map[int]int{}
	for day, total := range dayTotals {
		dow := int(day.Weekday()) + 1
		sums[dow] += total
		counts[dow]++
	}

	averages := make([]repository.DayAverage, 0, len(sums))
	for dow, sum := range sums {
		averages = append(averages, repository.DayAverage{DayOfWeek: dow, AverageSales: sum / float64(counts[dow])})
	}
	sort.Slice(averages, func(i, j int) bool { return averages[i].DayOfWeek < averages[j].DayOfWeek })
	return averages, nil
}

func (f *fakeRestaurantRepo) InsertSales(_ context.Context, sales []models.RestaurantSale) error {
	f.sales = append(f.sales, sales...)
	return nil
}

type fakeEventRepo struct {
	events []models.Event
}

func (f *fakeEventRepo) inRange(start, end time.Time) []models.Event {
	var out []models.Event
	for _, e := range f.events {
		if !e.EventDate.Before(start) && e.EventDate.Before(end) {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeEventRepo) sum(start, end time.Time, pick func(models.Event) float64) (float64, error) {
	var total float64
	for _, e := range f.inRange(start, end) {
		total += pick(e)
	}
	return total, nil
}

func (f *fakeEventRepo) TotalSales(_ context.Context, start, end time.Time) (float64, error) {
	return f.sum(start, end, func(e models.Event) float64 { return e.TotalSales })
}

func (f *fakeEventRepo) TotalFoodSales(_ context.Context, start, end time.Time) (float64, error) {
	return f.sum(start, end, func(e models.Event) float64 { return e.FoodSales })
}

func (f *fakeEventRepo) TotalBevSales(_ context.Context, start, end time.Time) (float64, error) {
	return f.sum(start, end, func(e models.Event) float64 { return e.BevSales })
}

func (f *fakeEventRepo) TotalCosts(_ context.Context, start, end time.Time) (float64, error) {
	return f.sum(start, end, func(e models.Event) float64 { return e.TotalCost })
}

func (f *fakeEventRepo) TotalFoodCosts(_ context.Context, start, end time.Time) (float64, error) {
	return f.sum(start, end, func(e models.Event) float64 { return e.FoodCost })
}

func (f *fakeEventRepo) TotalBevCosts(_ context.Context, start, end time.Time) (float64, error) {
	return f.sum(start, end, func(e models.Event) float64 { return e.BevCost })
}

func (f *fakeEventRepo) summaries(events []models.Event) []repository.EventSummary {
	out := make([]repository.EventSummary, 0, len(events))
	for _, e := range events {
		out = append(out, repository.EventSummary{
			ClientName:  e.ClientName,
			EventType:   e.EventType,
			EventDate:   e.EventDate,
			TotalSales:  e.TotalSales,
			DisplayName: e.DisplayName(),
		})
	}
	return out
}

func (f *fakeEventRepo) TopEvents(_ context.Context, start, end time.Time, limit int) ([]repository.EventSummary, error) {
	events := f.inRange(start, end)
	sort.Slice(events, func(i, j int) bool { return events[i].TotalSales > events[j].TotalSales })
	if len(events) > limit {
		events = events[:limit]
	}
	return f.summaries(events), nil
}

func (f *fakeEventRepo) EventsAboveThreshold(_ context.Context, start, end time.Time, threshold float64) ([]repository.EventSummary, error) {
	var above []models.Event
	for _, e := range f.inRange(start, end) {
		if e.TotalSales > threshold {
			above = append(above, e)
		}
	}
	sort.Slice(above, func(i, j int) bool { return above[i].TotalSales > above[j].TotalSales })
	return f.summaries(above), nil
}

func (f *fakeEventRepo) CountEvents(_ context.Context, start, end time.Time) (int64, error) {
	return int64(len(f.inRange(start, end))), nil
}

func (f *fakeEventRepo) AverageEventSales(_ context.Context, start, end time.Time) (float64, error) {
	events := f.inRange(start, end)
	if len(events) == 0 {
		return 0, nil
	}
	var total float64
	for _, e := range events {
		total += e.TotalSales
	}
	return math.Round(total/float64(len(events))*100) / 100, nil
}

func (f *fakeEventRepo) TypeBreakdown(_ context.Context, start, end time.Time) ([]repository.EventTypeCount, error) {
	counts := map[string]int64{}
	for _, e := range f.inRange(start, end) {
		counts[e.EventType]++
	}
	out := make([]repository.EventTypeCount, 0, len(counts))
	for eventType, count := range counts {
		out = append(out, repository.EventTypeCount{EventType: eventType, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

func (f *fakeEventRepo) InsertEvents(_ context.Context, events []models.Event) error {
	f.events = append(f.events, events...)
	return nil
}

type fakeBudgetRepo struct {
	budgets []models.Budget
}

func budgetField(b models.Budget, field repository.BudgetField) float64 {
	switch field {
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

func (f *fakeBudgetRepo) MonthlyTotal(_ context.Context, field repository.BudgetField, month, year int) (float64, error) {
	for _, b := range f.budgets {
		if b.Month == month && b.Year == year {
			return budgetField(b, field), nil
		}
	}
	return 0, nil
}

func (f *fakeBudgetRepo) YTDTotal(_ context.Context, field repository.BudgetField, month, year int) (float64, error) {
	var total float64
	for _, b := range f.budgets {
		if b.Year == year && b.Month <= month {
			total += budgetField(b, field)
		}
	}
	return total, nil
}

func (f *fakeBudgetRepo) AnnualBudgets(_ context.Context, year int) ([]models.Budget, error) {
	var out []models.Budget
	for _, b := range f.budgets {
		if b.Year == year {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (f *fakeBudgetRepo) Upsert(_ context.Context, budget *models.Budget) error {
	budget.Recompute()
	for i := range f.budgets {
		if f.budgets[i].Month == budget.Month && f.budgets[i].Year == budget.Year {
			f.budgets[i] = *budget
			return nil
		}
	}
	f.budgets = append(f.budgets, *budget)
	return nil
}

func categorySlice(totals map[string]float64) []repository.CategoryTotal {
	out := make([]repository.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, repository.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
