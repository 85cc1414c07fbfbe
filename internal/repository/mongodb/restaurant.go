package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harborview/venue-metrics/internal/domain/models"
	"github.com/harborview/venue-metrics/internal/domain/repository"
)

const saleDateField = "sale_date"

// RestaurantRepo is the restaurant-sales view of the store.
type RestaurantRepo struct {
	store *Store
}

// TotalSales sums restaurant sales within [start, end).
func (r *RestaurantRepo) TotalSales(ctx context.Context, start, end time.Time) (float64, error) {
	return r.store.sumField(ctx, restaurantSalesCollection, "total_sales", saleDateField, start, end, nil)
}

// TotalCosts sums restaurant costs within [start, end).
func (r *RestaurantRepo) TotalCosts(ctx context.Context, start, end time.Time) (float64, error) {
	return r.store.sumField(ctx, restaurantSalesCollection, "total_cost", saleDateField, start, end, nil)
}

// SalesByCategory sums sales per category observed in range.
func (r *RestaurantRepo) SalesByCategory(ctx context.Context, start, end time.Time) ([]repository.CategoryTotal, error) {
	totals, err := r.store.groupedSum(ctx, restaurantSalesCollection, "total_sales", "category", saleDateField, start, end)
	if err != nil {
		return nil, err
	}
	return categoryTotals(totals), nil
}

// CostsByCategory sums costs per category observed in range.
func (r *RestaurantRepo) CostsByCategory(ctx context.Context, start, end time.Time) ([]repository.CategoryTotal, error) {
	totals, err := r.store.groupedSum(ctx, restaurantSalesCollection, "total_cost", "category", saleDateField, start, end)
	if err != nil {
		return nil, err
	}
	return categoryTotals(totals), nil
}

func categoryTotals(totals map[string]float64) []repository.CategoryTotal {
	result := make([]repository.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		result = append(result, repository.CategoryTotal{Category: category, Total: total})
	}
	return result
}

// TopSellingItems groups sales by menu item, sorts by summed sales
// descending, truncates to limit, and resolves item names. Ties keep the
// storage's natural order.
func (r *RestaurantRepo) TopSellingItems(ctx context.Context, start, end time.Time, limit int) ([]repository.ItemSales, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			saleDateField: bson.M{"$gte": start, "$lt": end},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         "$item",
			"total_sales": bson.M{"$sum": "$total_sales"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"total_sales": -1}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         menuItemsCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "menu_item_details",
		}}},
		bson.D{{Key: "$unwind", Value: "$menu_item_details"}},
		bson.D{{Key: "$project", Value: bson.M{
			"name":        "$menu_item_details.name",
			"total_sales": 1,
		}}},
	}

	cursor, err := r.store.db.Collection(restaurantSalesCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top selling items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []repository.ItemSales
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode top selling items: %w", err)
	}
	return items, nil
}

// ItemSalesTrends compares per-item sales between the current period and the
// immediately preceding equal-length period. PercentChange stays nil when the
// previous total is zero; sorting is by difference, ascending for cold items
// and descending for hot.
func (r *RestaurantRepo) ItemSalesTrends(ctx context.Context, currentStart, currentEnd, previousStart, previousEnd time.Time, limit int, ascending bool) ([]repository.ItemTrend, error) {
	sortOrder := -1
	if ascending {
		sortOrder = 1
	}

	previousTotal := bson.M{"$ifNull": bson.A{
		bson.M{"$arrayElemAt": bson.A{"$previous_sales.previous_total", 0}},
		0,
	}}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			saleDateField: bson.M{"$gte": currentStart, "$lt": currentEnd},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           "$item",
			"current_total": bson.M{"$sum": "$total_sales"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": restaurantSalesCollection,
			"let":  bson.M{"item_id": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					saleDateField: bson.M{"$gte": previousStart, "$lt": previousEnd},
					"$expr":       bson.M{"$eq": bson.A{"$item", "$$item_id"}},
				}},
				bson.M{"$group": bson.M{
					"_id":            nil,
					"previous_total": bson.M{"$sum": "$total_sales"},
				}},
			},
			"as": "previous_sales",
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"current_total":  1,
			"previous_total": previousTotal,
			"difference":     bson.M{"$subtract": bson.A{"$current_total", previousTotal}},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"difference": sortOrder}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         menuItemsCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "menu_item_details",
		}}},
		bson.D{{Key: "$unwind", Value: "$menu_item_details"}},
		bson.D{{Key: "$project", Value: bson.M{
			"name":           "$menu_item_details.name",
			"current_total":  1,
			"previous_total": 1,
			"difference":     1,
			"percent_change": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$previous_total", 0}},
				nil,
				bson.M{"$round": bson.A{
					bson.M{"$multiply": bson.A{
						bson.M{"$divide": bson.A{"$difference", "$previous_total"}},
						100,
					}},
					1,
				}},
			}},
		}}},
	}

	cursor, err := r.store.db.Collection(restaurantSalesCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("item sales trends: %w", err)
	}
	defer cursor.Close(ctx)

	var trends []repository.ItemTrend
	if err := cursor.All(ctx, &trends); err != nil {
		return nil, fmt.Errorf("decode item sales trends: %w", err)
	}
	return trends, nil
}

// AverageSalesByDay sums sales per calendar day, tags each day with its
// weekday (1=Sunday through 7=Saturday), and averages across days sharing a
// weekday. Weekdays with no qualifying days are absent from the result.
func (r *RestaurantRepo) AverageSalesByDay(ctx context.Context, start, end time.Time) ([]repository.DayAverage, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			saleDateField: bson.M{"$gte": start, "$lt": end},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         "$" + saleDateField,
			"daily_total": bson.M{"$sum": "$total_sales"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"daily_total": 1,
			"day_of_week": bson.M{"$dayOfWeek": "$_id"},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           "$day_of_week",
			"average_sales": bson.M{"$avg": "$daily_total"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":           0,
			"day_of_week":   "$_id",
			"average_sales": 1,
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"day_of_week": 1}}},
	}

	cursor, err := r.store.db.Collection(restaurantSalesCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("average sales by day: %w", err)
	}
	defer cursor.Close(ctx)

	var averages []repository.DayAverage
	if err := cursor.All(ctx, &averages); err != nil {
		return nil, fmt.Errorf("decode average sales by day: %w", err)
	}
	return averages, nil
}

// InsertSales writes a batch of sale lines.
func (r *RestaurantRepo) InsertSales(ctx context.Context, sales []models.RestaurantSale) error {
	if len(sales) == 0 {
		return nil
	}
	docs := make([]interface{}, len(sales))
	for i := range sales {
		docs[i] = sales[i]
	}
	if _, err := r.store.db.Collection(restaurantSalesCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert restaurant sales: %w", err)
	}
	return nil
}
