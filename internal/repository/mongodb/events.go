package mongodb

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harborview/venue-metrics/internal/domain/models"
	"github.com/harborview/venue-metrics/internal/domain/repository"
)

const eventDateField = "event_date"

// EventRepo is the banquet-events view of the store.
type EventRepo struct {
	store *Store
}

func (r *EventRepo) eventSum(ctx context.Context, field string, start, end time.Time) (float64, error) {
	return r.store.sumField(ctx, eventsCollection, field, eventDateField, start, end, nil)
}

// TotalSales sums event sales within [start, end).
func (r *EventRepo) TotalSales(ctx context.Context, start, end time.Time) (float64, error) {
	return r.eventSum(ctx, "total_sales", start, end)
}

// TotalFoodSales sums event food sales within [start, end).
func (r *EventRepo) TotalFoodSales(ctx context.Context, start, end time.Time) (float64, error) {
	return r.eventSum(ctx, "food_sales", start, end)
}

// TotalBevSales sums event beverage sales within [start, end).
func (r *EventRepo) TotalBevSales(ctx context.Context, start, end time.Time) (float64, error) {
	return r.eventSum(ctx, "bev_sales", start, end)
}

// TotalCosts sums event costs within [start, end).
func (r *EventRepo) TotalCosts(ctx context.Context, start, end time.Time) (float64, error) {
	return r.eventSum(ctx, "total_cost", start, end)
}

// TotalFoodCosts sums event food costs within [start, end).
func (r *EventRepo) TotalFoodCosts(ctx context.Context, start, end time.Time) (float64, error) {
	return r.eventSum(ctx, "food_cost", start, end)
}

// TotalBevCosts sums event beverage costs within [start, end).
func (r *EventRepo) TotalBevCosts(ctx context.Context, start, end time.Time) (float64, error) {
	return r.eventSum(ctx, "bev_cost", start, end)
}

// eventSummaryProjection computes the display name alongside the fields the
// presentation layer consumes.
var eventSummaryProjection = bson.M{
	"_id":          1,
	"client_name":  1,
	"event_type":   1,
	"event_date":   1,
	"total_sales":  1,
	"display_name": bson.M{"$concat": bson.A{"$client_name", " ", "$event_type"}},
}

// TopEvents returns the events with the highest total sales in range,
// descending, truncated to limit. Ties keep the storage's natural order.
func (r *EventRepo) TopEvents(ctx context.Context, start, end time.Time, limit int) ([]repository.EventSummary, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			eventDateField: bson.M{"$gte": start, "$lt": end},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"total_sales": -1}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: eventSummaryProjection}},
	}
	return r.eventSummaries(ctx, pipeline, "top events")
}

// EventsAboveThreshold returns events whose total sales exceed the threshold,
// sorted by sales descending.
func (r *EventRepo) EventsAboveThreshold(ctx context.Context, start, end time.Time, threshold float64) ([]repository.EventSummary, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			eventDateField: bson.M{"$gte": start, "$lt": end},
			"total_sales":  bson.M{"$gt": threshold},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"total_sales": -1}}},
		bson.D{{Key: "$project", Value: eventSummaryProjection}},
	}
	return r.eventSummaries(ctx, pipeline, "events above threshold")
}

func (r *EventRepo) eventSummaries(ctx context.Context, pipeline mongo.Pipeline, op string) ([]repository.EventSummary, error) {
	cursor, err := r.store.db.Collection(eventsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cursor.Close(ctx)

	var summaries []repository.EventSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", op, err)
	}
	return summaries, nil
}

// CountEvents counts events within [start, end).
func (r *EventRepo) CountEvents(ctx context.Context, start, end time.Time) (int64, error) {
	count, err := r.store.db.Collection(eventsCollection).CountDocuments(ctx, bson.M{
		eventDateField: bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

// AverageEventSales averages total sales per event in range, rounded to 2
// decimal places. Returns 0.0 when no events match.
func (r *EventRepo) AverageEventSales(ctx context.Context, start, end time.Time) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			eventDateField: bson.M{"$gte": start, "$lt": end},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"average_sales": bson.M{"$avg": "$total_sales"},
		}}},
	}

	cursor, err := r.store.db.Collection(eventsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("average event sales: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		AverageSales float64 `bson:"average_sales"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode average event sales: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return math.Round(results[0].AverageSales*100) / 100, nil
}

// TypeBreakdown counts events per type in range, sorted by count descending.
func (r *EventRepo) TypeBreakdown(ctx context.Context, start, end time.Time) ([]repository.EventTypeCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			eventDateField: bson.M{"$gte": start, "$lt": end},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$event_type",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":        0,
			"event_type": "$_id",
			"count":      1,
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.store.db.Collection(eventsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("event type breakdown: %w", err)
	}
	defer cursor.Close(ctx)

	var breakdown []repository.EventTypeCount
	if err := cursor.All(ctx, &breakdown); err != nil {
		return nil, fmt.Errorf("decode event type breakdown: %w", err)
	}
	return breakdown, nil
}

// InsertEvents writes a batch of events.
func (r *EventRepo) InsertEvents(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}
	docs := make([]interface{}, len(events))
	for i := range events {
		docs[i] = events[i]
	}
	if _, err := r.store.db.Collection(eventsCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}
