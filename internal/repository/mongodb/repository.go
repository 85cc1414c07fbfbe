// Package mongodb implements the data-access contracts against the document
// store holding the menu item, restaurant sale, event, and budget collections.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	menuItemsCollection       = "menu_items"
	restaurantSalesCollection = "restaurant_sales"
	eventsCollection          = "events"
	budgetsCollection         = "budgets"
)

// Store implements the repository interfaces for MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewStore connects to MongoDB and verifies the connection. Connectivity
// failures here are fatal for the caller; there is no lazy reconnect.
func NewStore(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// EnsureIndexes creates the date and grouping indexes plus the unique
// (year, month) budget index that enforces the one-budget-per-period invariant.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	saleIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sale_date", Value: 1}}},
		{Keys: bson.D{{Key: "item", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	if _, err := s.db.Collection(restaurantSalesCollection).Indexes().CreateMany(ctx, saleIndexes); err != nil {
		return fmt.Errorf("create restaurant sale indexes: %w", err)
	}

	eventIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "event_date", Value: 1}}},
		{Keys: bson.D{{Key: "event_type", Value: 1}}},
		{Keys: bson.D{{Key: "total_sales", Value: -1}}},
	}
	if _, err := s.db.Collection(eventsCollection).Indexes().CreateMany(ctx, eventIndexes); err != nil {
		return fmt.Errorf("create event indexes: %w", err)
	}

	budgetIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.db.Collection(budgetsCollection).Indexes().CreateOne(ctx, budgetIndex); err != nil {
		return fmt.Errorf("create budget unique index: %w", err)
	}

	s.logger.Info("mongodb indexes ensured")
	return nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Restaurants returns the restaurant-sales repository view of the store.
func (s *Store) Restaurants() *RestaurantRepo {
	return &RestaurantRepo{store: s}
}

// Events returns the banquet-events repository view of the store.
func (s *Store) Events() *EventRepo {
	return &EventRepo{store: s}
}

// Budgets returns the budgets repository view of the store.
func (s *Store) Budgets() *BudgetRepo {
	return &BudgetRepo{store: s}
}

// MenuItems returns the menu-item repository view of the store.
func (s *Store) MenuItems() *MenuItemRepo {
	return &MenuItemRepo{store: s}
}

// sumField totals a numeric field over records whose date field falls within
// [start, end), returning 0.0 when nothing matches. This is the shared
// primitive behind every scalar aggregate.
func (s *Store) sumField(ctx context.Context, collection, field, dateField string, start, end time.Time, extraFilter bson.M) (float64, error) {
	match := bson.M{}
	for key, value := range extraFilter {
		match[key] = value
	}
	match[dateField] = bson.M{"$gte": start, "$lt": end}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$" + field},
		}}},
	}

	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum %s.%s: %w", collection, field, err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode %s.%s sum: %w", collection, field, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// groupedSum totals a numeric field per distinct value of groupField. Groups
// with no matching records are absent from the result.
func (s *Store) groupedSum(ctx context.Context, collection, field, groupField, dateField string, start, end time.Time) (map[string]float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			dateField: bson.M{"$gte": start, "$lt": end},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$" + groupField,
			"total": bson.M{"$sum": "$" + field},
		}}},
	}

	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("grouped sum %s.%s by %s: %w", collection, field, groupField, err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Group string  `bson:"_id"`
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode grouped sum %s.%s: %w", collection, field, err)
	}

	totals := make(map[string]float64, len(results))
	for _, r := range results {
		totals[r.Group] = r.Total
	}
	return totals, nil
}
