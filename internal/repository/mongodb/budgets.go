package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harborview/venue-metrics/internal/domain/models"
	"github.com/harborview/venue-metrics/internal/domain/repository"
)

// BudgetRepo is the budgets view of the store.
type BudgetRepo struct {
	store *Store
}

// MonthlyTotal returns the named field from the budget document for
// (month, year), or 0.0 when no document exists. Missing budgets are not
// errors.
func (r *BudgetRepo) MonthlyTotal(ctx context.Context, field repository.BudgetField, month, year int) (float64, error) {
	return r.budgetTotal(ctx, field, bson.M{"year": year, "month": month})
}

// YTDTotal sums the named field across the year's budget documents with
// month <= the given month.
func (r *BudgetRepo) YTDTotal(ctx context.Context, field repository.BudgetField, month, year int) (float64, error) {
	return r.budgetTotal(ctx, field, bson.M{"year": year, "month": bson.M{"$lte": month}})
}

func (r *BudgetRepo) budgetTotal(ctx context.Context, field repository.BudgetField, match bson.M) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$" + string(field)},
		}}},
	}

	cursor, err := r.store.db.Collection(budgetsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("budget %s total: %w", field, err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode budget %s total: %w", field, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// AnnualBudgets lists the year's budget documents ordered by month.
func (r *BudgetRepo) AnnualBudgets(ctx context.Context, year int) ([]models.Budget, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "month", Value: 1}})
	cursor, err := r.store.db.Collection(budgetsCollection).Find(ctx, bson.M{"year": year}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find annual budgets: %w", err)
	}
	defer cursor.Close(ctx)

	var budgets []models.Budget
	if err := cursor.All(ctx, &budgets); err != nil {
		return nil, fmt.Errorf("decode annual budgets: %w", err)
	}
	return budgets, nil
}

// Upsert writes the budget keyed by (year, month). Derived fields are
// recomputed before the write so callers can never persist stale totals, and
// the replace-by-period upsert keeps at most one document per (year, month).
func (r *BudgetRepo) Upsert(ctx context.Context, budget *models.Budget) error {
	if budget == nil {
		return fmt.Errorf("budget must not be nil")
	}
	budget.Recompute()

	filter := bson.M{"year": budget.Year, "month": budget.Month}
	replaceOptions := options.Replace().SetUpsert(true)

	if _, err := r.store.db.Collection(budgetsCollection).ReplaceOne(ctx, filter, budget, replaceOptions); err != nil {
		return fmt.Errorf("upsert budget %d-%02d: %w", budget.Year, budget.Month, err)
	}
	return nil
}
