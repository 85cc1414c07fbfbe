package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/harborview/venue-metrics/internal/domain/models"
)

// MenuItemRepo is the menu-item reference view of the store.
type MenuItemRepo struct {
	store *Store
}

// InsertMenuItems writes a batch of menu items. Callers assign object IDs up
// front so sale lines can reference them immediately.
func (r *MenuItemRepo) InsertMenuItems(ctx context.Context, items []models.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	if _, err := r.store.db.Collection(menuItemsCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert menu items: %w", err)
	}
	return nil
}

// ListMenuItems returns the whole menu item reference collection.
func (r *MenuItemRepo) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	cursor, err := r.store.db.Collection(menuItemsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode menu items: %w", err)
	}
	return items, nil
}
