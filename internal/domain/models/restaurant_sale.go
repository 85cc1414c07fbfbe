package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestaurantSale is an itemized sale line. Unit price, unit cost, and category
// are denormalized from the referenced menu item at creation time; the totals
// are always recomputed from quantity and the unit figures, never set directly.
type RestaurantSale struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SaleDate   time.Time          `bson:"sale_date" json:"sale_date"`
	ItemID     primitive.ObjectID `bson:"item" json:"item"`
	Category   string             `bson:"category" json:"category"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	UnitPrice  float64            `bson:"unit_price" json:"unit_price"`
	UnitCost   float64            `bson:"unit_cost" json:"unit_cost"`
	TotalSales float64            `bson:"total_sales" json:"total_sales"`
	TotalCost  float64            `bson:"total_cost" json:"total_cost"`
}

// NewRestaurantSale builds a sale line for the given menu item and quantity
// with the derived totals populated.
func NewRestaurantSale(saleDate time.Time, item *MenuItem, quantity int) (*RestaurantSale, error) {
	if item == nil {
		return nil, fmt.Errorf("restaurant sale requires a menu item")
	}
	if quantity < 1 {
		return nil, fmt.Errorf("restaurant sale quantity must be at least 1, got %d", quantity)
	}

	sale := &RestaurantSale{
		SaleDate:  saleDate,
		ItemID:    item.ID,
		Category:  item.Category,
		Quantity:  quantity,
		UnitPrice: item.Price,
		UnitCost:  item.Cost,
	}
	sale.Recompute()
	return sale, nil
}

// Recompute refreshes the derived totals from the unit figures and quantity.
// Must be called again after any mutation of its inputs.
func (s *RestaurantSale) Recompute() {
	s.TotalSales = round2(s.UnitPrice * float64(s.Quantity))
	s.TotalCost = round2(s.UnitCost * float64(s.Quantity))
}
