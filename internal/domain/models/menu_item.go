package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Menu item categories. Every menu item and every sale line carries exactly
// one of these values.
const (
	CategoryFood     = "Food"
	CategoryBeverage = "Beverage"
)

// MenuCategories lists the allowed menu item categories.
var MenuCategories = []string{CategoryFood, CategoryBeverage}

// MenuItem is the read-mostly reference document for items sold by the restaurant.
type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Category string             `bson:"category" json:"category"`
	Price    float64            `bson:"price" json:"price"`
	Cost     float64            `bson:"cost" json:"cost"`
}

// NewMenuItem validates the category and builds a menu item document.
func NewMenuItem(name, category string, price, cost float64) (*MenuItem, error) {
	if name == "" {
		return nil, fmt.Errorf("menu item name must not be empty")
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if price < 0 || cost < 0 {
		return nil, fmt.Errorf("menu item price and cost must not be negative")
	}

	return &MenuItem{
		Name:     name,
		Category: category,
		Price:    price,
		Cost:     cost,
	}, nil
}

func validateCategory(category string) error {
	for _, c := range MenuCategories {
		if category == c {
			return nil
		}
	}
	return fmt.Errorf("unknown menu category %q", category)
}
