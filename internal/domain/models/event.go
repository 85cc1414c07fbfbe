package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventTypes lists the allowed banquet event types.
var EventTypes = []string{
	"Wedding",
	"Corporate",
	"Birthday",
	"Fundraiser",
	"Holiday Party",
}

// Event is a banquet booking with its food and beverage financials.
type Event struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientName string             `bson:"client_name" json:"client_name"`
	EventDate  time.Time          `bson:"event_date" json:"event_date"`
	EventType  string             `bson:"event_type" json:"event_type"`
	FoodSales  float64            `bson:"food_sales" json:"food_sales"`
	BevSales   float64            `bson:"bev_sales" json:"bev_sales"`
	TotalSales float64            `bson:"total_sales" json:"total_sales"`
	FoodCost   float64            `bson:"food_cost" json:"food_cost"`
	BevCost    float64            `bson:"bev_cost" json:"bev_cost"`
	TotalCost  float64            `bson:"total_cost" json:"total_cost"`
}

// NewEvent validates the event type and builds an event document with the
// derived totals populated.
func NewEvent(clientName string, eventDate time.Time, eventType string, foodSales, bevSales, foodCost, bevCost float64) (*Event, error) {
	if clientName == "" {
		return nil, fmt.Errorf("event client name must not be empty")
	}
	if err := validateEventType(eventType); err != nil {
		return nil, err
	}

	event := &Event{
		ClientName: clientName,
		EventDate:  eventDate,
		EventType:  eventType,
		FoodSales:  foodSales,
		BevSales:   bevSales,
		FoodCost:   foodCost,
		BevCost:    bevCost,
	}
	event.Recompute()
	return event, nil
}

// Recompute refreshes the derived totals from the food and beverage figures.
func (e *Event) Recompute() {
	e.TotalSales = round2(e.FoodSales + e.BevSales)
	e.TotalCost = round2(e.FoodCost + e.BevCost)
}

// DisplayName is the presentation label for the event. It is computed, never persisted.
func (e *Event) DisplayName() string {
	return fmt.Sprintf("%s %s", e.ClientName, e.EventType)
}

func validateEventType(eventType string) error {
	for _, t := range EventTypes {
		if eventType == t {
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", eventType)
}
