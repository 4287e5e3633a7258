// Package order manages customer orders.
package order

import (
	"errors"
	"slices"
	"time"
)

// Collection is the name of the collection orders live in.
const Collection = "Orders"

// Status is the free-form state of an order.
type Status string

// Statuses the kitchen uses. Any non-empty status is accepted and
// transitions between them are unrestricted.
const (
	New       Status = "New"
	Preparing Status = "Preparing"
	Ready     Status = "Ready"
	Delivered Status = "Delivered"
	Cancelled Status = "Cancelled"
)

// Known reports whether s is one of the named statuses.
func (s Status) Known() bool {
	switch s {
	case New, Preparing, Ready, Delivered, Cancelled:
		return true
	}
	return false
}

// Item is a copy of a menu item taken when the order was placed. Later
// menu changes do not reach it.
type Item struct {
	Name        string   `json:"name" bson:"name"`
	Price       float64  `json:"price" bson:"price"`
	Category    string   `json:"category" bson:"category"`
	Ingredients []string `json:"ingredients" bson:"ingredients"`
}

// Order represents a customer purchase order.
type Order struct {
	ID         string    `json:"order_id" bson:"order_id"`
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	Date       time.Time `json:"order_date" bson:"order_date"`
	Status     Status    `json:"order_status" bson:"order_status"`
	Items      []Item    `json:"order_items" bson:"order_items"`
}

// ErrInvalid indicates order input failed validation.
var ErrInvalid = errors.New("invalid order")

// snapshot deep-copies items so the stored order shares no memory with the
// caller.
func snapshot(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		it.Ingredients = slices.Clone(it.Ingredients)
		if it.Ingredients == nil {
			it.Ingredients = []string{}
		}
		out[i] = it
	}
	return out
}
