// Package menu manages menu item records.
package menu

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"restaurantdb/pkg/docstore"
	"restaurantdb/pkg/patch"
)

// Collection is the name of the collection menu items live in.
const Collection = "MenuItems"

// MenuItem represents a dish on the menu. Name is the lookup key.
type MenuItem struct {
	Name        string   `json:"name" bson:"name"`
	Price       float64  `json:"price" bson:"price"`
	Category    string   `json:"category" bson:"category"`
	Ingredients []string `json:"ingredients" bson:"ingredients"`
}

// Update lists the fields a partial update may change. Unset fields keep
// their stored values.
type Update struct {
	Name        patch.Field[string]   `json:"name"`
	Price       patch.Field[float64]  `json:"price"`
	Category    patch.Field[string]   `json:"category"`
	Ingredients patch.Field[[]string] `json:"ingredients"`
}

// ErrInvalid indicates a menu item or update failed validation.
var ErrInvalid = errors.New("invalid menu item")

// Validate checks the fields of a new menu item.
func (m MenuItem) Validate() error {
	if err := validName(m.Name); err != nil {
		return err
	}
	return validPrice(m.Price)
}

// Normalized returns m as it is stored: ingredients copied and never nil.
func (m MenuItem) Normalized() MenuItem {
	m.Ingredients = ingredients(m.Ingredients)
	return m
}

// Validate checks the supplied fields of an update.
func (u Update) Validate() error {
	if v, ok := u.Name.Get(); ok {
		if err := validName(v); err != nil {
			return err
		}
	}
	if v, ok := u.Price.Get(); ok {
		if err := validPrice(v); err != nil {
			return err
		}
	}
	return nil
}

func (u Update) set() docstore.Set {
	set := docstore.Set{}
	if v, ok := u.Name.Get(); ok {
		set["name"] = v
	}
	if v, ok := u.Price.Get(); ok {
		set["price"] = v
	}
	if v, ok := u.Category.Get(); ok {
		set["category"] = v
	}
	if v, ok := u.Ingredients.Get(); ok {
		set["ingredients"] = ingredients(v)
	}
	return set
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	return nil
}

func validPrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return fmt.Errorf("%w: price must be a non-negative number, got %v", ErrInvalid, price)
	}
	return nil
}

// ingredients copies v and never returns nil, so an empty list is stored
// as an empty array.
func ingredients(v []string) []string {
	if v == nil {
		return []string{}
	}
	return slices.Clone(v)
}
