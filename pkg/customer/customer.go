// Package customer manages customer records.
package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"restaurantdb/pkg/docstore"
	"restaurantdb/pkg/patch"
)

// Collection is the name of the collection customers live in.
const Collection = "Customers"

// Customer represents a registered customer.
type Customer struct {
	ID          string `json:"customer_id" bson:"customer_id"`
	Name        string `json:"name" bson:"name"`
	PhoneNumber string `json:"phone_number" bson:"phone_number"`
	Email       string `json:"email" bson:"email"`
}

// Update lists the fields a partial update may change. The id is fixed at
// creation.
type Update struct {
	Name        patch.Field[string] `json:"name"`
	PhoneNumber patch.Field[string] `json:"phone_number"`
	Email       patch.Field[string] `json:"email"`
}

// ErrInvalid indicates customer input failed validation.
var ErrInvalid = errors.New("invalid customer")

// Store persists customers.
type Store struct {
	coll  docstore.Collection
	newID func() string
}

// NewStore returns a Store over the customer collection of db.
func NewStore(db docstore.Database) *Store {
	return &Store{coll: db.Collection(Collection), newID: uuid.NewString}
}

// Add creates a customer with a freshly generated id and returns it.
func (s *Store) Add(ctx context.Context, name, phone, email string) (Customer, error) {
	if name == "" {
		return Customer{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	c := Customer{ID: s.newID(), Name: name, PhoneNumber: phone, Email: email}
	if err := s.coll.InsertOne(ctx, c); err != nil {
		return Customer{}, fmt.Errorf("add customer: %w", err)
	}
	return c, nil
}

// View returns the customer with the given id. found is false when there
// is none.
func (s *Store) View(ctx context.Context, id string) (c Customer, found bool, err error) {
	err = s.coll.FindOne(ctx, byID(id), &c)
	switch {
	case errors.Is(err, docstore.ErrNoDocument):
		return Customer{}, false, nil
	case err != nil:
		return Customer{}, false, fmt.Errorf("view customer %s: %w", id, err)
	}
	return c, true, nil
}

// Update applies the supplied fields of u and reports whether the customer
// exists.
func (s *Store) Update(ctx context.Context, id string, u Update) (bool, error) {
	set := docstore.Set{}
	if v, ok := u.Name.Get(); ok {
		if v == "" {
			return false, fmt.Errorf("%w: name cannot be empty", ErrInvalid)
		}
		set["name"] = v
	}
	if v, ok := u.PhoneNumber.Get(); ok {
		set["phone_number"] = v
	}
	if v, ok := u.Email.Get(); ok {
		set["email"] = v
	}
	if len(set) == 0 {
		_, found, err := s.View(ctx, id)
		return found, err
	}

	matched, err := s.coll.UpdateOne(ctx, byID(id), set)
	if err != nil {
		return false, fmt.Errorf("update customer %s: %w", id, err)
	}
	return matched, nil
}

// Delete removes the customer and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return false, fmt.Errorf("delete customer %s: %w", id, err)
	}
	return deleted, nil
}

func byID(id string) docstore.Filter {
	return docstore.Filter{"customer_id": id}
}
