package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"restaurantdb/pkg/docstore"
	"restaurantdb/pkg/patch"
)

// Update lists what may change on an existing order. The customer and the
// order date are fixed at creation.
type Update struct {
	Status patch.Field[Status] `json:"order_status"`
	Items  patch.Field[[]Item] `json:"order_items"`
}

// Store persists orders. It does not check that the referenced customer
// or menu items exist.
type Store struct {
	coll  docstore.Collection
	newID func() string
	now   func() time.Time
}

// NewStore returns a Store over the order collection of db.
func NewStore(db docstore.Database) *Store {
	return &Store{coll: db.Collection(Collection), newID: uuid.NewString, now: time.Now}
}

// Add places a new order for customerID with status New and returns it.
func (s *Store) Add(ctx context.Context, customerID string, items []Item) (Order, error) {
	o := Order{
		ID:         s.newID(),
		CustomerID: customerID,
		Date:       s.now().UTC().Truncate(time.Millisecond),
		Status:     New,
		Items:      snapshot(items),
	}
	if err := s.coll.InsertOne(ctx, o); err != nil {
		return Order{}, fmt.Errorf("add order: %w", err)
	}
	return o, nil
}

// View returns the order with the given id. found is false when there is
// none.
func (s *Store) View(ctx context.Context, id string) (o Order, found bool, err error) {
	err = s.coll.FindOne(ctx, byID(id), &o)
	switch {
	case errors.Is(err, docstore.ErrNoDocument):
		return Order{}, false, nil
	case err != nil:
		return Order{}, false, fmt.Errorf("view order %s: %w", id, err)
	}
	return o, true, nil
}

// Update changes the status and/or replaces the items of an order and
// reports whether it exists.
func (s *Store) Update(ctx context.Context, id string, u Update) (bool, error) {
	set := docstore.Set{}
	if v, ok := u.Status.Get(); ok {
		if v == "" {
			return false, fmt.Errorf("%w: status cannot be empty", ErrInvalid)
		}
		set["order_status"] = v
	}
	if v, ok := u.Items.Get(); ok {
		set["order_items"] = snapshot(v)
	}
	if len(set) == 0 {
		_, found, err := s.View(ctx, id)
		return found, err
	}

	matched, err := s.coll.UpdateOne(ctx, byID(id), set)
	if err != nil {
		return false, fmt.Errorf("update order %s: %w", id, err)
	}
	return matched, nil
}

// Delete removes the order and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return false, fmt.Errorf("delete order %s: %w", id, err)
	}
	return deleted, nil
}

func byID(id string) docstore.Filter {
	return docstore.Filter{"order_id": id}
}
