package menu

import (
	"context"
	"errors"
	"fmt"

	"restaurantdb/pkg/docstore"
)

// Store persists menu items. Names are not enforced unique: with
// duplicates, View, Update and Delete act on whichever document the backend
// resolves first.
type Store struct {
	coll docstore.Collection
}

// NewStore returns a Store over the menu item collection of db.
func NewStore(db docstore.Database) *Store {
	return &Store{coll: db.Collection(Collection)}
}

// Add inserts a new menu item.
func (s *Store) Add(ctx context.Context, item MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item = item.Normalized()
	if err := s.coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("add menu item %q: %w", item.Name, err)
	}
	return nil
}

// View returns the first menu item called name. found is false when there
// is none.
func (s *Store) View(ctx context.Context, name string) (item MenuItem, found bool, err error) {
	err = s.coll.FindOne(ctx, byName(name), &item)
	switch {
	case errors.Is(err, docstore.ErrNoDocument):
		return MenuItem{}, false, nil
	case err != nil:
		return MenuItem{}, false, fmt.Errorf("view menu item %q: %w", name, err)
	}
	return item, true, nil
}

// Update applies the supplied fields of u to the first menu item called
// name and reports whether one matched.
func (s *Store) Update(ctx context.Context, name string, u Update) (bool, error) {
	if err := u.Validate(); err != nil {
		return false, err
	}
	set := u.set()
	if len(set) == 0 {
		_, found, err := s.View(ctx, name)
		return found, err
	}
	matched, err := s.coll.UpdateOne(ctx, byName(name), set)
	if err != nil {
		return false, fmt.Errorf("update menu item %q: %w", name, err)
	}
	return matched, nil
}

// Delete removes the first menu item called name and reports whether one
// was removed. Deleting a missing item is not an error.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	deleted, err := s.coll.DeleteOne(ctx, byName(name))
	if err != nil {
		return false, fmt.Errorf("delete menu item %q: %w", name, err)
	}
	return deleted, nil
}

func byName(name string) docstore.Filter {
	return docstore.Filter{"name": name}
}
