// Package memory implements an in-memory document store.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"restaurantdb/pkg/docstore"
)

// Database provides an in-memory implementation of docstore.Database.
type Database struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

// New creates a new in-memory database.
func New() *Database {
	return &Database{collections: make(map[string]*Collection)}
}

// Collection returns the named collection, creating it on first use.
func (d *Database) Collection(name string) docstore.Collection {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.collections[name]
	if !ok {
		c = &Collection{}
		d.collections[name] = c
	}
	return c
}

// Collection keeps documents in insertion order, so the first match of a
// filter is the earliest inserted document that satisfies it.
type Collection struct {
	mu   sync.RWMutex
	docs []bson.M
}

// Len returns the number of stored documents.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// InsertOne stores the document.
func (c *Collection) InsertOne(ctx context.Context, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := toM(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append(c.docs, m)
	return nil
}

// FindOne decodes the first matching document into out.
func (c *Collection) FindOne(ctx context.Context, filter docstore.Filter, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := toM(filter)
	if err != nil {
		return fmt.Errorf("encode filter: %w", err)
	}
	c.mu.RLock()
	i := c.index(f)
	var raw []byte
	if i >= 0 {
		raw, err = bson.Marshal(c.docs[i])
	}
	c.mu.RUnlock()
	if i < 0 {
		return docstore.ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return bson.Unmarshal(raw, out)
}

// UpdateOne assigns the fields of set on the first matching document.
func (c *Collection) UpdateOne(ctx context.Context, filter docstore.Filter, set docstore.Set) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f, err := toM(filter)
	if err != nil {
		return false, fmt.Errorf("encode filter: %w", err)
	}
	s, err := toM(set)
	if err != nil {
		return false, fmt.Errorf("encode update: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(f)
	if i < 0 {
		return false, nil
	}
	for k, v := range s {
		c.docs[i][k] = v
	}
	return true, nil
}

// DeleteOne removes the first matching document.
func (c *Collection) DeleteOne(ctx context.Context, filter docstore.Filter) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f, err := toM(filter)
	if err != nil {
		return false, fmt.Errorf("encode filter: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(f)
	if i < 0 {
		return false, nil
	}
	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return true, nil
}

// index must be called with c.mu held.
func (c *Collection) index(filter bson.M) int {
	for i, doc := range c.docs {
		if matches(doc, filter) {
			return i
		}
	}
	return -1
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// toM round-trips v through bson so stored documents and filter values share
// one representation and callers never alias stored state.
func toM(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

var _ docstore.Database = (*Database)(nil)
var _ docstore.Collection = (*Collection)(nil)
