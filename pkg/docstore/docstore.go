// Package docstore defines the document store the record stores persist to.
package docstore

import (
	"context"
	"errors"
)

// Filter selects documents by equality over top-level fields.
type Filter map[string]any

// Set lists the top-level fields a partial update assigns.
type Set map[string]any

// Collection is a named set of documents.
type Collection interface {
	// InsertOne persists doc, encoded through its bson struct tags.
	InsertOne(ctx context.Context, doc any) error
	// FindOne decodes the first document matching filter into out.
	// It returns ErrNoDocument when nothing matches.
	FindOne(ctx context.Context, filter Filter, out any) error
	// UpdateOne assigns the fields of set on the first matching document
	// and reports whether one matched.
	UpdateOne(ctx context.Context, filter Filter, set Set) (bool, error)
	// DeleteOne removes the first matching document and reports whether
	// one was removed.
	DeleteOne(ctx context.Context, filter Filter) (bool, error)
}

// Database hands out collections by name.
type Database interface {
	Collection(name string) Collection
}

var (
	// ErrNoDocument indicates that no document matched a filter.
	ErrNoDocument = errors.New("no document matched")

	// ErrUnavailable indicates the backing store could not be reached or
	// did not answer in time.
	ErrUnavailable = errors.New("document store unavailable")
)
