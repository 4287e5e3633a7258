// Package mocks provides testify mocks of the docstore interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restaurantdb/pkg/docstore"
)

// Collection is a mock type for the docstore.Collection type.
type Collection struct {
	mock.Mock
}

// NewCollection creates a new Collection mock and registers a cleanup that
// asserts the expectations.
func NewCollection(t interface {
	mock.TestingT
	Cleanup(func())
}) *Collection {
	m := &Collection{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// InsertOne provides a mock function.
func (m *Collection) InsertOne(ctx context.Context, doc any) error {
	ret := m.Called(ctx, doc)
	return ret.Error(0)
}

// FindOne provides a mock function.
func (m *Collection) FindOne(ctx context.Context, filter docstore.Filter, out any) error {
	ret := m.Called(ctx, filter, out)
	return ret.Error(0)
}

// UpdateOne provides a mock function.
func (m *Collection) UpdateOne(ctx context.Context, filter docstore.Filter, set docstore.Set) (bool, error) {
	ret := m.Called(ctx, filter, set)
	return ret.Bool(0), ret.Error(1)
}

// DeleteOne provides a mock function.
func (m *Collection) DeleteOne(ctx context.Context, filter docstore.Filter) (bool, error) {
	ret := m.Called(ctx, filter)
	return ret.Bool(0), ret.Error(1)
}

// Database hands out the same mock collection for every name.
type Database struct {
	Coll *Collection
}

// Collection returns the wrapped mock.
func (d Database) Collection(string) docstore.Collection {
	return d.Coll
}

var _ docstore.Collection = (*Collection)(nil)
var _ docstore.Database = Database{}
