package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurantdb/pkg/docstore"
)

type dish struct {
	Name        string   `bson:"name"`
	Price       float64  `bson:"price"`
	Ingredients []string `bson:"ingredients"`
}

func TestCollection(t *testing.T) {
	ctx := context.Background()
	coll := New().Collection("Dishes")

	require.NoError(t, coll.InsertOne(ctx, dish{Name: "Soup", Price: 12, Ingredients: []string{"Water"}}))

	var got dish
	require.NoError(t, coll.FindOne(ctx, docstore.Filter{"name": "Soup"}, &got))
	assert.Equal(t, dish{Name: "Soup", Price: 12, Ingredients: []string{"Water"}}, got)

	matched, err := coll.UpdateOne(ctx, docstore.Filter{"name": "Soup"}, docstore.Set{"price": 0.0})
	require.NoError(t, err)
	assert.True(t, matched)

	require.NoError(t, coll.FindOne(ctx, docstore.Filter{"name": "Soup"}, &got))
	assert.Zero(t, got.Price)
	assert.Equal(t, []string{"Water"}, got.Ingredients)

	deleted, err := coll.DeleteOne(ctx, docstore.Filter{"name": "Soup"})
	require.NoError(t, err)
	assert.True(t, deleted)

	err = coll.FindOne(ctx, docstore.Filter{"name": "Soup"}, &got)
	assert.ErrorIs(t, err, docstore.ErrNoDocument)
}

func TestCollectionMissesAreSoft(t *testing.T) {
	ctx := context.Background()
	coll := New().Collection("Dishes")

	matched, err := coll.UpdateOne(ctx, docstore.Filter{"name": "Ghost"}, docstore.Set{"price": 1.0})
	require.NoError(t, err)
	assert.False(t, matched)

	deleted, err := coll.DeleteOne(ctx, docstore.Filter{"name": "Ghost"})
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCollectionFirstMatchIsEarliestInserted(t *testing.T) {
	ctx := context.Background()
	coll := New().Collection("Dishes")

	require.NoError(t, coll.InsertOne(ctx, dish{Name: "Tea", Price: 1}))
	require.NoError(t, coll.InsertOne(ctx, dish{Name: "Tea", Price: 2}))

	var got dish
	require.NoError(t, coll.FindOne(ctx, docstore.Filter{"name": "Tea"}, &got))
	assert.Equal(t, 1.0, got.Price)

	_, err := coll.DeleteOne(ctx, docstore.Filter{"name": "Tea"})
	require.NoError(t, err)

	require.NoError(t, coll.FindOne(ctx, docstore.Filter{"name": "Tea"}, &got))
	assert.Equal(t, 2.0, got.Price)
	assert.Equal(t, 1, coll.(*Collection).Len())
}

func TestCollectionDoesNotAliasCallerState(t *testing.T) {
	ctx := context.Background()
	coll := New().Collection("Dishes")

	in := dish{Name: "Stew", Ingredients: []string{"Beans"}}
	require.NoError(t, coll.InsertOne(ctx, in))
	in.Ingredients[0] = "Changed"

	var got dish
	require.NoError(t, coll.FindOne(ctx, docstore.Filter{"name": "Stew"}, &got))
	assert.Equal(t, []string{"Beans"}, got.Ingredients)
}

func TestDatabaseReturnsSameCollection(t *testing.T) {
	ctx := context.Background()
	db := New()

	require.NoError(t, db.Collection("A").InsertOne(ctx, dish{Name: "x"}))

	var got dish
	require.NoError(t, db.Collection("A").FindOne(ctx, docstore.Filter{"name": "x"}, &got))
	assert.ErrorIs(t, db.Collection("B").FindOne(ctx, docstore.Filter{"name": "x"}, &got), docstore.ErrNoDocument)
}

func TestCollectionHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New().Collection("A").InsertOne(ctx, dish{Name: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
