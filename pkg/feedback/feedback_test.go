package feedback

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurantdb/pkg/docstore/memory"
)

func TestAddThenView(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New())
	now := time.Date(2026, 10, 18, 9, 0, 0, 987654321, time.UTC)
	store.now = func() time.Time { return now }

	f, err := store.Add(ctx, "c-1", 5, "Great service")
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, now.Truncate(time.Millisecond), f.Date)

	got, found, err := store.View(ctx, f.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, f, got)
}

func TestAddAcceptsAnyFiniteRating(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New())

	for _, rating := range []float64{3, 0, -2, 4.5, 11} {
		f, err := store.Add(ctx, "c-1", rating, "")
		require.NoError(t, err)

		got, _, err := store.View(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, rating, got.Rating)
		assert.Equal(t, rating >= 1 && rating <= 5, got.InExpectedRange())
	}

	_, err := store.Add(ctx, "c-1", math.NaN(), "")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New())

	f, err := store.Add(ctx, "c-2", 3, "Bad food")
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, found, err := store.View(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
