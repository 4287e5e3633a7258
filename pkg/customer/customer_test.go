package customer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurantdb/pkg/docstore/memory"
	"restaurantdb/pkg/patch"
)

func TestAddThenView(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New())

	sara, err := store.Add(ctx, "Sara", "02112345678", "sara@yahoo.com")
	require.NoError(t, err)
	_, err = uuid.Parse(sara.ID)
	require.NoError(t, err)

	got, found, err := store.View(ctx, sara.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, Customer{ID: sara.ID, Name: "Sara", PhoneNumber: "02112345678", Email: "sara@yahoo.com"}, got)
}

func TestGeneratedIDsAreDistinct(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New())

	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		c, err := store.Add(ctx, "Ali", "09123456789", "ali@gmail.com")
		require.NoError(t, err)
		_, dup := seen[c.ID]
		require.False(t, dup, "duplicate id %s", c.ID)
		seen[c.ID] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New())

	ali, err := store.Add(ctx, "Ali", "09123456789", "ali@gmail.com")
	require.NoError(t, err)

	matched, err := store.Update(ctx, ali.ID, Update{Email: patch.Set("ali@example.com")})
	require.NoError(t, err)
	assert.True(t, matched)

	got, _, err := store.View(ctx, ali.ID)
	require.NoError(t, err)
	assert.Equal(t, Customer{ID: ali.ID, Name: "Ali", PhoneNumber: "09123456789", Email: "ali@example.com"}, got)
}

func TestUpdateClearsPhoneWithEmptyString(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New())

	ali, err := store.Add(ctx, "Ali", "09123456789", "ali@gmail.com")
	require.NoError(t, err)

	_, err = store.Update(ctx, ali.ID, Update{PhoneNumber: patch.Set("")})
	require.NoError(t, err)

	got, _, err := store.View(ctx, ali.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PhoneNumber)
	assert.Equal(t, "ali@gmail.com", got.Email)
}

func TestUpdateMissingIsSoft(t *testing.T) {
	store := NewStore(memory.New())

	matched, err := store.Update(context.Background(), uuid.NewString(), Update{Name: patch.Set("Nobody")})
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestDeleteTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New())

	sara, err := store.Add(ctx, "Sara", "02112345678", "sara@yahoo.com")
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, sara.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, sara.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, found, err := store.View(ctx, sara.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New())

	_, err := store.Add(ctx, "", "1", "a@b.c")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = store.Update(ctx, "any", Update{Name: patch.Set("")})
	assert.ErrorIs(t, err, ErrInvalid)
}
