package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(rdb, time.Hour), mr
}

func TestCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	store, mr := setupStore(t)

	sid, err := store.Create(ctx, "manager")
	require.NoError(t, err)
	assert.NotEmpty(t, sid)

	user, err := store.Lookup(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "manager", user)

	assert.Equal(t, time.Hour, mr.TTL("session:"+sid))
}

func TestLookupUnknown(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Lookup(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := setupStore(t)

	sid, err := store.Create(ctx, "manager")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Lookup(ctx, sid)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)

	sid, err := store.Create(ctx, "manager")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, sid))

	_, err = store.Lookup(ctx, sid)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLookupWhenRedisDown(t *testing.T) {
	store, mr := setupStore(t)
	mr.Close()

	_, err := store.Lookup(context.Background(), "sid")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}
