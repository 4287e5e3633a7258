// Package session keeps login sessions in Redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession indicates the session id is unknown or expired.
var ErrNoSession = errors.New("no session")

// Store maps session ids to user names.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a Store whose sessions expire after ttl.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// TTL returns the session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create opens a session for user and returns its id.
func (s *Store) Create(ctx context.Context, user string) (string, error) {
	sid := uuid.NewString()
	if err := s.rdb.Set(ctx, key(sid), user, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sid, nil
}

// Lookup returns the user owning the session.
func (s *Store) Lookup(ctx context.Context, sid string) (string, error) {
	user, err := s.rdb.Get(ctx, key(sid)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && user == "") {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return user, nil
}

// Delete ends the session.
func (s *Store) Delete(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, key(sid)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func key(sid string) string {
	return "session:" + sid
}
