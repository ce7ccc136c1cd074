// README: Conversation session store backed by Redis with TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

var ErrNotFound = errors.New("session not found")

// Context is what a conversation remembers between turns. Handlers merge it
// into submissions so users don't repeat themselves.
type Context struct {
	Username  string          `json:"username"`
	Service   types.Service   `json:"service"`
	Role      types.ActorRole `json:"role"`
	SubIssue  string          `json:"sub_issue,omitempty"`
	OrderID   string          `json:"order_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(token string) string {
	return "session:" + token
}

// Create stores sc under a fresh token and returns the token. The session
// expires after the configured TTL; every touch renews it.
func (s *Store) Create(ctx context.Context, sc Context) (string, error) {
	sc.CreatedAt = time.Now().UTC()
	token := uuid.NewString()
	if err := s.write(ctx, token, sc); err != nil {
		return "", err
	}
	return token, nil
}

// Get loads the session and renews its TTL. Expired or unknown tokens return
// ErrNotFound.
func (s *Store) Get(ctx context.Context, token string) (*Context, error) {
	raw, err := s.rdb.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var sc Context
	if err := json.Unmarshal([]byte(raw), &sc); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	s.rdb.Expire(ctx, key(token), s.ttl)
	return &sc, nil
}

// Update overwrites an existing session in place. Unknown tokens return
// ErrNotFound so callers can't resurrect expired conversations.
func (s *Store) Update(ctx context.Context, token string, sc Context) error {
	n, err := s.rdb.Exists(ctx, key(token)).Result()
	if err != nil {
		return fmt.Errorf("session exists: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return s.write(ctx, token, sc)
}

// Delete ends a session. Deleting an unknown token is not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, key(token)).Err()
}

func (s *Store) write(ctx context.Context, token string, sc Context) error {
	raw, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.rdb.Set(ctx, key(token), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}
