package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"civictrack/internal/cache"
)

const stateKeyPrefix = "oauth_state:"

// StateTTL bounds how long a browser has to complete the provider round trip.
const StateTTL = 10 * time.Minute

// StateStoreInterface defines the interface for OAuth state storage operations.
type StateStoreInterface interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) (bool, error)
}

// StateStore holds short-lived OAuth state nonces in Redis. This is the only
// cross-request mutable state in the process; each nonce is scoped to one
// browser via a cookie and consumed exactly once.
type StateStore struct {
	cache *cache.Client
}

var _ StateStoreInterface = (*StateStore)(nil)

// NewStateStore creates a Redis-backed state store.
func NewStateStore(cache *cache.Client) *StateStore {
	return &StateStore{cache: cache}
}

// Issue creates a fresh state nonce valid for StateTTL.
func (s *StateStore) Issue(ctx context.Context) (string, error) {
	state := uuid.New().String()
	if err := s.cache.Set(ctx, stateKeyPrefix+state, []byte("1"), StateTTL); err != nil {
		return "", err
	}
	return state, nil
}

// Consume removes the nonce and reports whether it was present. A second
// call with the same state always returns false.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	data, err := s.cache.GetDel(ctx, stateKeyPrefix+state)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}
