// Package credential owns the bearer token used against the storefront API.
// Exactly one component writes here: the API client's refresh flow. Domain
// wrappers and stores never read the token directly - it travels only as the
// Authorization header the client attaches.
package credential

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store holds at most one bearer token. Implementations must be safe for
// concurrent use: the refresh flow writes while in-flight requests read.
type Store interface {
	// Token returns the current token, or "" when unauthenticated.
	Token() string

	// SetToken replaces the stored token.
	SetToken(token string) error

	// Clear removes the stored token.
	Clear() error
}

// MemStore keeps the token in memory only. Used by tests and by embedders
// that manage persistence themselves.
type MemStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// ExpiresAt extracts the exp claim from a JWT without verifying the
// signature. Display-only: auth decisions always come from the backend's
// 401 responses, never from local clock math. Returns zero time when the
// token is not a JWT or carries no expiry.
func ExpiresAt(token string) time.Time {
	if token == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
