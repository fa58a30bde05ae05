// Package store holds client-side caches of server state: the signed-in user
// and the cart. Stores delegate every mutation to the API client and keep
// their local copy consistent afterward; they never touch the credential
// directly.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"shopfront/internal/apiclient"
	"shopfront/internal/model"
)

// AuthStore caches the authenticated user.
type AuthStore struct {
	client *apiclient.Client
	logger *slog.Logger

	mu      sync.RWMutex
	user    *model.User
	loading bool
}

// NewAuthStore creates an auth store bound to the given client.
func NewAuthStore(client *apiclient.Client, logger *slog.Logger) *AuthStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuthStore{client: client, logger: logger}
}

// CurrentUser returns the cached user, or nil when signed out.
func (s *AuthStore) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading reports whether an auth operation is in flight.
func (s *AuthStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Login signs in. When the account is unverified it returns
// unverified=true with no error and leaves the store signed out, so the
// caller can route to the OTP flow.
func (s *AuthStore) Login(ctx context.Context, email, password string) (unverified bool, err error) {
	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return false, err
	}
	if result.RequiresVerification {
		return true, nil
	}

	s.mu.Lock()
	s.user = result.User
	s.mu.Unlock()
	return false, nil
}

// Signup registers a new account. The store stays signed out until the
// account is verified and logged in.
func (s *AuthStore) Signup(ctx context.Context, req apiclient.RegisterRequest) (*model.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)
	return s.client.Register(ctx, req)
}

// Logout ends the session. The server call is best-effort: local state and
// the stored credential are cleared regardless of its outcome.
func (s *AuthStore) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.logger.Warn("server logout failed, clearing local session anyway",
			slog.String("error", err.Error()))
	}

	if err := s.client.Credentials().Clear(); err != nil {
		s.logger.Warn("clearing credential failed", slog.String("error", err.Error()))
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// FetchCurrentUser refreshes the cached user from the backend. Used at
// startup to restore a session from a persisted credential.
func (s *AuthStore) FetchCurrentUser(ctx context.Context) (*model.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

func (s *AuthStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
