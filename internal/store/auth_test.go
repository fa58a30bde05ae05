package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/apiclient"
	"shopfront/internal/credential"
	"shopfront/internal/model"
)

type authFake struct {
	mu            sync.Mutex
	unverified    bool
	logoutFails   bool
	logoutCalled  bool
	currentUserID int64
}

func (f *authFake) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		unverified := f.unverified
		f.mu.Unlock()

		if unverified {
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"requiresVerification": true},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"token": "T1",
				"user":  model.User{ID: 42, Email: "a@b.c", Verified: true},
			},
		})
	})

	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.logoutCalled = true
		fails := f.logoutFails
		f.mu.Unlock()

		if fails {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": nil})
	})

	mux.HandleFunc("GET /user/me", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		id := f.currentUserID
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{
			"data": model.User{ID: id, Email: "a@b.c"},
		})
	})

	return mux
}

func newAuthStore(t *testing.T, fake *authFake) (*AuthStore, credential.Store) {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	creds := credential.NewMemStore()
	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL, Credentials: creds})
	require.NoError(t, err)

	return NewAuthStore(client, nil), creds
}

func TestAuthLoginSetsUserAndCredential(t *testing.T) {
	s, creds := newAuthStore(t, &authFake{})

	unverified, err := s.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.False(t, unverified)

	require.NotNil(t, s.CurrentUser())
	assert.Equal(t, int64(42), s.CurrentUser().ID)
	assert.Equal(t, "T1", creds.Token())
	assert.False(t, s.Loading())
}

func TestAuthLoginUnverifiedAccount(t *testing.T) {
	s, creds := newAuthStore(t, &authFake{unverified: true})

	unverified, err := s.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.True(t, unverified)
	assert.Nil(t, s.CurrentUser(), "unverified login must not set a user")
	assert.Empty(t, creds.Token(), "unverified login must not store a credential")
}

func TestAuthLogoutAlwaysClearsLocalState(t *testing.T) {
	fake := &authFake{logoutFails: true}
	s, creds := newAuthStore(t, fake)

	_, err := s.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, creds.Token())

	s.Logout(context.Background())

	fake.mu.Lock()
	assert.True(t, fake.logoutCalled, "server logout should be attempted")
	fake.mu.Unlock()
	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, creds.Token(), "credential must be cleared even when server logout fails")
}

func TestAuthFetchCurrentUser(t *testing.T) {
	fake := &authFake{currentUserID: 7}
	s, creds := newAuthStore(t, fake)
	creds.SetToken("persisted")

	user, err := s.FetchCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, user, s.CurrentUser())
}
