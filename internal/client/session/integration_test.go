package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/contactdesk/internal/client/api"
	"github.com/avelichko/contactdesk/internal/client/credstore"
	"github.com/avelichko/contactdesk/internal/logging"
)

// fakeAuthServer implements the auth slice of the remote surface: /login,
// /register, /@me and /logout, with one valid account and in-memory issued
// tokens.
type fakeAuthServer struct {
	issued map[string]string // token -> username

	logoutCalls int
	failLogout  bool
}

func newFakeAuthServer() *fakeAuthServer {
	return &fakeAuthServer{issued: map[string]string{}}
}

func (s *fakeAuthServer) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", func(w http.ResponseWriter, req *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(req.Body).Decode(&creds)

		if creds.Username != "alice" || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		token := "tok-" + creds.Username
		s.issued[token] = creds.Username
		json.NewEncoder(w).Encode(map[string]string{"access_token": token})
	})

	r.Get("/@me", func(w http.ResponseWriter, req *http.Request) {
		token := bearer(req)
		username, ok := s.issued[token]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid token"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": username})
	})

	r.Post("/logout", func(w http.ResponseWriter, req *http.Request) {
		s.logoutCalls++
		if s.failLogout {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		delete(s.issued, bearer(req))
	})

	return r
}

func bearer(req *http.Request) string {
	h := req.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

func newIntegrationManager(t *testing.T, srv *httptest.Server) (*Manager, *credstore.MemoryStore) {
	t.Helper()
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	client := api.New(srv.URL, 5*time.Second, log)
	store := credstore.NewMemoryStore()
	return New(client, store, log), store
}

func TestSessionAgainstServer_LoginLogoutRoundTrip(t *testing.T) {
	backend := newFakeAuthServer()
	srv := httptest.NewServer(backend.router())
	defer srv.Close()

	m, store := newIntegrationManager(t, srv)
	ctx := context.Background()

	// wrong password: message passed through, session untouched
	cerr := m.Login(ctx, "alice", "wrong")
	require.NotNil(t, cerr)
	assert.Equal(t, "Invalid credentials", cerr.Message)
	assert.False(t, m.IsAuthenticated())

	// correct credentials: validated user visible
	require.Nil(t, m.Login(ctx, "alice", "secret"))
	user, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)

	token, ok := store.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-alice", token)

	// restore over a live token yields the same user
	m.Restore(ctx)
	again, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, user, again)

	// logout notifies the server and wipes the stored token
	m.Logout(ctx)
	assert.Equal(t, 1, backend.logoutCalls)
	assert.False(t, m.IsAuthenticated())
	_, ok = store.Load(ctx)
	assert.False(t, ok)
}

func TestSessionAgainstServer_RestoreWithRevokedToken(t *testing.T) {
	backend := newFakeAuthServer()
	srv := httptest.NewServer(backend.router())
	defer srv.Close()

	m, store := newIntegrationManager(t, srv)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-revoked"))

	m.Restore(ctx)

	assert.False(t, m.IsAuthenticated())
	_, ok := store.Load(ctx)
	assert.False(t, ok, "a rejected token must be wiped from the store")
}

func TestSessionAgainstServer_LogoutSurvivesServerFailure(t *testing.T) {
	backend := newFakeAuthServer()
	backend.failLogout = true
	srv := httptest.NewServer(backend.router())
	defer srv.Close()

	m, store := newIntegrationManager(t, srv)
	ctx := context.Background()

	require.Nil(t, m.Login(ctx, "alice", "secret"))

	m.Logout(ctx)

	assert.False(t, m.IsAuthenticated())
	_, ok := store.Load(ctx)
	assert.False(t, ok)
}

func TestSessionAgainstServer_UnreachableDuringRestore(t *testing.T) {
	backend := newFakeAuthServer()
	srv := httptest.NewServer(backend.router())

	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	client := api.New(srv.URL, time.Second, log)
	store := credstore.NewMemoryStore()
	m := New(client, store, log)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-whatever"))
	srv.Close() // server goes away before the restore

	m.Restore(ctx)

	assert.False(t, m.IsAuthenticated())
	_, ok := store.Load(ctx)
	assert.False(t, ok)
}
