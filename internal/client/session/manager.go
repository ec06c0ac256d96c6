// Package session owns the authenticated session: the bearer token, the
// validated user record, and the credential store holding the token between
// runs. No other component touches either.
package session

import (
	"context"
	"sync"

	"github.com/avelichko/contactdesk/internal/client/api"
	"github.com/avelichko/contactdesk/internal/client/credstore"
	"github.com/avelichko/contactdesk/internal/client/models"
	"github.com/avelichko/contactdesk/internal/logging"
)

// API is the slice of the request layer the session manager needs.
type API interface {
	Login(ctx context.Context, username, password string) (string, *api.CallError)
	Register(ctx context.Context, username, password string) (string, *api.CallError)
	CurrentUser(ctx context.Context, token string) (models.UserRecord, *api.CallError)
	Logout(ctx context.Context, token string) *api.CallError
}

// Manager holds the session state.
//
// Invariant: user is non-nil only while token is non-empty, and the user
// record always came from a successful identity check against that token.
// Consumers never observe a token without a validated user.
type Manager struct {
	api   API
	store credstore.Store
	log   logging.Logger

	mu    sync.Mutex
	token string
	user  *models.UserRecord
	// gen increments on every session mutation; in-flight restores compare
	// it so a stale identity check cannot overwrite a newer session state.
	gen uint64
}

func New(apiClient API, store credstore.Store, log logging.Logger) *Manager {
	return &Manager{api: apiClient, store: store, log: log}
}

// IsAuthenticated reports whether a validated session is active.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// Current returns a copy of the validated user record, if any.
func (m *Manager) Current() (models.UserRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.UserRecord{}, false
	}
	return *m.user, true
}

// Restore hydrates the session from a stored token. The token is accepted
// only after a successful identity check; any failure (network, 401,
// malformed body) clears both the in-memory session and the store, so a
// stale token never leaves the session half-authenticated.
func (m *Manager) Restore(ctx context.Context) {
	token, ok := m.store.Load(ctx)
	if !ok {
		return
	}

	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	user, cerr := m.api.CurrentUser(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		// The session changed while the check was in flight (logout or a
		// fresh login). The restored result is stale; drop it.
		m.log.Debug(ctx, "dropping superseded session restore")
		return
	}
	if cerr != nil {
		m.log.Warn(ctx, "stored token rejected", "kind", cerr.Kind.String())
		m.clearLocked(ctx)
		return
	}
	m.token = token
	m.user = &user
	m.gen++
}

// Login authenticates and commits the session only once the issued token
// passed the same identity check Restore uses. On failure the session stays
// unauthenticated and the returned error carries the displayable message.
func (m *Manager) Login(ctx context.Context, username, password string) *api.CallError {
	token, cerr := m.api.Login(ctx, username, password)
	if cerr != nil {
		return cerr
	}
	return m.adopt(ctx, token)
}

// Register has the same contract as Login against the registration endpoint.
func (m *Manager) Register(ctx context.Context, username, password string) *api.CallError {
	token, cerr := m.api.Register(ctx, username, password)
	if cerr != nil {
		return cerr
	}
	return m.adopt(ctx, token)
}

// adopt persists a freshly issued token, validates it, and commits the
// session. A failed validation rolls everything back to unauthenticated.
func (m *Manager) adopt(ctx context.Context, token string) *api.CallError {
	if err := m.store.Save(ctx, token); err != nil {
		m.log.Warn(ctx, "failed to persist token", "error", err)
	}

	user, cerr := m.api.CurrentUser(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if cerr != nil {
		m.clearLocked(ctx)
		return cerr
	}
	m.token = token
	m.user = &user
	m.gen++
	return nil
}

// Logout notifies the server best-effort, then unconditionally clears the
// in-memory session and the credential store.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token != "" {
		if cerr := m.api.Logout(ctx, token); cerr != nil {
			m.log.Warn(ctx, "server logout failed", "kind", cerr.Kind.String(), "message", cerr.Message)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked(ctx)
}

func (m *Manager) clearLocked(ctx context.Context) {
	m.token = ""
	m.user = nil
	m.gen++
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear stored token", "error", err)
	}
}
