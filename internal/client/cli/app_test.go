package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/contactdesk/internal/client/api"
	"github.com/avelichko/contactdesk/internal/client/credstore"
	"github.com/avelichko/contactdesk/internal/client/models"
	"github.com/avelichko/contactdesk/internal/client/session"
	"github.com/avelichko/contactdesk/internal/client/view"
	"github.com/avelichko/contactdesk/internal/logging"
)

// fakeBackend serves both the session and the view slices of the request
// layer. Each Login call consumes one entry of loginErrs; once the list is
// exhausted logins succeed and issue "tok-<username>".
type fakeBackend struct {
	loginErrs []*api.CallError

	loginCalls    int
	lastLoginUser string
}

func (f *fakeBackend) Login(_ context.Context, username, _ string) (string, *api.CallError) {
	f.loginCalls++
	f.lastLoginUser = username
	if len(f.loginErrs) > 0 {
		cerr := f.loginErrs[0]
		f.loginErrs = f.loginErrs[1:]
		if cerr != nil {
			return "", cerr
		}
	}
	return "tok-" + username, nil
}

func (f *fakeBackend) Register(_ context.Context, username, _ string) (string, *api.CallError) {
	return "tok-" + username, nil
}

func (f *fakeBackend) CurrentUser(_ context.Context, token string) (models.UserRecord, *api.CallError) {
	return models.UserRecord{ID: 1, Username: strings.TrimPrefix(token, "tok-")}, nil
}

func (f *fakeBackend) Logout(context.Context, string) *api.CallError { return nil }

func (f *fakeBackend) ListContacts(context.Context) ([]models.ContactRecord, *api.CallError) {
	return []models.ContactRecord{}, nil
}

func (f *fakeBackend) CreateContact(context.Context, models.ContactInput) *api.CallError {
	return nil
}

func (f *fakeBackend) UpdateContact(context.Context, int64, models.ContactInput) *api.CallError {
	return nil
}

func (f *fakeBackend) DeleteContact(context.Context, int64) *api.CallError { return nil }

func (f *fakeBackend) SearchImages(context.Context, string) ([]models.ImageResult, *api.CallError) {
	return []models.ImageResult{}, nil
}

// newTestApp builds an App reading commands and prompts from input and
// writing everything to the returned buffer.
func newTestApp(t *testing.T, backend *fakeBackend, input string) (*App, *bytes.Buffer) {
	t.Helper()
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	var out bytes.Buffer
	return &App{
		log:     log,
		session: session.New(backend, credstore.NewMemoryStore(), log),
		coord:   view.New(backend, log),
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     &out,
	}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
}

func TestLogin_FailedAttemptRetainsUsername(t *testing.T) {
	stubPassword(t, "secret")

	backend := &fakeBackend{loginErrs: []*api.CallError{
		{Kind: api.KindUnauthorized, Message: "Invalid credentials"},
	}}

	// First attempt types "alice" and is rejected; the second presses Enter
	// to accept the offered default.
	app, out := newTestApp(t, backend, "alice\n\n")
	ctx := context.Background()

	app.login(ctx)
	require.Contains(t, out.String(), "Invalid credentials")
	assert.False(t, app.session.IsAuthenticated())
	assert.NotContains(t, out.String(), "Enter username [")

	app.login(ctx)

	assert.Contains(t, out.String(), "Enter username [alice]")
	assert.Equal(t, "alice", backend.lastLoginUser, "empty input must fall back to the previous username")
	assert.Equal(t, 2, backend.loginCalls)
	assert.Contains(t, out.String(), "Welcome, alice")
	assert.True(t, app.session.IsAuthenticated())
}

func TestRoot_PromptsAndCommandsShareOneReader(t *testing.T) {
	stubPassword(t, "secret")

	backend := &fakeBackend{}

	// The username line sits between two commands in the same stream; with a
	// single shared reader neither side can swallow the other's line.
	app, out := newTestApp(t, backend, "login\nalice\nwhoami\nexit\n")

	app.Root(context.Background())

	s := out.String()
	assert.Equal(t, 1, backend.loginCalls)
	assert.Equal(t, "alice", backend.lastLoginUser)
	assert.Contains(t, s, "Welcome, alice")
	assert.Contains(t, s, "cdesk (alice@contacts)>", "whoami must run in the authenticated session")
	assert.Contains(t, s, "Bye!", "the exit command must reach the loop")
}
