// Package cli is the interactive terminal frontend: a REPL over the session
// manager and the view coordinator.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/avelichko/contactdesk/internal/client/api"
	"github.com/avelichko/contactdesk/internal/client/config"
	"github.com/avelichko/contactdesk/internal/client/credstore"
	"github.com/avelichko/contactdesk/internal/client/session"
	"github.com/avelichko/contactdesk/internal/client/view"
	"github.com/avelichko/contactdesk/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	store   *credstore.SQLiteStore
	session *session.Manager
	coord   *view.Coordinator
	reader  *bufio.Reader
	out     io.Writer

	// lastUsername is offered as the default on the next login attempt so a
	// failed login does not force retyping the name.
	lastUsername string
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	store, err := credstore.Open(ctx, c.CredentialDB, log)
	if err != nil {
		log.Error(ctx, "error initializing credential store", "error", err)
		return nil, err
	}

	apiClient := api.New(c.ServerBaseURL, c.RequestTimeout, log)

	sm := session.New(apiClient, store, log)
	coord := view.New(apiClient, log)

	return &App{
		config:  c,
		log:     log,
		store:   store,
		session: sm,
		coord:   coord,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the session from the stored token, loads the initial
// contacts view, and enters the command loop.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	a.session.Restore(ctx)
	if user, ok := a.session.Current(); ok {
		fmt.Fprintf(a.out, "Welcome back, %s\n", user.Username)
	}

	// Contacts is the initial tab; entering it loads the collection.
	a.coord.RefreshContacts(ctx)

	a.Root(ctx)
}

func (a *App) getStatus() string {
	s := ""
	if user, ok := a.session.Current(); ok {
		s = user.Username + "@"
	}
	s += string(a.coord.ActiveTab())
	return fmt.Sprintf("(%s)", s)
}
