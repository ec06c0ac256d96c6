package cli

import (
	"context"
	"fmt"
)

func (a *App) login(ctx context.Context) {
	username, password, ok := a.promptCredentials()
	if !ok {
		return
	}

	if cerr := a.session.Login(ctx, username, password); cerr != nil {
		fmt.Fprintln(a.out, cerr.Message)
		return
	}

	user, _ := a.session.Current()
	fmt.Fprintf(a.out, "Welcome, %s\n", user.Username)
}

func (a *App) register(ctx context.Context) {
	username, password, ok := a.promptCredentials()
	if !ok {
		return
	}

	if cerr := a.session.Register(ctx, username, password); cerr != nil {
		fmt.Fprintln(a.out, cerr.Message)
		return
	}

	user, _ := a.session.Current()
	fmt.Fprintf(a.out, "Welcome, %s\n", user.Username)
}

// promptCredentials asks for a username and password. The previously typed
// username is offered as the default, so a failed attempt keeps it.
func (a *App) promptCredentials() (string, string, bool) {
	prompt := "Enter username"
	if a.lastUsername != "" {
		prompt = fmt.Sprintf("Enter username [%s]", a.lastUsername)
	}

	username, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return "", "", false
	}
	if username == "" {
		username = a.lastUsername
	}
	a.lastUsername = username

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return "", "", false
	}

	return username, string(password), true
}

func (a *App) logout(ctx context.Context) {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) whoami() {
	user, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "Welcome, %s\n", user.Username)
}
