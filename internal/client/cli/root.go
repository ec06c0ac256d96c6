package cli

import (
	"context"
	"fmt"
	"strings"
)

// Root runs the command loop. All input flows through a.reader, the same
// buffer the command prompts read from, so a line typed for a prompt can
// never be swallowed by the loop or vice versa.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to contactdesk (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "cdesk %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				break
			}
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.session.IsAuthenticated() {
				fmt.Fprintln(a.out, "Available commands: tab, list, add, edit, delete, search, whoami, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: login, register, tab, list, add, edit, delete, search, exit")
			}
		case "login":
			a.login(ctx)
		case "register":
			a.register(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami()
		case "tab":
			a.switchTab(ctx, args)
		case "list":
			a.listContacts(ctx)
		case "add":
			a.addContact(ctx)
		case "edit":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: edit <id>")
				continue
			}
			a.editContact(ctx, args[0])
		case "delete":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: delete <id>")
				continue
			}
			a.deleteContact(ctx, args[0])
		case "search":
			a.searchImages(ctx, strings.Join(args, " "))
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}

		if err != nil {
			break
		}
	}
}
