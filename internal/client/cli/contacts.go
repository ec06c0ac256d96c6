package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/avelichko/contactdesk/internal/client/models"
	"github.com/avelichko/contactdesk/internal/client/view"
)

func (a *App) switchTab(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: tab <contacts|images>")
		return
	}
	switch args[0] {
	case "contacts":
		a.coord.SetActiveTab(ctx, view.TabContacts)
		a.renderContacts()
	case "images":
		a.coord.SetActiveTab(ctx, view.TabImages)
	default:
		fmt.Fprintln(a.out, "Unknown tab:", args[0])
	}
}

func (a *App) listContacts(ctx context.Context) {
	if a.coord.ActiveTab() != view.TabContacts {
		a.coord.SetActiveTab(ctx, view.TabContacts)
	} else {
		a.coord.RefreshContacts(ctx)
	}
	a.renderContacts()
}

func (a *App) renderContacts() {
	snap := a.coord.Snapshot()
	if snap.Notice != "" {
		fmt.Fprintln(a.out, snap.Notice)
	}
	if len(snap.Contacts) == 0 {
		fmt.Fprintln(a.out, "No contacts")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIRST NAME\tLAST NAME\tEMAIL")
	for _, c := range snap.Contacts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.FirstName, c.LastName, c.Email)
	}
	w.Flush()
}

func (a *App) addContact(ctx context.Context) {
	a.coord.OpenCreateModal()

	input, ok := a.promptContact(models.ContactInput{})
	if !ok {
		a.coord.CloseModal()
		return
	}

	if cerr := a.coord.SubmitContact(ctx, input); cerr != nil {
		fmt.Fprintln(a.out, cerr.Message)
		a.coord.CloseModal()
		return
	}
	fmt.Fprintln(a.out, "Contact created")
	a.renderContacts()
}

func (a *App) editContact(ctx context.Context, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid id:", rawID)
		return
	}

	record, found := a.findContact(id)
	if !found {
		fmt.Fprintf(a.out, "No contact with id %d\n", id)
		return
	}

	a.coord.OpenEditModal(record)

	input, ok := a.promptContact(models.ContactInput{
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Email:     record.Email,
	})
	if !ok {
		a.coord.CloseModal()
		return
	}

	if cerr := a.coord.SubmitContact(ctx, input); cerr != nil {
		fmt.Fprintln(a.out, cerr.Message)
		a.coord.CloseModal()
		return
	}
	fmt.Fprintln(a.out, "Contact updated")
	a.renderContacts()
}

func (a *App) deleteContact(ctx context.Context, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid id:", rawID)
		return
	}

	if cerr := a.coord.DeleteContact(ctx, id); cerr != nil {
		fmt.Fprintln(a.out, cerr.Message)
		return
	}
	fmt.Fprintln(a.out, "Contact deleted")
	a.renderContacts()
}

func (a *App) findContact(id int64) (models.ContactRecord, bool) {
	for _, c := range a.coord.Snapshot().Contacts {
		if c.ID == id {
			return c, true
		}
	}
	return models.ContactRecord{}, false
}

// promptContact collects the editable fields. Current values are offered as
// defaults; pressing Enter keeps them.
func (a *App) promptContact(current models.ContactInput) (models.ContactInput, bool) {
	firstName, err := a.promptField("First name", current.FirstName)
	if err != nil {
		return models.ContactInput{}, false
	}
	lastName, err := a.promptField("Last name", current.LastName)
	if err != nil {
		return models.ContactInput{}, false
	}
	email, err := a.promptField("Email", current.Email)
	if err != nil {
		return models.ContactInput{}, false
	}
	return models.ContactInput{FirstName: firstName, LastName: lastName, Email: email}, true
}

func (a *App) promptField(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	value, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return "", err
	}
	if value == "" {
		return current, nil
	}
	return value, nil
}
