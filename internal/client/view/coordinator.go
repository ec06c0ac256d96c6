// Package view coordinates which collection is visible and how server
// results are folded into it. It gates automatic refetches to the active
// tab and serializes modal state with mutation completion.
package view

import (
	"context"
	"sync"

	"github.com/avelichko/contactdesk/internal/client/api"
	"github.com/avelichko/contactdesk/internal/client/models"
	"github.com/avelichko/contactdesk/internal/logging"
)

// Tab names one of the two collection views.
type Tab string

const (
	TabContacts Tab = "contacts"
	TabImages   Tab = "images"
)

// API is the slice of the request layer the coordinator needs. The list
// methods return a well-formed (possibly empty, never nil) slice even on
// failure.
type API interface {
	ListContacts(ctx context.Context) ([]models.ContactRecord, *api.CallError)
	CreateContact(ctx context.Context, input models.ContactInput) *api.CallError
	UpdateContact(ctx context.Context, id int64, input models.ContactInput) *api.CallError
	DeleteContact(ctx context.Context, id int64) *api.CallError
	SearchImages(ctx context.Context, query string) ([]models.ImageResult, *api.CallError)
}

// Snapshot is a copy of the visible state, safe to render from any goroutine.
type Snapshot struct {
	ActiveTab Tab
	ModalOpen bool
	Editing   *models.ContactRecord
	Contacts  []models.ContactRecord
	Images    []models.ImageResult
	Notice    string
}

// Coordinator owns the view state.
//
// Each collection carries a monotonically increasing request token; a fetch
// result is committed only if it is still the newest request for that
// collection, so a superseded response can never overwrite state produced
// by a later one. There is no cancellation: stale responses are dropped,
// not aborted.
type Coordinator struct {
	api API
	log logging.Logger

	mu        sync.Mutex
	activeTab Tab
	modalOpen bool
	editing   *models.ContactRecord
	contacts  []models.ContactRecord
	images    []models.ImageResult
	notice    string

	contactsSeq uint64
	imagesSeq   uint64
}

func New(apiClient API, log logging.Logger) *Coordinator {
	return &Coordinator{
		api:       apiClient,
		log:       log,
		activeTab: TabContacts,
		contacts:  []models.ContactRecord{},
		images:    []models.ImageResult{},
	}
}

// Snapshot returns a copy of the current view state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		ActiveTab: c.activeTab,
		ModalOpen: c.modalOpen,
		Contacts:  append([]models.ContactRecord(nil), c.contacts...),
		Images:    append([]models.ImageResult(nil), c.images...),
		Notice:    c.notice,
	}
	if c.editing != nil {
		edit := *c.editing
		snap.Editing = &edit
	}
	return snap
}

// ActiveTab returns the currently presented collection view.
func (c *Coordinator) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

// SetActiveTab switches the visible collection. A transition into Contacts
// refetches the contact list; entering Images fetches nothing, since image
// search is query-driven.
func (c *Coordinator) SetActiveTab(ctx context.Context, tab Tab) {
	c.mu.Lock()
	changed := c.activeTab != tab
	c.activeTab = tab
	c.mu.Unlock()

	if changed && tab == TabContacts {
		c.RefreshContacts(ctx)
	}
}

// RefreshContacts fetches the contact list and commits the result unless a
// newer contacts request was issued meanwhile. Failures surface as a notice
// with an emptied collection; the view never crashes on a bad or down server.
func (c *Coordinator) RefreshContacts(ctx context.Context) {
	c.mu.Lock()
	c.contactsSeq++
	seq := c.contactsSeq
	c.mu.Unlock()

	contacts, cerr := c.api.ListContacts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.contactsSeq {
		c.log.Debug(ctx, "dropping superseded contacts fetch")
		return
	}
	if cerr != nil {
		c.contacts = contacts // always a well-formed empty slice on failure
		c.notice = cerr.Message
		return
	}
	c.contacts = contacts
	c.notice = ""
}

// OpenCreateModal opens the editor with no record selected. Reopening over
// an already-open modal simply overwrites the prior state.
func (c *Coordinator) OpenCreateModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
	c.modalOpen = true
}

// OpenEditModal opens the editor targeting the given record.
func (c *Coordinator) OpenEditModal(record models.ContactRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	edit := record
	c.editing = &edit
	c.modalOpen = true
}

// CloseModal closes the editor and always drops the edit target, so a
// previous record cannot leak into a subsequent create.
func (c *Coordinator) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = false
	c.editing = nil
}

// SubmitContact routes to create or update depending on whether an edit
// target is set. On success the modal closes before the refetch is issued;
// on failure the modal stays open and the error is both surfaced as the
// notice and returned.
func (c *Coordinator) SubmitContact(ctx context.Context, input models.ContactInput) *api.CallError {
	c.mu.Lock()
	editing := c.editing
	c.mu.Unlock()

	var cerr *api.CallError
	if editing != nil {
		cerr = c.api.UpdateContact(ctx, editing.ID, input)
	} else {
		cerr = c.api.CreateContact(ctx, input)
	}

	if cerr != nil {
		c.mu.Lock()
		c.notice = cerr.Message
		c.mu.Unlock()
		return cerr
	}

	c.onMutationComplete(ctx)
	return nil
}

// DeleteContact removes a record by id. On failure the visible collection
// is untouched and the error is surfaced, never silently dropped.
func (c *Coordinator) DeleteContact(ctx context.Context, id int64) *api.CallError {
	cerr := c.api.DeleteContact(ctx, id)
	if cerr != nil {
		c.mu.Lock()
		c.notice = cerr.Message
		c.mu.Unlock()
		return cerr
	}

	c.onMutationComplete(ctx)
	return nil
}

// onMutationComplete closes the modal synchronously, then refetches only if
// Contacts is the active tab. A mutation finishing while another tab is
// active neither switches tabs nor fetches an irrelevant collection.
func (c *Coordinator) onMutationComplete(ctx context.Context) {
	c.mu.Lock()
	c.modalOpen = false
	c.editing = nil
	refetch := c.activeTab == TabContacts
	c.mu.Unlock()

	if refetch {
		c.RefreshContacts(ctx)
	}
}

// SearchImages clears the previous result set and notice, issues the
// search, and commits the projected hits or the verbatim server error.
// Empty queries are sent as-is.
func (c *Coordinator) SearchImages(ctx context.Context, query string) {
	c.mu.Lock()
	c.imagesSeq++
	seq := c.imagesSeq
	c.images = []models.ImageResult{}
	c.notice = ""
	c.mu.Unlock()

	images, cerr := c.api.SearchImages(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.imagesSeq {
		c.log.Debug(ctx, "dropping superseded image search")
		return
	}
	if cerr != nil {
		c.images = []models.ImageResult{}
		c.notice = cerr.Message
		return
	}
	c.images = images
}
