package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/avelichko/contactdesk/internal/client/models"
)

// credentials is the login/register request body.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login posts credentials and returns the issued access token. A 2xx
// response without an access_token field counts as malformed, surfaced with
// the generic login-failed message.
func (c *Client) Login(ctx context.Context, username, password string) (string, *CallError) {
	return c.authenticate(ctx, "/login", username, password, "login failed")
}

// Register has the same contract as Login against the registration endpoint.
func (c *Client) Register(ctx context.Context, username, password string) (string, *CallError) {
	return c.authenticate(ctx, "/register", username, password, "registration failed")
}

func (c *Client) authenticate(ctx context.Context, path, username, password, fallback string) (string, *CallError) {
	raw, cerr := c.call(ctx, callSpec{
		method: http.MethodPost,
		path:   path,
		body:   credentials{Username: username, Password: password},
	})
	if cerr != nil {
		return "", cerr
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.AccessToken == "" {
		return "", malformed(fallback)
	}
	return payload.AccessToken, nil
}

// CurrentUser exchanges a bearer token for the identity it belongs to.
// The token is passed explicitly so a freshly issued token can be validated
// before it is committed anywhere.
func (c *Client) CurrentUser(ctx context.Context, token string) (models.UserRecord, *CallError) {
	raw, cerr := c.call(ctx, callSpec{method: http.MethodGet, path: "/@me", token: token})
	if cerr != nil {
		return models.UserRecord{}, cerr
	}

	var user models.UserRecord
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.UserRecord{}, malformed("server returned an unexpected user payload")
	}
	return user, nil
}

// Logout notifies the server that the token should be discarded.
func (c *Client) Logout(ctx context.Context, token string) *CallError {
	_, cerr := c.call(ctx, callSpec{method: http.MethodPost, path: "/logout", token: token})
	return cerr
}

// ListContacts fetches the contact list. The returned slice is never nil:
// malformed payloads (contacts key absent, not a sequence, or undecodable)
// degrade to an empty slice plus a MalformedResponse error.
func (c *Client) ListContacts(ctx context.Context) ([]models.ContactRecord, *CallError) {
	empty := []models.ContactRecord{}

	raw, cerr := c.call(ctx, callSpec{method: http.MethodGet, path: "/contacts"})
	if cerr != nil {
		return empty, cerr
	}

	var payload struct {
		Contacts json.RawMessage `json:"contacts"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Contacts == nil {
		return empty, malformed("server returned an unexpected contacts payload")
	}

	var contacts []models.ContactRecord
	if err := json.Unmarshal(payload.Contacts, &contacts); err != nil {
		return empty, malformed("server returned an unexpected contacts payload")
	}
	if contacts == nil {
		// "contacts": null decodes to a nil slice
		contacts = empty
	}
	return contacts, nil
}

// CreateContact adds a new contact. Success is any 2xx status.
func (c *Client) CreateContact(ctx context.Context, input models.ContactInput) *CallError {
	_, cerr := c.call(ctx, callSpec{method: http.MethodPost, path: "/create_contact", body: input})
	return cerr
}

// UpdateContact replaces the editable fields of the contact with the given id.
func (c *Client) UpdateContact(ctx context.Context, id int64, input models.ContactInput) *CallError {
	_, cerr := c.call(ctx, callSpec{
		method: http.MethodPatch,
		path:   fmt.Sprintf("/update_contact/%d", id),
		body:   input,
	})
	return cerr
}

// DeleteContact removes the contact with the given id.
func (c *Client) DeleteContact(ctx context.Context, id int64) *CallError {
	_, cerr := c.call(ctx, callSpec{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/delete_contact/%d", id),
	})
	return cerr
}

// SearchImages runs an image search and projects the hits for display.
// An empty query is sent as-is; validation is the server's concern.
func (c *Client) SearchImages(ctx context.Context, query string) ([]models.ImageResult, *CallError) {
	empty := []models.ImageResult{}

	raw, cerr := c.call(ctx, callSpec{
		method: http.MethodGet,
		path:   "/api/images/search",
		query:  url.Values{"q": []string{query}},
	})
	if cerr != nil {
		return empty, cerr
	}

	var payload struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Results == nil {
		return empty, malformed("server returned an unexpected search payload")
	}

	var hits []models.RawImage
	if err := json.Unmarshal(payload.Results, &hits); err != nil {
		return empty, malformed("server returned an unexpected search payload")
	}

	images := make([]models.ImageResult, 0, len(hits))
	for _, hit := range hits {
		images = append(images, hit.Project())
	}
	return images, nil
}
