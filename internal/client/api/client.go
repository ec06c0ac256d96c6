// Package api is the single path every remote call takes. It turns any
// failure (transport, status, decoding) into a classified CallError so
// presentation code never sees a raw error or a panic, and substitutes
// safe empty defaults for malformed collection payloads.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avelichko/contactdesk/internal/logging"
)

// Client issues JSON-over-HTTP requests against the contacts service.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func New(baseURL string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// callSpec fixes everything about one remote call except its response decoding.
type callSpec struct {
	method string
	path   string
	query  url.Values
	body   any
	token  string // bearer token; empty for unauthenticated calls
}

// errorBody is the shape the server uses for failure messages. Auth and
// contact routes use "message", the image proxy uses "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// call performs the request and classifies the outcome. On success it
// returns the raw 2xx body; otherwise a CallError per the taxonomy:
// transport failure -> Unreachable, 401 -> Unauthorized, other non-2xx ->
// ServerError carrying the server message when one decodes.
func (c *Client) call(ctx context.Context, spec callSpec) ([]byte, *CallError) {
	reqID := uuid.NewString()

	target := c.baseURL + spec.path
	if len(spec.query) > 0 {
		target += "?" + spec.query.Encode()
	}

	var reqBody io.Reader
	if spec.body != nil {
		data, err := json.Marshal(spec.body)
		if err != nil {
			return nil, &CallError{Kind: KindServerError, Message: fmt.Sprintf("encode request body: %v", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, target, reqBody)
	if err != nil {
		return nil, &CallError{Kind: KindServerError, Message: fmt.Sprintf("build request: %v", err)}
	}
	if spec.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if spec.token != "" {
		req.Header.Set("Authorization", "Bearer "+spec.token)
	}

	c.log.Debug(ctx, "issuing request", "req_id", reqID, "method", spec.method, "path", spec.path)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "req_id", reqID, "path", spec.path, "error", err)
		return nil, unreachable()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn(ctx, "reading response failed", "req_id", reqID, "path", spec.path, "error", err)
		return nil, unreachable()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err == nil {
			message = eb.text()
		}
		if message == "" {
			message = fmt.Sprintf("HTTP error: status %d", resp.StatusCode)
		}
		kind := KindServerError
		if resp.StatusCode == http.StatusUnauthorized {
			kind = KindUnauthorized
		}
		c.log.Warn(ctx, "request rejected", "req_id", reqID, "path", spec.path,
			"status", resp.StatusCode, "kind", kind.String())
		return nil, &CallError{Kind: kind, Message: message}
	}

	return raw, nil
}
