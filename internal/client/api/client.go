// Package api is the single choke point for every call to the gymtrack
// backend: it attaches the bearer token, unwraps the response envelope and
// normalizes all failures into one error shape. A 401 anywhere clears the
// durable session mirror and fires the registered unauthorized hook, so no
// screen can keep operating with a dead credential.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"gymtrack/internal/logging"
)

// TokenSource supplies the current bearer token, typically backed by the
// durable session mirror. An empty token means "send unauthenticated".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionClearer wipes the durable session mirror. The pipeline may trigger
// a clear on 401 but never writes identity data itself; memory state is owned
// by the session store, which reacts through the unauthorized hook.
type SessionClearer interface {
	ClearSession(ctx context.Context) error
}

// Client issues JSON requests against the backend.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	clearer        SessionClearer
	onUnauthorized func(ctx context.Context)
	log            logging.Logger
}

// New constructs a Client. tokens and clearer may be nil for unauthenticated
// use (e.g., tests).
func New(baseURL string, timeout time.Duration, tokens TokenSource, clearer SessionClearer, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		clearer: clearer,
		log:     log,
	}
}

// OnUnauthorized registers the hook fired after a 401 has cleared the durable
// mirror. The session store uses it to drop in-memory state and notify views.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

// Do issues an HTTP call and returns the raw response body. All failures are
// reported as *Error: a non-2xx status yields {Status, server message}, a
// transport failure yields the fixed connectivity message, and a request
// construction failure yields the original message. Do never retries.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: err.Error()}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reqBody)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.roundTrip(req)
}

// Send issues the call and decodes the payload portion of the response into
// out, unwrapping one level of "data" nesting when present. out may be nil
// when the caller only cares about success.
func (c *Client) Send(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(Payload(raw), out); err != nil {
		return &Error{Message: fmt.Sprintf("unexpected response format: %s", err)}
	}
	return nil
}

// Upload posts a single file as multipart/form-data and decodes the payload
// into out. Used by the admin media endpoints.
func (c *Client) Upload(ctx context.Context, path, field, filename string, file []byte, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	if _, err := fw.Write(file); err != nil {
		return &Error{Message: err.Error()}
	}
	if err := mw.Close(); err != nil {
		return &Error{Message: err.Error()}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	raw, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(Payload(raw), out); err != nil {
		return &Error{Message: fmt.Sprintf("unexpected response format: %s", err)}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

func (c *Client) roundTrip(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "request failed", "method", req.Method, "path", req.URL.Path, "err", err)
		return nil, unavailable()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable()
	}

	if resp.StatusCode >= 400 {
		msg := ErrorMessage(raw)
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}

		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateSession(req.Context())
		}

		c.log.Debug(req.Context(), "server error", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}

	return raw, nil
}

// invalidateSession clears the durable mirror and fires the unauthorized
// hook. Runs synchronously so the caller observes a clean session by the
// time the error reaches it.
func (c *Client) invalidateSession(ctx context.Context) {
	if c.clearer != nil {
		if err := c.clearer.ClearSession(ctx); err != nil {
			c.log.Error(ctx, "failed to clear session after 401", "err", err)
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}
