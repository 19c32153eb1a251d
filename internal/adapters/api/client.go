// Package api is the gateway to the external chama REST API. It is the
// single path every screen's reads and writes go through: each request
// attaches the session's bearer token, and 401/403 responses from any
// endpoint surface as ErrUnauthorized so session invalidation happens in
// exactly one place at the HTTP layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Sentinel errors surfaced to callers.
var (
	// ErrUnauthorized covers HTTP 401 and 403: the token is missing,
	// expired, or lacks the required role. Callers must clear the session
	// and send the user back to the auth page.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable covers transport-level failures. The user sees a
	// generic message; the real cause goes to the log.
	ErrUnavailable = errors.New("something went wrong, please try again later")
)

// Error is a server-reported business error: a non-2xx status with a
// {msg} body. Msg is shown to the user verbatim.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return http.StatusText(e.Status)
}

// Unwrap maps 401/403 onto ErrUnauthorized so errors.Is works across the
// whole client without per-screen status checks.
func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// Client talks to the chama REST API. The zero value is not usable; use
// New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// NewWithHTTPClient creates a client using a caller-supplied http.Client.
// Intended for tests.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// msgEnvelope is the API's universal message body.
type msgEnvelope struct {
	Msg string `json:"msg"`
}

// do issues one request. A non-empty token is attached as a bearer
// credential; an empty token sends the request unauthenticated and lets
// the server decide. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("api_transport_error", "method", method, "path", path, "error", err.Error())
		return ErrUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("api_read_error", "method", method, "path", path, "error", err.Error())
		return ErrUnavailable
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env msgEnvelope
		_ = json.Unmarshal(raw, &env)
		slog.Info("api_error", "method", method, "path", path, "status", resp.StatusCode, "msg", env.Msg)
		return &Error{Status: resp.StatusCode, Msg: env.Msg}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			slog.Error("api_decode_error", "method", method, "path", path, "error", err.Error())
			return ErrUnavailable
		}
	}
	return nil
}
