// Package backend talks to the game-config service over HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gamecfg/gamecfg/internal/constants"
	"github.com/gamecfg/gamecfg/pkg/version"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 32 << 20

// RequestIDHeader carries a per-request UUID so client and server logs line up.
const RequestIDHeader = "X-Request-ID"

// ErrMissingResponse is returned when a chat reply lacks the "response" field.
var ErrMissingResponse = errors.New(`chat reply has no "response" field`)

// Reply is the body returned by POST /chat.
type Reply struct {
	Response string `json:"response"`
	// Thoughts holds the model's reasoning trace when the backend sends one.
	Thoughts string `json:"thoughts,omitempty"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Client calls the /chat and /state endpoints. It never retries.
type Client struct {
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets a per-request deadline. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "backend").Logger()
	}
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		logger:  zerolog.Nop(),
		client:  &http.Client{},
		baseURL: strings.TrimRight(u.String(), "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized service URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Chat posts message to /chat and returns the decoded reply.
func (c *Client) Chat(ctx context.Context, message string) (*Reply, error) {
	body, err := c.do(ctx, http.MethodPost, constants.ChatPath, chatRequest{Message: message})
	if err != nil {
		return nil, err
	}

	var raw struct {
		Response *string `json:"response"`
		Thoughts string  `json:"thoughts"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode chat reply: %w", err)
	}
	if raw.Response == nil {
		return nil, ErrMissingResponse
	}

	return &Reply{Response: *raw.Response, Thoughts: raw.Thoughts}, nil
}

// State fetches /state. The body is returned verbatim once it is known to be
// valid JSON; its shape is owned by the backend.
func (c *Client) State(ctx context.Context) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, constants.StatePath, nil)
	if err != nil {
		return nil, err
	}

	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, fmt.Errorf("decode state: response is not valid JSON")
	}
	return json.RawMessage(body), nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.logger.With().Str("method", method).Str("path", path).Str("request_id", requestID).Logger()
	logger.Debug().Msg("Sending request")
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debug().Err(err).Msg("Request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("Received response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(body),
		}
	}

	return body, nil
}

// errorDetail extracts a FastAPI style {"detail": "..."} message, falling
// back to a trimmed copy of the body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		return string(payload.Detail)
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
