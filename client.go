// Package storefront is the client-side session, catalog and
// cart/checkout synchronization layer for the storefront API.
//
// All network traffic goes through Client, which attaches both
// credential mechanisms (bearer token from a TokenStore and the
// server-set session cookie from the HTTP client's jar) to every
// request and normalizes every response into data or a typed *Error.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// DefaultTimeout bounds requests when no custom HTTP client is supplied.
// The core imposes no timeout of its own beyond the transport's.
const DefaultTimeout = 30 * time.Second

// Client is the single chokepoint for all storefront API calls
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	log        zerolog.Logger
	timeout    time.Duration
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client. A cookie jar is attached if
// the client has none, since the session cookie must ride along on every
// request.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenStore sets the bearer token source
func WithTokenStore(ts TokenStore) ClientOption {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets a structured logger; the default discards everything
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// WithTimeout sets the per-request timeout. It applies to whichever
// HTTP client the constructor ends up with, regardless of option order.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a storefront API client for the given base URL
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     NewMemoryTokenStore(),
		log:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}

	if c.httpClient.Jar == nil {
		// cookiejar.New only errors on bad options; we pass none
		jar, _ := cookiejar.New(nil)
		c.httpClient.Jar = jar
	}

	return c
}

// Tokens returns the client's token store
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// Health probes the API's health endpoint
func (c *Client) Health(ctx context.Context) error {
	_, err := c.Call(ctx, "GET", "/health", nil)
	return err
}

// Call issues exactly one request against a same-origin API path and
// returns the raw response payload. Bodies that are not valid JSON are
// returned verbatim rather than rejected, so an HTML error page still
// yields a usable message downstream.
//
// A non-2xx status always becomes a server_error carrying the payload's
// own "error" field when present, otherwise "HTTP <status>". Transport
// failures (including context cancellation and timeouts) become
// network_error. No outcome is ever left pending.
func (c *Client) Call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	return c.CallWithHeaders(ctx, method, path, body, nil)
}

// CallWithHeaders is Call with extra request headers, used by opt-in
// extensions such as checkout idempotency keys.
func (c *Client) CallWithHeaders(ctx context.Context, method, path string, body any, headers map[string]string) (json.RawMessage, error) {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, NewError(KindValidation, fmt.Sprintf("request body is not serializable: %v", err))
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, NewError(KindValidation, fmt.Sprintf("invalid request: %v", err))
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Both credential mechanisms travel together: the bearer header when
	// a token is held, and cookies via the jar. The server decides which
	// to honor; the client never infers a precedence.
	if token, ok := c.tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).
			Str("request_id", requestID).Err(err).Msg("request failed")
		return nil, NewError(KindNetwork, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(KindNetwork, fmt.Sprintf("reading response: %v", err))
	}

	c.log.Debug().Str("method", method).Str("path", path).
		Str("request_id", requestID).Int("status", resp.StatusCode).Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if field := gjson.GetBytes(raw, "error"); field.Type == gjson.String && field.Str != "" {
			msg = field.Str
		}
		return nil, &Error{Kind: KindServer, Message: msg, Status: resp.StatusCode}
	}

	return raw, nil
}
