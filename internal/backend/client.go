package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opsdd/ddx/internal/log"
)

// Notifier surfaces one human readable message per failed backend call so
// the operator always gets a categorized explanation.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

//go:generate mockery --case underscore --output backendmock --outpkg backendmock --name Notifier

// NotifierFunc is a function adapter for Notifier.
type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) { f(ctx, message) }

// TokenSource provides the admin credential attached to backend calls.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource for a fixed credential string.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Sender issues a single described request. Implemented by Transport.
type Sender interface {
	Send(ctx context.Context, desc Descriptor) Outcome
}

// API is the surface the rest of the tool uses to talk to the backend. The
// gateway client is the only component allowed to issue HTTP calls.
type API interface {
	Get(ctx context.Context, path string, query map[string]string) Outcome
	Post(ctx context.Context, path string, body interface{}) Outcome
	Delete(ctx context.Context, path string) Outcome
	Resolve(path string) string
	ResolveAbsolute(path string) string
}

//go:generate mockery --case underscore --output backendmock --outpkg backendmock --name API

// ClientConfig is the configuration for the gateway client.
type ClientConfig struct {
	Endpoint *Endpoint
	Sender   Sender
	Tokens   TokenSource
	Notifier Notifier
	Logger   log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.Endpoint == nil {
		return fmt.Errorf("endpoint is required")
	}
	if c.Sender == nil {
		return fmt.Errorf("sender is required")
	}
	if c.Tokens == nil {
		c.Tokens = StaticToken("")
	}
	if c.Notifier == nil {
		c.Notifier = NotifierFunc(func(context.Context, string) {})
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "backend.Client"})
	return nil
}

// Client is the gateway to the backend API. Every verb resolves the path
// against the configured base, attaches the credential when one is set and
// converts failures into a user notification: calls never panic past this
// boundary, callers only branch on whether they got a usable payload.
type Client struct {
	endpoint *Endpoint
	sender   Sender
	tokens   TokenSource
	notifier Notifier
	logger   log.Logger
}

// NewClient creates a new gateway client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		endpoint: cfg.Endpoint,
		sender:   cfg.Sender,
		tokens:   cfg.Tokens,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
	}, nil
}

// Get issues a GET request against the backend.
func (c *Client) Get(ctx context.Context, path string, query map[string]string) Outcome {
	return c.send(ctx, Descriptor{
		Method: http.MethodGet,
		URL:    c.endpoint.Resolve(path),
		Query:  query,
	})
}

// Post issues a POST request with a JSON body against the backend.
func (c *Client) Post(ctx context.Context, path string, body interface{}) Outcome {
	return c.send(ctx, Descriptor{
		Method: http.MethodPost,
		URL:    c.endpoint.Resolve(path),
		Body:   body,
	})
}

// Delete issues a DELETE request against the backend.
func (c *Client) Delete(ctx context.Context, path string) Outcome {
	return c.send(ctx, Descriptor{
		Method: http.MethodDelete,
		URL:    c.endpoint.Resolve(path),
	})
}

// Resolve joins a path against the configured API base.
func (c *Client) Resolve(path string) string { return c.endpoint.Resolve(path) }

// ResolveAbsolute joins a path against the bare origin.
func (c *Client) ResolveAbsolute(path string) string { return c.endpoint.ResolveAbsolute(path) }

func (c *Client) send(ctx context.Context, desc Descriptor) Outcome {
	desc.Token = c.tokens.Token()

	out := c.sender.Send(ctx, desc)
	if !out.OK() {
		f := out.Failure()
		c.logger.Warningf("%s %s failed: %s", desc.Method, desc.URL, f)
		c.notifier.Notify(ctx, UserMessage(f))
	}

	return out
}

// UserMessage maps a failure to the single categorized message shown to the
// operator, with the correlation ID appended when the backend provided one.
func UserMessage(f *Failure) string {
	var msg string
	switch {
	case f.Kind == FailureTimeout:
		msg = "The backend took too long to reply. Try again later."
	case f.Kind == FailureConnection:
		msg = "Could not reach the backend. Check your network connection."
	case f.Kind == FailureHTTP && f.Status >= 400 && f.Status < 500:
		msg = fmt.Sprintf("The backend rejected the request (status %d). Fix the input and resubmit.", f.Status)
	case f.Kind == FailureHTTP:
		msg = fmt.Sprintf("The backend reported an error (status %d). Contact an administrator.", f.Status)
	default:
		msg = "Unexpected error talking to the backend. Contact an administrator."
	}

	if f.CorrelationID != "" {
		msg = fmt.Sprintf("%s (request id: %s)", msg, f.CorrelationID)
	}

	return msg
}
