package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/model"
)

const (
	// DefaultTimeout is the per-request timeout applied when none is
	// configured.
	DefaultTimeout = 120 * time.Second

	correlationHeader = "X-Request-ID"
	authTokenHeader   = "X-Auth-Token"
)

// Descriptor describes one outbound backend request.
type Descriptor struct {
	Method string
	// URL is the already resolved absolute URL.
	URL   string
	Query map[string]string
	// Body is JSON encoded when not nil.
	Body interface{}
	// Token is the admin credential. Blank (empty or whitespace only) tokens
	// are never sent.
	Token string
}

// TransportConfig is the configuration for the transport.
type TransportConfig struct {
	// Client is the HTTP client used to issue requests. Defaults to a fresh
	// client without its own timeout (the transport applies one per call).
	Client  *http.Client
	Timeout time.Duration
	Logger  log.Logger
}

func (c *TransportConfig) defaults() error {
	if c.Client == nil {
		c.Client = &http.Client{}
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "backend.Transport"})
	return nil
}

// Transport issues single HTTP requests against the backend with a uniform
// contract. It classifies failures but never retries, retry policy belongs
// to the callers.
type Transport struct {
	client  *http.Client
	timeout time.Duration
	logger  log.Logger
}

// NewTransport creates a new transport.
func NewTransport(cfg TransportConfig) (*Transport, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Transport{
		client:  cfg.Client,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}, nil
}

// Send issues the described request and returns a normalized outcome. It
// never panics and never returns an error: every failure mode maps to a
// classified Failure inside the outcome.
func (t *Transport) Send(ctx context.Context, desc Descriptor) Outcome {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := t.buildRequest(ctx, desc)
	if err != nil {
		return FailureOutcome(&Failure{Kind: FailureUnexpected, Detail: err.Error()})
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return FailureOutcome(classifySendError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FailureOutcome(&Failure{Kind: FailureConnection, Detail: fmt.Sprintf("could not read response body: %s", err)})
	}

	t.logger.Debugf("%s %s -> %d (%s)", desc.Method, desc.URL, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		// Some endpoints return plain or binary content with a 2xx status,
		// so an undecodable body is still a success carrying raw text.
		var doc model.Document
		if err := json.Unmarshal(body, &doc); err != nil {
			return SuccessOutcome(nil, string(body))
		}
		return SuccessOutcome(doc, string(body))
	}

	return FailureOutcome(&Failure{
		Kind:          FailureHTTP,
		Status:        resp.StatusCode,
		Detail:        bestEffortDetail(body),
		CorrelationID: resp.Header.Get(correlationHeader),
	})
}

func (t *Transport) buildRequest(ctx context.Context, desc Descriptor) (*http.Request, error) {
	var bodyReader io.Reader
	if desc.Body != nil {
		raw, err := json.Marshal(desc.Body)
		if err != nil {
			return nil, fmt.Errorf("could not encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, desc.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("could not build request: %w", err)
	}

	if len(desc.Query) > 0 {
		q := url.Values{}
		for k, v := range desc.Query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("Accept", "application/json")
	if desc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(desc.Token); token != "" {
		req.Header.Set(authTokenHeader, token)
	}

	return req, nil
}

func classifySendError(err error) *Failure {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &Failure{Kind: FailureTimeout, Detail: err.Error()}
	default:
		return &Failure{Kind: FailureConnection, Detail: err.Error()}
	}
}

// bestEffortDetail extracts a human detail from an error body: the JSON
// "detail" or "error" field when present, otherwise the raw text.
func bestEffortDetail(body []byte) string {
	var doc model.Document
	if err := json.Unmarshal(body, &doc); err == nil {
		if d := doc.Str("detail"); d != "" {
			return d
		}
		if d := doc.Str("error"); d != "" {
			return d
		}
	}
	return strings.TrimSpace(string(body))
}
