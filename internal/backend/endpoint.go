package backend

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/opsdd/ddx/internal/model"
)

// Endpoint is the resolved backend address: the API base (scheme, host, port
// and root path, without trailing slash) plus the bare origin (scheme, host
// and port only). It is built once from configuration and immutable after.
type Endpoint struct {
	base   string
	origin string
}

// NewEndpoint creates an endpoint from a raw base URL.
func NewEndpoint(rawBase string) (*Endpoint, error) {
	base := strings.TrimRight(strings.TrimSpace(rawBase), "/")
	if base == "" {
		return nil, fmt.Errorf("base URL is required: %w", model.ErrNotValid)
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("could not parse base URL %q: %w", rawBase, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute: %w", rawBase, model.ErrNotValid)
	}

	return &Endpoint{
		base:   base,
		origin: u.Scheme + "://" + u.Host,
	}, nil
}

// Base returns the API base URL, without trailing slash.
func (e *Endpoint) Base() string { return e.base }

// Origin returns scheme://host[:port], without any path component.
func (e *Endpoint) Origin() string { return e.origin }

// Resolve joins a relative path against the API base with exactly one
// separating slash. Absolute URLs pass through untouched.
func (e *Endpoint) Resolve(path string) string {
	if isAbsoluteURL(path) {
		return path
	}
	return e.base + "/" + strings.TrimLeft(path, "/")
}

// ResolveAbsolute joins a relative path against the bare origin. Used when
// the backend hands back a path rooted outside the API prefix, such as a
// generated file download link.
func (e *Endpoint) ResolveAbsolute(path string) string {
	if isAbsoluteURL(path) {
		return path
	}
	return e.origin + "/" + strings.TrimLeft(path, "/")
}

func isAbsoluteURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
