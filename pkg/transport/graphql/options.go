package graphql

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPDoer swaps the underlying HTTPDoer.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(t *Transport) {
		t.doer = doer
	}
}

// WithHTTPClient sends through client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			t.doer = client
		}
	}
}

// WithTimeout sets a timeout on the HTTP client (if it's an *http.Client).
func WithTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		if httpClient, ok := t.doer.(*http.Client); ok && timeout > 0 {
			httpClient.Timeout = timeout
		}
	}
}

// WithRequestMode selects full-document POSTs or persisted-hash GETs.
func WithRequestMode(mode RequestMode) Option {
	return func(t *Transport) {
		t.mode = mode
	}
}

// WithPersistedOperations is WithRequestMode(PersistedHash) when enabled.
func WithPersistedOperations(enabled bool) Option {
	return func(t *Transport) {
		if enabled {
			t.mode = PersistedHash
		} else {
			t.mode = FullDocument
		}
	}
}

// WithHeader adds a header to every request. Content-Type cannot be overridden.
func WithHeader(key, value string) Option {
	return func(t *Transport) {
		if t.headers == nil {
			t.headers = make(map[string]string)
		}
		t.headers[key] = value
	}
}

// WithHeaders adds multiple headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(t *Transport) {
		if t.headers == nil {
			t.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			t.headers[k] = v
		}
	}
}

// WithUserAgent sets the User-Agent header for requests.
func WithUserAgent(userAgent string) Option {
	return WithHeader("User-Agent", userAgent)
}

// WithLogger sets the logger used for send and completion events.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}
