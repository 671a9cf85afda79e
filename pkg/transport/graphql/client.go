package graphql

import "net/http"

// HTTPDoer is the minimal client interface the transport sends through
// (e.g. *http.Client or a custom round tripper wrapper).
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to HTTPDoer.
type DoerFunc func(*http.Request) (*http.Response, error)

// Do calls f(req).
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
