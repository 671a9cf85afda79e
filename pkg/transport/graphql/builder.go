package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/saturnines/nexus-gql/pkg/errors"
)

// RequestMode selects how an operation is put on the wire.
type RequestMode int

const (
	// FullDocument POSTs the query text and variables as a JSON body.
	FullDocument RequestMode = iota
	// PersistedHash GETs the endpoint with the document hash in the
	// extensions query parameter.
	PersistedHash
)

func (m RequestMode) String() string {
	switch m {
	case FullDocument:
		return "full_document"
	case PersistedHash:
		return "persisted_hash"
	default:
		return fmt.Sprintf("RequestMode(%d)", int(m))
	}
}

// ErrMissingPersistedID is returned when PersistedHash mode is used with an
// operation that has no identifier.
var ErrMissingPersistedID = fmt.Errorf("operation has no persisted identifier")

const persistedQueryVersion = 1

type requestBody struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type extensions struct {
	PersistedQuery persistedQuery `json:"persistedQuery"`
}

type persistedQuery struct {
	Version    int    `json:"version"`
	SHA256Hash string `json:"sha256Hash"`
}

// Builder constructs GraphQL requests.
type Builder struct {
	Endpoint *url.URL
	Mode     RequestMode
	Headers  map[string]string
}

// NewBuilder sets up a GraphQL Builder.
// Endpoint must already be validated as an absolute URL.
func NewBuilder(endpoint *url.URL, mode RequestMode, headers map[string]string) *Builder {
	return &Builder{
		Endpoint: endpoint,
		Mode:     mode,
		Headers:  headers,
	}
}

// Build creates the *http.Request for op. Every error it returns wraps
// errors.ErrConfiguration.
func (b *Builder) Build(ctx context.Context, op Operation) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)
	switch b.Mode {
	case FullDocument:
		req, err = b.buildPost(ctx, op)
	case PersistedHash:
		req, err = b.buildPersisted(ctx, op)
	default:
		err = fmt.Errorf("unknown request mode: %v", b.Mode)
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "build graphql request")
	}

	for k, v := range b.Headers {
		req.Header.Set(k, v)
	}
	// Sent for GET too; servers key on it regardless of body.
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (b *Builder) buildPost(ctx context.Context, op Operation) (*http.Request, error) {
	buf, err := json.Marshal(requestBody{
		Query:     op.Document(),
		Variables: op.Variables(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	return http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint.String(), bytes.NewReader(buf))
}

func (b *Builder) buildPersisted(ctx context.Context, op Operation) (*http.Request, error) {
	id := op.PersistedID()
	if id == "" {
		return nil, ErrMissingPersistedID
	}

	u := *b.Endpoint
	q := u.Query()

	if vars := op.Variables(); vars != nil {
		buf, err := json.Marshal(vars)
		if err != nil {
			return nil, fmt.Errorf("marshal variables: %w", err)
		}
		q.Set("variables", string(buf))
	}

	ext, err := json.Marshal(extensions{
		PersistedQuery: persistedQuery{Version: persistedQueryVersion, SHA256Hash: id},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal extensions: %w", err)
	}
	q.Set("extensions", string(ext))
	u.RawQuery = q.Encode()

	return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
}
