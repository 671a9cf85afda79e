package graphql

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/nexus-gql/pkg/errors"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func decodeJSON(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestBuilder_FullDocument(t *testing.T) {
	tests := []struct {
		name     string
		op       Operation
		wantVars interface{}
	}{
		{
			name:     "no variables",
			op:       NewRequest("query { hello }"),
			wantVars: nil,
		},
		{
			name:     "with variables",
			op:       NewRequest("query($id: ID!) { user(id: $id) { name } }", WithVariable("id", "42"), WithVariable("n", 3)),
			wantVars: map[string]interface{}{"id": "42", "n": float64(3)},
		},
		{
			name:     "empty variables are still sent",
			op:       NewRequest("query { hello }", WithVariables(map[string]interface{}{})),
			wantVars: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(mustURL(t, "https://api.example.com/graphql"), FullDocument, nil)

			req, err := b.Build(context.Background(), tt.op)
			require.NoError(t, err)

			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "https://api.example.com/graphql", req.URL.String())
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

			raw, err := io.ReadAll(req.Body)
			require.NoError(t, err)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Len(t, body, 2)
			assert.Equal(t, tt.op.Document(), body["query"])

			vars, ok := body["variables"]
			require.True(t, ok, "variables key must always be present")
			assert.Equal(t, tt.wantVars, vars)
		})
	}
}

func TestBuilder_PersistedHash(t *testing.T) {
	b := NewBuilder(mustURL(t, "https://api.example.com/graphql?tenant=7"), PersistedHash, nil)

	op := NewRequest("query($id: ID!) { user(id: $id) { name } }",
		WithVariable("id", "42"),
		WithAutoPersistedID(),
	)

	req, err := b.Build(context.Background(), op)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Nil(t, req.Body)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "https", req.URL.Scheme)
	assert.Equal(t, "api.example.com", req.URL.Host)
	assert.Equal(t, "/graphql", req.URL.Path)

	q := req.URL.Query()
	assert.Equal(t, "7", q.Get("tenant"))
	assert.NotContains(t, q, "query")

	assert.Equal(t, map[string]interface{}{
		"persistedQuery": map[string]interface{}{
			"version":    float64(1),
			"sha256Hash": HashDocument(op.Document()),
		},
	}, decodeJSON(t, q.Get("extensions")))

	assert.Equal(t, map[string]interface{}{"id": "42"}, decodeJSON(t, q.Get("variables")))
}

func TestBuilder_PersistedHashWithoutVariables(t *testing.T) {
	b := NewBuilder(mustURL(t, "https://api.example.com/graphql"), PersistedHash, nil)

	req, err := b.Build(context.Background(), NewRequest("query { hello }", WithPersistedID("abc")))
	require.NoError(t, err)

	q := req.URL.Query()
	assert.NotContains(t, q, "variables")
	assert.Equal(t, map[string]interface{}{
		"persistedQuery": map[string]interface{}{"version": float64(1), "sha256Hash": "abc"},
	}, decodeJSON(t, q.Get("extensions")))
}

func TestBuilder_PersistedHashMissingID(t *testing.T) {
	b := NewBuilder(mustURL(t, "https://api.example.com/graphql"), PersistedHash, nil)

	_, err := b.Build(context.Background(), NewRequest("query { hello }"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
	assert.True(t, errors.Is(err, ErrMissingPersistedID))
}

func TestBuilder_UnknownMode(t *testing.T) {
	b := NewBuilder(mustURL(t, "https://api.example.com/graphql"), RequestMode(9), nil)

	_, err := b.Build(context.Background(), NewRequest("query { hello }"))
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestBuilder_Headers(t *testing.T) {
	b := NewBuilder(mustURL(t, "https://api.example.com/graphql"), FullDocument, map[string]string{
		"X-Client":     "nexus",
		"Content-Type": "text/plain",
	})

	req, err := b.Build(context.Background(), NewRequest("query { hello }"))
	require.NoError(t, err)

	assert.Equal(t, "nexus", req.Header.Get("X-Client"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}

func TestBuilder_DoesNotMutateEndpoint(t *testing.T) {
	endpoint := mustURL(t, "https://api.example.com/graphql?tenant=7")
	b := NewBuilder(endpoint, PersistedHash, nil)

	_, err := b.Build(context.Background(), NewRequest("query { hello }", WithPersistedID("abc")))
	require.NoError(t, err)

	assert.Equal(t, "tenant=7", endpoint.RawQuery)
}
