package graphql

import (
	"crypto/sha256"
	"encoding/hex"
)

// Operation is the part of a query or mutation the transport needs to put it
// on the wire.
type Operation interface {
	// Document returns the full query text.
	Document() string
	// Variables returns the operation variables. nil means the operation
	// declares none.
	Variables() map[string]interface{}
	// PersistedID returns the hash identifying a pre-registered document.
	// Only used in PersistedHash mode.
	PersistedID() string
}

// Request is a plain Operation built from a document string.
type Request struct {
	document    string
	variables   map[string]interface{}
	persistedID string
}

// RequestOption configures a Request.
type RequestOption func(*Request)

// NewRequest creates a Request for the given document.
func NewRequest(document string, opts ...RequestOption) *Request {
	r := &Request{document: document}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithVariable sets a single variable.
func WithVariable(key string, value interface{}) RequestOption {
	return func(r *Request) {
		if r.variables == nil {
			r.variables = make(map[string]interface{})
		}
		r.variables[key] = value
	}
}

// WithVariables sets multiple variables.
func WithVariables(variables map[string]interface{}) RequestOption {
	return func(r *Request) {
		if r.variables == nil {
			r.variables = make(map[string]interface{}, len(variables))
		}
		for k, v := range variables {
			r.variables[k] = v
		}
	}
}

// WithPersistedID sets the persisted operation identifier.
func WithPersistedID(id string) RequestOption {
	return func(r *Request) {
		r.persistedID = id
	}
}

// WithAutoPersistedID derives the identifier from the document hash.
func WithAutoPersistedID() RequestOption {
	return func(r *Request) {
		r.persistedID = HashDocument(r.document)
	}
}

func (r *Request) Document() string { return r.document }
func (r *Request) Variables() map[string]interface{} { return r.variables }
func (r *Request) PersistedID() string { return r.persistedID }

// HashDocument returns the lowercase hex SHA-256 of document, the identifier
// automatic persisted query servers register documents under.
func HashDocument(document string) string {
	sum := sha256.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}
