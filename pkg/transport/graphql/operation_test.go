package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashDocument(t *testing.T) {
	assert.Equal(t,
		"ec2e01311ab3b02f3d8c8c712f9e579356d332cd007ac4c1ea5df727f482f05f",
		HashDocument("query { hello }"))
}

func TestNewRequest_Options(t *testing.T) {
	r := NewRequest("query { hello }",
		WithVariable("a", 1),
		WithVariables(map[string]interface{}{"b": "two"}),
		WithAutoPersistedID(),
	)

	assert.Equal(t, "query { hello }", r.Document())
	assert.Equal(t, map[string]interface{}{"a": 1, "b": "two"}, r.Variables())
	assert.Equal(t, HashDocument("query { hello }"), r.PersistedID())

	plain := NewRequest("query { hello }")
	assert.Nil(t, plain.Variables())
	assert.Empty(t, plain.PersistedID())

	explicit := NewRequest("query { hello }", WithPersistedID("abc"))
	assert.Equal(t, "abc", explicit.PersistedID())
}
