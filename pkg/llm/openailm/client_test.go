package openailm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridian/pkg/llm"
)

func TestResponseFormatCarriesCanonicalSchema(t *testing.T) {
	rf := responseFormat()
	require.NotNil(t, rf.OfJSONSchema)

	js := rf.OfJSONSchema.JSONSchema
	assert.Equal(t, llm.SchemaName, js.Name)
	assert.Equal(t, llm.UpdateSchema(), js.Schema)
}

func TestResponseFormatDoesNotRequestStrictMode(t *testing.T) {
	// The canonical schema keeps optional fields optional and sets no
	// additionalProperties, which strict mode rejects outright with an
	// invalid_json_schema error before any generation runs.
	rf := responseFormat()
	require.NotNil(t, rf.OfJSONSchema)
	assert.False(t, rf.OfJSONSchema.JSONSchema.Strict.Valid(),
		"strict mode must stay unset; the canonical schema does not satisfy its all-required rules")
}

func TestIsTransientErrorClassification(t *testing.T) {
	c := &Client{provider: "openai"}

	assert.True(t, c.IsTransientError(errors.New("429 Too Many Requests")))
	assert.True(t, c.IsTransientError(errors.New("503 Service Unavailable")))
	assert.True(t, c.IsTransientError(errors.New("dial tcp: connection refused")))
	assert.False(t, c.IsTransientError(errors.New("401 Unauthorized")))
	assert.False(t, c.IsTransientError(nil))
}
