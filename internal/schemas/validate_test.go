package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateNarrative tests the single-narrative schema
func TestValidateNarrative(t *testing.T) {
	valid := []byte(`{"type": "general_employer", "title": "Disclosure", "content": "text"}`)
	assert.NoError(t, Validate(SingleNarrative, valid))

	missing := []byte(`{"type": "general_employer", "title": "Disclosure"}`)
	err := Validate(SingleNarrative, missing)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, SingleNarrative, ve.Schema)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, err.Error(), "does not match")

	badType := []byte(`{"type": "sympathetic", "title": "t", "content": "c"}`)
	assert.Error(t, Validate(SingleNarrative, badType))
}

// TestValidateNarrativeList tests the list schema bounds
func TestValidateNarrativeList(t *testing.T) {
	one := []byte(`[{"type": "minimal_disclosure", "title": "t", "content": "c"}]`)
	assert.NoError(t, Validate(NarrativeList, one))

	empty := []byte(`[]`)
	assert.Error(t, Validate(NarrativeList, empty))

	notArray := []byte(`{"type": "minimal_disclosure", "title": "t", "content": "c"}`)
	assert.Error(t, Validate(NarrativeList, notArray))
}

// TestValidateLetter tests the letter schema
func TestValidateLetter(t *testing.T) {
	assert.NoError(t, Validate(Letter, []byte(`{"title": "Response", "content": "Dear"}`)))
	assert.Error(t, Validate(Letter, []byte(`{"title": "Response"}`)))
}

// TestValidateUnknownSchema tests the missing-schema error
func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema")
}

// TestValidateMalformedPayload tests non-JSON input
func TestValidateMalformedPayload(t *testing.T) {
	assert.Error(t, Validate(Letter, []byte(`not json`)))
}
