package gateway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PlainJSON(t *testing.T) {
	res := Extract(`{"calories": 2200, "proteinGrams": 160}`)
	require.True(t, res.Matched)
	assert.Equal(t, float64(2200), res.Payload["calories"])
}

func TestExtract_JSONWrappedInProse(t *testing.T) {
	raw := "Sure! Here is your plan:\n```json\n{\"routineName\": \"Push Pull Legs\"}\n```\nEnjoy!"
	res := Extract(raw)
	require.True(t, res.Matched)
	assert.Equal(t, "Push Pull Legs", res.Payload["routineName"])
}

func TestExtract_NestedBracesUseOutermostSpan(t *testing.T) {
	raw := `prefix {"days": [{"day": "Mon"}, {"day": "Wed"}]} suffix`
	res := Extract(raw)
	require.True(t, res.Matched)
	days := res.Payload["days"].([]any)
	assert.Len(t, days, 2)
}

func TestExtract_NoBraces(t *testing.T) {
	assert.False(t, Extract("I cannot help with that.").Matched)
}

func TestExtract_MalformedJSON(t *testing.T) {
	assert.False(t, Extract(`{"unterminated": `).Matched)
}

func TestExtract_ReversedBraces(t *testing.T) {
	assert.False(t, Extract("} nothing here {").Matched)
}

func TestExtractForAction_PrimaryStrategyWins(t *testing.T) {
	payload, err := ExtractForAction(ActionVerifyProof, `{"verified": true, "confidence": 0.92}`)
	require.NoError(t, err)
	assert.Equal(t, 0.92, payload["confidence"])
}

func TestExtractForAction_VerificationFallbackAffirmative(t *testing.T) {
	payload, err := ExtractForAction(ActionVerifyProof, "Yes, the photo is verified as a completed workout.")
	require.NoError(t, err)
	assert.Equal(t, true, payload["verified"])
	assert.Equal(t, fallbackConfidence, payload["confidence"])
}

func TestExtractForAction_VerificationFallbackNegative(t *testing.T) {
	payload, err := ExtractForAction(ActionVerifyProof, "I cannot confirm this shows a workout.")
	require.NoError(t, err)
	assert.Equal(t, false, payload["verified"])
	assert.Equal(t, 0.0, payload["confidence"])
}

func TestExtractForAction_NonVerificationNeverGuesses(t *testing.T) {
	// "true" appears in the text, but macros must never be synthesized.
	_, err := ExtractForAction(ActionCalculateMacros, "It is true that protein matters.")
	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, ActionCalculateMacros, extractErr.Action)
}
