package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanTypeUnmarshal(t *testing.T) {
	var span MarkupSpan
	err := json.Unmarshal([]byte(`{"type":"verb","start":0,"end":4,"text":"come"}`), &span)
	require.NoError(t, err)
	assert.Equal(t, SpanVerb, span.Type)

	err = json.Unmarshal([]byte(`{"type":"noun","start":0,"end":4,"text":"casa"}`), &span)
	assert.Error(t, err)
}

func TestSanitizeMarkup(t *testing.T) {
	story := "María come manzanas"

	spans := []MarkupSpan{
		{Type: SpanVerb, Start: 6, End: 10, Text: "come"},
		{Type: SpanVerb, Start: -1, End: 4},
		{Type: SpanVerb, Start: 10, End: 10},
		{Type: SpanVerb, Start: 12, End: 8},
		{Type: SpanIdiom, Start: 0, End: len(story) + 5},
		{Type: SpanType("bogus"), Start: 0, End: 5},
	}

	got := SanitizeMarkup(story, spans)
	require.Len(t, got, 1)
	assert.Equal(t, 6, got[0].Start)
	assert.Equal(t, 10, got[0].End)
}

func TestSanitizeMarkupOverlapAllowed(t *testing.T) {
	story := "se levanta temprano"
	spans := []MarkupSpan{
		{Type: SpanReflexiveVerb, Start: 0, End: 10, Text: "se levanta"},
		{Type: SpanVerb, Start: 3, End: 10, Text: "levanta"},
	}
	got := SanitizeMarkup(story, spans)
	assert.Len(t, got, 2)
}

func TestSanitizeMarkupEmpty(t *testing.T) {
	assert.Empty(t, SanitizeMarkup("", nil))
	assert.Empty(t, SanitizeMarkup("", []MarkupSpan{{Type: SpanVerb, Start: 0, End: 1}}))
}
