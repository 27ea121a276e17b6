package model

import (
	"encoding/json"
	"fmt"
)

// SpanType classifies a highlighted region of generated text.
// The set is closed: decoding an unknown value fails instead of
// carrying an arbitrary string through the system.
type SpanType string

const (
	SpanSelectedVerb  SpanType = "selected-verb"
	SpanReflexiveVerb SpanType = "reflexive-verb"
	SpanIdiom         SpanType = "idiom"
	SpanVerb          SpanType = "verb"
)

// Valid reports whether t is one of the known span types.
func (t SpanType) Valid() bool {
	switch t {
	case SpanSelectedVerb, SpanReflexiveVerb, SpanIdiom, SpanVerb:
		return true
	}
	return false
}

// UnmarshalJSON rejects span types outside the known set.
func (t *SpanType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	st := SpanType(s)
	if !st.Valid() {
		return fmt.Errorf("unknown span type %q", s)
	}
	*t = st
	return nil
}

// MarkupSpan marks a byte range of the story text. Offsets come from the
// language model and are untrusted until passed through SanitizeMarkup.
type MarkupSpan struct {
	Type  SpanType `json:"type"`
	Start int      `json:"start"`
	End   int      `json:"end"`
	Text  string   `json:"text"`
}

// SanitizeMarkup drops spans whose offsets cannot index the story text:
// negative start, empty or inverted range, or end past the text length.
// Overlapping spans are allowed; the Text field is advisory and is not
// checked against the slice. Never panics on hostile input.
func SanitizeMarkup(story string, spans []MarkupSpan) []MarkupSpan {
	out := make([]MarkupSpan, 0, len(spans))
	for _, s := range spans {
		if s.Start < 0 || s.End <= s.Start || s.End > len(story) {
			continue
		}
		if !s.Type.Valid() {
			continue
		}
		out = append(out, s)
	}
	return out
}
