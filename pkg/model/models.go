// Package model holds the domain records shared by the server and the
// Go client package.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ContentType selects the shape of the generated text.
type ContentType string

const (
	ContentTypeStory        ContentType = "story"
	ContentTypeConversation ContentType = "conversation"
)

// GenerationParameters describes a single generation request.
// Scenario and Level are mandatory; everything else refines the prompt.
type GenerationParameters struct {
	Scenario             string      `json:"scenario"`
	ContentType          ContentType `json:"contentType"`
	Level                string      `json:"level"`
	Verbs                []string    `json:"verbs"`
	IndirectObjectLevel  int         `json:"indirectObjectLevel"`
	ReflexiveVerbLevel   int         `json:"reflexiveVerbLevel"`
	IdiomaticExpressions bool        `json:"idiomaticExpressions"`
}

// GenerationResult is what the generation service hands back: the story
// text plus sanitized markup. Markup is empty when the model response
// could not be parsed as structured output.
type GenerationResult struct {
	Story  string       `json:"story"`
	Markup []MarkupSpan `json:"markup"`
}

// Story is a saved generation together with the parameters that produced it.
// Immutable after save except for AttachTranslation.
type Story struct {
	ID          uuid.UUID            `json:"id"`
	Text        string               `json:"text"`
	Markup      []MarkupSpan         `json:"markup"`
	Parameters  GenerationParameters `json:"parameters"`
	Translation string               `json:"translation,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// StudyItem is a word or phrase the user saved for later review.
type StudyItem struct {
	ID          uuid.UUID `json:"id"`
	Text        string    `json:"text"`
	Translation string    `json:"translation"`
	Context     string    `json:"context,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CurrentStory is a per-device snapshot of the story the user is reading.
// DeviceID is an opaque partition key; it carries no identity semantics.
type CurrentStory struct {
	ID          uuid.UUID            `json:"id"`
	DeviceID    string               `json:"deviceId"`
	Text        string               `json:"text"`
	Markup      []MarkupSpan         `json:"markup"`
	Parameters  GenerationParameters `json:"parameters"`
	Translation string               `json:"translation,omitempty"`
	SavedAt     time.Time            `json:"savedAt"`
}

// PronounceResult is the outcome of a pronunciation request: the word as
// submitted, its Spanish form, and the synthesized audio as base64 MP3.
type PronounceResult struct {
	Original    string `json:"original"`
	Translated  string `json:"translated"`
	AudioBase64 string `json:"audio"`
}

// StoryAudioResult is synthesized narration for a full story text.
type StoryAudioResult struct {
	AudioBase64 string  `json:"audio"`
	Voice       string  `json:"voice"`
	Speed       float64 `json:"speed"`
}
