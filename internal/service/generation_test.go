package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/ai"
	"github.com/jtbrown6/language-storygen/internal/mocks"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

func validParams() model.GenerationParameters {
	return model.GenerationParameters{
		Scenario:    "Un viaje a Barcelona",
		ContentType: model.ContentTypeStory,
		Level:       "A2",
	}
}

func TestGenerateValidation(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewGenerationService(chat, zap.NewNop())

	_, err := svc.Generate(context.Background(), model.GenerationParameters{Level: "A1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Generate(context.Background(), model.GenerationParameters{Scenario: "Una cena"})
	assert.ErrorIs(t, err, ErrValidation)

	chat.AssertNotCalled(t, "Complete")
}

func TestGenerateStructuredResponse(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewGenerationService(chat, zap.NewNop())

	content := `{"text":"María come manzanas","markup":[{"type":"verb","start":6,"end":10,"text":"come"}]}`
	chat.On("Complete", mock.Anything, mock.MatchedBy(func(req ai.ChatRequest) bool {
		return req.JSONObject && req.Temperature == float32(generationTemperature) && req.MaxTokens == generationMaxTokens
	})).Return(content, ai.Usage{TotalTokens: 42}, nil)

	result, err := svc.Generate(context.Background(), validParams())
	require.NoError(t, err)
	assert.Equal(t, "María come manzanas", result.Story)
	require.Len(t, result.Markup, 1)
	assert.Equal(t, model.SpanVerb, result.Markup[0].Type)

	chat.AssertExpectations(t)
}

func TestGenerateDropsOutOfBoundsSpans(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewGenerationService(chat, zap.NewNop())

	content := `{"text":"Hola","markup":[{"type":"verb","start":0,"end":400,"text":"x"},{"type":"verb","start":0,"end":4,"text":"Hola"}]}`
	chat.On("Complete", mock.Anything, mock.Anything).Return(content, ai.Usage{}, nil)

	result, err := svc.Generate(context.Background(), validParams())
	require.NoError(t, err)
	require.Len(t, result.Markup, 1)
	assert.Equal(t, 4, result.Markup[0].End)
}

func TestGenerateRawTextFallback(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewGenerationService(chat, zap.NewNop())

	raw := "Había una vez un gato que vivía en Barcelona."
	chat.On("Complete", mock.Anything, mock.Anything).Return(raw, ai.Usage{}, nil)

	result, err := svc.Generate(context.Background(), validParams())
	require.NoError(t, err)
	assert.Equal(t, raw, result.Story)
	assert.Empty(t, result.Markup)
	assert.NotNil(t, result.Markup)
}

func TestGenerateFallbackOnUnknownSpanType(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewGenerationService(chat, zap.NewNop())

	content := `{"text":"Hola","markup":[{"type":"adjective","start":0,"end":4,"text":"Hola"}]}`
	chat.On("Complete", mock.Anything, mock.Anything).Return(content, ai.Usage{}, nil)

	result, err := svc.Generate(context.Background(), validParams())
	require.NoError(t, err)
	assert.Equal(t, content, result.Story)
	assert.Empty(t, result.Markup)
}

func TestGenerateVendorError(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewGenerationService(chat, zap.NewNop())

	chat.On("Complete", mock.Anything, mock.Anything).
		Return("", ai.Usage{}, errors.New("chat completion failed: rate limited")).Once()

	_, err := svc.Generate(context.Background(), validParams())
	assert.Error(t, err)

	// No retry: exactly one vendor call.
	chat.AssertNumberOfCalls(t, "Complete", 1)
}

func TestGenerateDefaultsContentType(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewGenerationService(chat, zap.NewNop())

	chat.On("Complete", mock.Anything, mock.MatchedBy(func(req ai.ChatRequest) bool {
		return !strings.Contains(req.SystemPrompt, "speaker names followed by colons")
	})).Return(`{"text":"Hola","markup":[]}`, ai.Usage{}, nil)

	params := validParams()
	params.ContentType = ""
	_, err := svc.Generate(context.Background(), params)
	require.NoError(t, err)
	chat.AssertExpectations(t)
}
