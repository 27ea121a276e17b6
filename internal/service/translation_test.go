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
)

func TestTranslateInlineValidation(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewTranslationService(chat, zap.NewNop())

	_, err := svc.TranslateInline(context.Background(), "", "context")
	assert.ErrorIs(t, err, ErrValidation)
	chat.AssertNotCalled(t, "Complete")
}

func TestTranslateInlineWithContext(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewTranslationService(chat, zap.NewNop())

	chat.On("Complete", mock.Anything, mock.MatchedBy(func(req ai.ChatRequest) bool {
		return strings.Contains(req.UserPrompt, `"come"`) &&
			strings.Contains(req.UserPrompt, "María come manzanas") &&
			req.Temperature == float32(translationTemperature) &&
			req.MaxTokens == inlineMaxTokens &&
			!req.JSONObject
	})).Return("eats", ai.Usage{}, nil)

	got, err := svc.TranslateInline(context.Background(), "come", "María come manzanas")
	require.NoError(t, err)
	assert.Equal(t, "eats", got)
	chat.AssertExpectations(t)
}

func TestTranslateFull(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewTranslationService(chat, zap.NewNop())

	chat.On("Complete", mock.Anything, mock.MatchedBy(func(req ai.ChatRequest) bool {
		return strings.Contains(req.UserPrompt, "maintaining the original tone and style") &&
			req.MaxTokens == fullMaxTokens
	})).Return("Once upon a time...", ai.Usage{}, nil)

	got, err := svc.TranslateFull(context.Background(), "Había una vez...")
	require.NoError(t, err)
	assert.Equal(t, "Once upon a time...", got)
}

func TestTranslateFullValidation(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewTranslationService(chat, zap.NewNop())

	_, err := svc.TranslateFull(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTranslateNoCachingBetweenCalls(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewTranslationService(chat, zap.NewNop())

	chat.On("Complete", mock.Anything, mock.Anything).Return("eats", ai.Usage{}, nil).Twice()

	_, err := svc.TranslateInline(context.Background(), "come", "")
	require.NoError(t, err)
	_, err = svc.TranslateInline(context.Background(), "come", "")
	require.NoError(t, err)

	chat.AssertNumberOfCalls(t, "Complete", 2)
}

func TestTranslateVendorError(t *testing.T) {
	chat := mocks.NewMockChatClient(t)
	svc := NewTranslationService(chat, zap.NewNop())

	chat.On("Complete", mock.Anything, mock.Anything).
		Return("", ai.Usage{}, errors.New("timeout")).Once()

	_, err := svc.TranslateInline(context.Background(), "come", "")
	assert.Error(t, err)
	chat.AssertNumberOfCalls(t, "Complete", 1)
}
