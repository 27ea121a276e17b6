package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/ai"
	"github.com/jtbrown6/language-storygen/internal/prompt"
)

const (
	translationTemperature = 0.3
	inlineMaxTokens        = 100
	fullMaxTokens          = 1500
)

// TranslationService translates Spanish text to English through the chat
// vendor. No caching between calls; callers own memoization if they want it.
type TranslationService struct {
	chat   ai.ChatClient
	logger *zap.Logger
}

// NewTranslationService creates a TranslationService.
func NewTranslationService(chat ai.ChatClient, logger *zap.Logger) *TranslationService {
	return &TranslationService{
		chat:   chat,
		logger: logger.Named("TranslationService"),
	}
}

// TranslateInline translates a word or short phrase, preferring the
// whole-phrase reading over word-by-word. Context is optional.
func (s *TranslationService) TranslateInline(ctx context.Context, text, surrounding string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: text to translate is required", ErrValidation)
	}

	translation, _, err := s.chat.Complete(ctx, ai.ChatRequest{
		SystemPrompt: prompt.TranslatorSystemPrompt,
		UserPrompt:   prompt.InlineTranslation(text, surrounding),
		Temperature:  translationTemperature,
		MaxTokens:    inlineMaxTokens,
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug("Inline translation completed", zap.String("text", text))
	return translation, nil
}

// TranslateFull translates a complete story, preserving tone and style.
func (s *TranslationService) TranslateFull(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: text to translate is required", ErrValidation)
	}

	translation, _, err := s.chat.Complete(ctx, ai.ChatRequest{
		SystemPrompt: prompt.TranslatorSystemPrompt,
		UserPrompt:   prompt.FullTranslation(text),
		Temperature:  translationTemperature,
		MaxTokens:    fullMaxTokens,
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug("Full translation completed", zap.Int("textLength", len(text)))
	return translation, nil
}
