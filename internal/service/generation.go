package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/ai"
	"github.com/jtbrown6/language-storygen/internal/prompt"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

const (
	generationTemperature = 0.7
	generationMaxTokens   = 1500
)

// GenerationService produces stories and conversations via the chat vendor.
type GenerationService struct {
	chat   ai.ChatClient
	logger *zap.Logger
}

// NewGenerationService creates a GenerationService.
func NewGenerationService(chat ai.ChatClient, logger *zap.Logger) *GenerationService {
	return &GenerationService{
		chat:   chat,
		logger: logger.Named("GenerationService"),
	}
}

// structuredResponse is the JSON shape the vendor is asked to produce.
type structuredResponse struct {
	Text   string          `json:"text"`
	Markup json.RawMessage `json:"markup"`
}

// Generate validates the parameters, runs one chat-completion call and
// returns the story with sanitized markup. When the vendor's response is
// not the requested JSON shape the raw text is returned with empty
// markup instead of an error. No retries.
func (s *GenerationService) Generate(ctx context.Context, params model.GenerationParameters) (*model.GenerationResult, error) {
	if params.Scenario == "" || params.Level == "" {
		return nil, fmt.Errorf("%w: scenario and level are required", ErrValidation)
	}
	if params.ContentType == "" {
		params.ContentType = model.ContentTypeStory
	}

	userPrompt := prompt.Build(params)
	systemPrompt := prompt.SystemPrompt(params.ContentType)

	content, usage, err := s.chat.Complete(ctx, ai.ChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  generationTemperature,
		MaxTokens:    generationMaxTokens,
		JSONObject:   true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Story generated",
		zap.String("scenario", params.Scenario),
		zap.String("level", params.Level),
		zap.Int("totalTokens", usage.TotalTokens))

	return s.parseResponse(content), nil
}

// parseResponse extracts text and markup from the vendor's reply. Any
// parse or shape failure degrades to the raw text with empty markup;
// this is the sole fallback and it is silent.
func (s *GenerationService) parseResponse(content string) *model.GenerationResult {
	fallback := &model.GenerationResult{Story: content, Markup: []model.MarkupSpan{}}

	var parsed structuredResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || parsed.Text == "" || parsed.Markup == nil {
		s.logger.Warn("Vendor response is not structured JSON, falling back to raw text",
			zap.Int("contentLength", len(content)))
		return fallback
	}

	var spans []model.MarkupSpan
	if err := json.Unmarshal(parsed.Markup, &spans); err != nil {
		s.logger.Warn("Markup array failed to decode, falling back to raw text", zap.Error(err))
		return fallback
	}

	return &model.GenerationResult{
		Story:  parsed.Text,
		Markup: model.SanitizeMarkup(parsed.Text, spans),
	}
}
