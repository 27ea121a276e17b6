package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/ai"
	"github.com/jtbrown6/language-storygen/internal/prompt"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

const (
	defaultVoice   = "nova"
	pronounceSpeed = 0.90
	storySpeed     = 0.95

	pronounceMaxTokens = 500
)

// AudioService synthesizes pronunciation clips and story narration.
// Every synthesis writes the stream to a transient file that is removed
// before returning, on success and on failure alike.
type AudioService struct {
	chat    ai.ChatClient
	speech  ai.SpeechClient
	tempDir string
	logger  *zap.Logger
}

// NewAudioService creates an AudioService. An empty tempDir falls back
// to the OS temp directory.
func NewAudioService(chat ai.ChatClient, speech ai.SpeechClient, tempDir string, logger *zap.Logger) *AudioService {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &AudioService{
		chat:    chat,
		speech:  speech,
		tempDir: tempDir,
		logger:  logger.Named("AudioService"),
	}
}

// Pronounce normalizes a word to Spanish (pass-through when already
// Spanish) and synthesizes its pronunciation with break padding around
// the word for clearer playback.
func (s *AudioService) Pronounce(ctx context.Context, text, surrounding string) (*model.PronounceResult, error) {
	word := strings.TrimSpace(text)
	if word == "" {
		return nil, fmt.Errorf("%w: missing or empty text", ErrValidation)
	}
	translated, _, err := s.chat.Complete(ctx, ai.ChatRequest{
		SystemPrompt: prompt.PronounceSystemPrompt,
		UserPrompt:   prompt.PronounceTranslation(word),
		Temperature:  translationTemperature,
		MaxTokens:    pronounceMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("translate stage: %w", err)
	}

	paddedInput := fmt.Sprintf(`<break time="300ms"/>%s<break time="200ms"/>`, translated)
	audio, err := s.synthesize(ctx, ai.SpeechRequest{
		Input: paddedInput,
		Voice: defaultVoice,
		Speed: pronounceSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesis stage: %w", err)
	}

	s.logger.Info("Pronunciation generated",
		zap.String("word", word), zap.String("translated", translated))

	return &model.PronounceResult{
		Original:    word,
		Translated:  translated,
		AudioBase64: audio,
	}, nil
}

// StoryAudio narrates a full story text. Voice and speed default to the
// pronunciation voice at a slightly faster pace.
func (s *AudioService) StoryAudio(ctx context.Context, text, voice string, speed float64) (*model.StoryAudioResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: missing or empty text for story audio", ErrValidation)
	}
	if voice == "" {
		voice = defaultVoice
	}
	if speed == 0 {
		speed = storySpeed
	}

	audio, err := s.synthesize(ctx, ai.SpeechRequest{
		Input: text,
		Voice: voice,
		Speed: speed,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesis stage: %w", err)
	}

	s.logger.Info("Story audio generated",
		zap.Int("textLength", len(text)), zap.String("voice", voice), zap.Float64("speed", speed))

	return &model.StoryAudioResult{
		AudioBase64: audio,
		Voice:       voice,
		Speed:       speed,
	}, nil
}

// synthesize runs one TTS call, spools the stream through a transient
// file and returns its contents base64-encoded. The deferred remove
// covers every exit path.
func (s *AudioService) synthesize(ctx context.Context, req ai.SpeechRequest) (string, error) {
	audio, err := s.speech.Synthesize(ctx, req)
	if err != nil {
		return "", err
	}

	tempPath := filepath.Join(s.tempDir, fmt.Sprintf("speech_%s.mp3", uuid.NewString()))
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove transient audio file",
				zap.String("path", tempPath), zap.Error(err))
		}
	}()

	if err := os.WriteFile(tempPath, audio, 0o600); err != nil {
		return "", fmt.Errorf("failed to write transient audio file: %w", err)
	}

	content, err := os.ReadFile(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to read transient audio file: %w", err)
	}

	return base64.StdEncoding.EncodeToString(content), nil
}
