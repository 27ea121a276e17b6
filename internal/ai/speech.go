package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/config"
)

// ErrSpeechFailed marks any failure of the TTS vendor.
var ErrSpeechFailed = errors.New("speech synthesis failed")

// SpeechRequest is a single text-to-speech call.
type SpeechRequest struct {
	Input string
	Voice string
	Speed float64
}

// SpeechClient is the text-to-speech vendor interface.
type SpeechClient interface {
	Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error)
}

type openAISpeechClient struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

// NewSpeechClient builds the TTS client. Speech always goes through the
// OpenAI-compatible endpoint regardless of the chat client type.
func NewSpeechClient(cfg *config.Config, logger *zap.Logger) SpeechClient {
	openaiConfig := openaigo.DefaultConfig(cfg.AIAPIKey)
	openaiConfig.BaseURL = cfg.AIBaseURL
	openaiConfig.HTTPClient = &http.Client{Timeout: cfg.AITimeout}
	return &openAISpeechClient{
		client: openaigo.NewClientWithConfig(openaiConfig),
		model:  cfg.TTSModel,
		logger: logger.Named("SpeechClient"),
	}
}

func (c *openAISpeechClient) Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error) {
	if req.Input == "" {
		ttsRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return nil, fmt.Errorf("%w: input is empty", ErrSpeechFailed)
	}

	start := time.Now()
	resp, err := c.client.CreateSpeech(ctx, openaigo.CreateSpeechRequest{
		Model: openaigo.SpeechModel(c.model),
		Input: req.Input,
		Voice: openaigo.SpeechVoice(req.Voice),
		Speed: req.Speed,
	})
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("TTS request failed",
			zap.String("model", c.model), zap.Duration("duration", duration), zap.Error(err))
		ttsRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrSpeechFailed, err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		ttsRequestsTotal.WithLabelValues(c.model, "error_read").Inc()
		return nil, fmt.Errorf("%w: failed to read audio stream: %v", ErrSpeechFailed, err)
	}

	ttsRequestsTotal.WithLabelValues(c.model, "success").Inc()
	ttsRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())

	c.logger.Debug("TTS request succeeded",
		zap.String("voice", req.Voice),
		zap.Float64("speed", req.Speed),
		zap.Int("audioBytes", len(audio)),
		zap.Duration("duration", duration))

	return audio, nil
}
