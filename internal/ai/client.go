package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/config"
)

// ErrChatFailed marks any failure of the chat-completion vendor.
var ErrChatFailed = errors.New("chat completion failed")

// Usage reports token consumption for a single request. For vendors that
// omit usage data the counts are estimated with tiktoken.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatRequest is a single chat-completion call.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
	// JSONObject asks the vendor for a structured JSON response.
	JSONObject bool
}

// ChatClient is the chat-completion vendor interface.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, Usage, error)
}

// --- OpenAI implementation ---

type openAIChatClient struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

func (c *openAIChatClient) Complete(ctx context.Context, req ChatRequest) (string, Usage, error) {
	usage := Usage{}

	if strings.TrimSpace(req.SystemPrompt) == "" {
		aiRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", usage, fmt.Errorf("%w: system prompt is empty", ErrChatFailed)
	}

	messages := []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleSystem, Content: req.SystemPrompt},
	}
	if req.UserPrompt != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role: openaigo.ChatMessageRoleUser, Content: req.UserPrompt,
		})
	}

	chatReq := openaigo.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONObject {
		chatReq.ResponseFormat = &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Chat completion request failed",
			zap.String("model", c.model), zap.Duration("duration", duration), zap.Error(err))
		aiRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", usage, fmt.Errorf("%w: %v", ErrChatFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		aiRequestsTotal.WithLabelValues(c.model, "error_empty_response").Inc()
		return "", usage, fmt.Errorf("%w: empty response", ErrChatFailed)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	aiRequestsTotal.WithLabelValues(c.model, "success").Inc()
	aiRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())

	if resp.Usage.TotalTokens > 0 {
		usage = Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	} else {
		usage = estimateUsage(c.model, req.SystemPrompt+req.UserPrompt, content)
	}
	observeUsage(c.model, usage)

	c.logger.Debug("Chat completion succeeded",
		zap.String("model", c.model),
		zap.Duration("duration", duration),
		zap.Int("totalTokens", usage.TotalTokens),
		zap.Int("responseLength", len(content)))

	return content, usage, nil
}

// estimateUsage falls back to tiktoken when the vendor omits usage data.
func estimateUsage(model, prompt, completion string) Usage {
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return Usage{}
	}
	pt := len(tke.Encode(prompt, nil, nil))
	ct := len(tke.Encode(completion, nil, nil))
	return Usage{PromptTokens: pt, CompletionTokens: ct, TotalTokens: pt + ct}
}

// --- Ollama implementation ---

type ollamaChatClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func newOllamaChatClient(cfg *config.Config, logger *zap.Logger) (ChatClient, error) {
	httpClient := &http.Client{Timeout: cfg.AITimeout}

	// api.NewClient wants the URL without the /v1 suffix.
	baseURL := strings.TrimSuffix(cfg.AIBaseURL, "/v1")
	baseURL = strings.TrimSuffix(baseURL, "/")

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ollama base URL %q: %w", baseURL, err)
	}

	return &ollamaChatClient{
		client:  api.NewClient(parsedURL, httpClient),
		model:   cfg.AIModel,
		timeout: cfg.AITimeout,
		logger:  logger.Named("OllamaClient"),
	}, nil
}

func (c *ollamaChatClient) Complete(ctx context.Context, req ChatRequest) (string, Usage, error) {
	usage := Usage{}

	if strings.TrimSpace(req.SystemPrompt) == "" {
		aiRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", usage, fmt.Errorf("%w: system prompt is empty", ErrChatFailed)
	}

	messages := []api.Message{
		{Role: "system", Content: req.SystemPrompt},
	}
	if req.UserPrompt != "" {
		messages = append(messages, api.Message{Role: "user", Content: req.UserPrompt})
	}

	stream := false
	chatReq := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
		},
	}
	if req.JSONObject {
		chatReq.Format = json.RawMessage(`"json"`)
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	var resp api.ChatResponse
	err := c.client.Chat(requestCtx, chatReq, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Ollama chat request failed",
			zap.String("model", c.model), zap.Duration("duration", duration), zap.Error(err))
		aiRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", usage, fmt.Errorf("%w: %v", ErrChatFailed, err)
	}

	if resp.Message.Content == "" {
		aiRequestsTotal.WithLabelValues(c.model, "error_empty_response").Inc()
		return "", usage, fmt.Errorf("%w: empty response", ErrChatFailed)
	}

	aiRequestsTotal.WithLabelValues(c.model, "success").Inc()
	aiRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())

	usage = Usage{
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
		TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
	}
	observeUsage(c.model, usage)

	return strings.TrimSpace(resp.Message.Content), usage, nil
}

// --- Factory ---

// NewChatClient builds a chat client according to AI_CLIENT_TYPE.
func NewChatClient(cfg *config.Config, logger *zap.Logger) (ChatClient, error) {
	switch strings.ToLower(cfg.AIClientType) {
	case "openai":
		openaiConfig := openaigo.DefaultConfig(cfg.AIAPIKey)
		openaiConfig.BaseURL = cfg.AIBaseURL
		openaiConfig.HTTPClient = &http.Client{Timeout: cfg.AITimeout}
		client := openaigo.NewClientWithConfig(openaiConfig)
		logger.Info("OpenAI chat client created",
			zap.String("baseURL", cfg.AIBaseURL),
			zap.String("model", cfg.AIModel),
			zap.Duration("timeout", cfg.AITimeout))
		return &openAIChatClient{
			client: client,
			model:  cfg.AIModel,
			logger: logger.Named("OpenAIClient"),
		}, nil
	case "ollama":
		logger.Info("Ollama chat client created",
			zap.String("baseURL", cfg.AIBaseURL),
			zap.String("model", cfg.AIModel))
		return newOllamaChatClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown AI client type: %q", cfg.AIClientType)
	}
}
