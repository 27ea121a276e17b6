// Package client is a Go client for the story generation API, together
// with the state coordinators the web client runs on.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/jtbrown6/language-storygen/pkg/model"
)

// Client is a thin typed wrapper over the HTTP API.
type Client struct {
	http *resty.Client
}

// New creates a Client for the given base URL.
func New(baseURL string) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetHeader("Content-Type", "application/json")
	httpClient.SetTimeout(2 * time.Minute)
	return &Client{http: httpClient}
}

// SetToken installs the bearer token used on every subsequent request.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

type apiError struct {
	Error string `json:"error"`
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Error != "" {
			return fmt.Errorf("api error (%d): %s", resp.StatusCode(), apiErr.Error)
		}
		return fmt.Errorf("api error (%d)", resp.StatusCode())
	}
	return nil
}

// LoginResult is the response of a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login exchanges the shared password for an access token. The token is
// NOT installed automatically; callers decide when to adopt it.
func (c *Client) Login(ctx context.Context, password string) (*LoginResult, error) {
	var result LoginResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"password": password}).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/auth/login")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateResult is a generated story with its markup.
type GenerateResult struct {
	Success    bool                       `json:"success"`
	Story      string                     `json:"story"`
	Markup     []model.MarkupSpan         `json:"markup"`
	Parameters model.GenerationParameters `json:"parameters"`
}

// GenerateStory runs one generation call.
func (c *Client) GenerateStory(ctx context.Context, params model.GenerationParameters) (*GenerateResult, error) {
	var result GenerateResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(params).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/story/generate")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// RandomScenario fetches one of the server's scenario suggestions.
func (c *Client) RandomScenario(ctx context.Context) (string, error) {
	var result struct {
		Scenario string `json:"scenario"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiError{}).
		Get("/story/random-scenario")
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	return result.Scenario, nil
}

// SaveStoryRequest is the payload for saving a story.
type SaveStoryRequest struct {
	Story      string                     `json:"story"`
	Markup     []model.MarkupSpan         `json:"markup"`
	Parameters model.GenerationParameters `json:"parameters"`
}

// SaveStory persists a story server-side.
func (c *Client) SaveStory(ctx context.Context, req SaveStoryRequest) (*model.Story, error) {
	var story model.Story
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&story).
		SetError(&apiError{}).
		Post("/story/save")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &story, nil
}

// ListStories returns every saved story, newest first.
func (c *Client) ListStories(ctx context.Context) ([]*model.Story, error) {
	var stories []*model.Story
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&stories).
		SetError(&apiError{}).
		Get("/story")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return stories, nil
}

// GetStory returns one saved story.
func (c *Client) GetStory(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	var story model.Story
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&story).
		SetError(&apiError{}).
		Get("/story/" + id.String())
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &story, nil
}

// DeleteStory removes a saved story.
func (c *Client) DeleteStory(ctx context.Context, id uuid.UUID) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Delete("/story/" + id.String())
	return checkResponse(resp, err)
}

// AttachStoryTranslation asks the server to translate a saved story and
// keep the result on the record.
func (c *Client) AttachStoryTranslation(ctx context.Context, id uuid.UUID) (string, error) {
	var result struct {
		Success     bool   `json:"success"`
		Translation string `json:"translation"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/story/" + id.String() + "/translation")
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	return result.Translation, nil
}

// TranslationResult is the response of both translation endpoints.
type TranslationResult struct {
	Success     bool   `json:"success"`
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

// TranslateInline translates a word or phrase with optional context.
func (c *Client) TranslateInline(ctx context.Context, text, context_ string) (*TranslationResult, error) {
	var result TranslationResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text, "context": context_}).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/translate/inline")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// TranslateFull translates a complete story.
func (c *Client) TranslateFull(ctx context.Context, text string) (*TranslationResult, error) {
	var result TranslationResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text}).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/translate/full")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListStudyItems returns the study list, newest first.
func (c *Client) ListStudyItems(ctx context.Context) ([]*model.StudyItem, error) {
	var items []*model.StudyItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&items).
		SetError(&apiError{}).
		Get("/study-list")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return items, nil
}

// AddStudyItemRequest is the payload for adding a study item.
type AddStudyItemRequest struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Context     string `json:"context,omitempty"`
}

// AddStudyItem saves a word or phrase to the study list.
func (c *Client) AddStudyItem(ctx context.Context, req AddStudyItemRequest) (*model.StudyItem, error) {
	var item model.StudyItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&item).
		SetError(&apiError{}).
		Post("/study-list")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteStudyItem removes a study item.
func (c *Client) DeleteStudyItem(ctx context.Context, id uuid.UUID) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Delete("/study-list/" + id.String())
	return checkResponse(resp, err)
}

// PronounceResult mirrors the pronunciation endpoint response.
type PronounceResult struct {
	Success        bool   `json:"success"`
	OriginalWord   string `json:"original_word"`
	TranslatedWord string `json:"translated_word"`
	Audio          string `json:"audio"`
}

// Pronounce fetches pronunciation audio for a word.
func (c *Client) Pronounce(ctx context.Context, text, context_ string) (*PronounceResult, error) {
	var result PronounceResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text, "context": context_}).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/audio/pronounce")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// StoryAudioResult mirrors the story narration endpoint response.
type StoryAudioResult struct {
	Success bool    `json:"success"`
	Audio   string  `json:"audio"`
	Voice   string  `json:"voice"`
	Speed   float64 `json:"speed"`
}

// StoryAudio fetches narration audio for a full story.
func (c *Client) StoryAudio(ctx context.Context, text, voice string, speed float64) (*StoryAudioResult, error) {
	var result StoryAudioResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"text": text, "voice": voice, "speed": speed}).
		SetResult(&result).
		SetError(&apiError{}).
		Post("/audio/story")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// CurrentStory returns the latest snapshot for a device.
func (c *Client) CurrentStory(ctx context.Context, deviceID string) (*model.CurrentStory, error) {
	var snapshot model.CurrentStory
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&snapshot).
		SetError(&apiError{}).
		Get("/current-story/" + deviceID)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// SaveCurrentStoryRequest is the payload for saving a device snapshot.
type SaveCurrentStoryRequest struct {
	DeviceID    string                     `json:"deviceId"`
	Story       string                     `json:"story"`
	Markup      []model.MarkupSpan         `json:"markup"`
	Parameters  model.GenerationParameters `json:"parameters"`
	Translation string                     `json:"translation,omitempty"`
}

// SaveCurrentStory snapshots the story a device is reading.
func (c *Client) SaveCurrentStory(ctx context.Context, req SaveCurrentStoryRequest) (*model.CurrentStory, error) {
	var snapshot model.CurrentStory
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&snapshot).
		SetError(&apiError{}).
		Post("/current-story")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// PurgeCurrentStories removes every snapshot for a device.
func (c *Client) PurgeCurrentStories(ctx context.Context, deviceID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Delete("/current-story/" + deviceID)
	return checkResponse(resp, err)
}
