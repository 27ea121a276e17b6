package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtbrown6/language-storygen/pkg/model"
)

func TestLogin(t *testing.T) {
	expires := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token":     "tok-123",
			"expiresAt": expires,
		})
	}))
	defer server.Close()

	c := New(server.URL)

	result, err := c.Login(context.Background(), "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, expires, result.ExpiresAt.UTC())

	_, err = c.Login(context.Background(), "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid password")
	assert.Contains(t, err.Error(), "401")
}

func TestSetTokenSendsBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]*model.StudyItem{})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("tok-123")

	_, err := c.ListStudyItems(context.Background())
	require.NoError(t, err)
}

func TestGenerateStory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.Equal(t, "/story/generate", r.URL.Path)

		var params model.GenerationParameters
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "at the market", params.Scenario)
		assert.Equal(t, "B1", params.Level)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"story":   "María compró manzanas.",
			"markup": []model.MarkupSpan{
				{Type: model.SpanSelectedVerb, Start: 6, End: 12, Text: "compró"},
			},
			"parameters": params,
		})
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.GenerateStory(context.Background(), model.GenerationParameters{
		Scenario: "at the market",
		Level:    "B1",
	})
	require.NoError(t, err)
	assert.Equal(t, "María compró manzanas.", result.Story)
	require.Len(t, result.Markup, 1)
	assert.Equal(t, model.SpanSelectedVerb, result.Markup[0].Type)
}

func TestStoryCRUD(t *testing.T) {
	storyID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/story/save":
			var req SaveStoryRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			json.NewEncoder(w).Encode(model.Story{ID: storyID, Text: req.Story})
		case r.Method == http.MethodGet && r.URL.Path == "/story":
			json.NewEncoder(w).Encode([]*model.Story{{ID: storyID, Text: "hola"}})
		case r.Method == http.MethodDelete && r.URL.Path == "/story/"+storyID.String():
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Story not found"})
		}
	}))
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()

	saved, err := c.SaveStory(ctx, SaveStoryRequest{Story: "hola"})
	require.NoError(t, err)
	assert.Equal(t, storyID, saved.ID)

	stories, err := c.ListStories(ctx)
	require.NoError(t, err)
	require.Len(t, stories, 1)

	require.NoError(t, c.DeleteStory(ctx, storyID))

	err = c.DeleteStory(ctx, uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Story not found")
}

func TestErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.RandomScenario(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestPronounce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.Equal(t, "/audio/pronounce", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":         true,
			"original_word":   "apple",
			"translated_word": "manzana",
			"audio":           "bW9jaw==",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.Pronounce(context.Background(), "apple", "she ate an apple")
	require.NoError(t, err)
	assert.Equal(t, "manzana", result.TranslatedWord)
	assert.Equal(t, "bW9jaw==", result.Audio)
}
