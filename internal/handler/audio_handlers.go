package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type pronounceRequest struct {
	Text    string `json:"text"`
	Context string `json:"context"`
}

func (h *Handler) pronounce(c *gin.Context) {
	var req pronounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.audio.Pronounce(c.Request.Context(), req.Text, req.Context)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"original_word":   result.Original,
		"translated_word": result.Translated,
		"audio":           result.AudioBase64,
	})
}

type storyAudioRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
}

func (h *Handler) storyAudio(c *gin.Context) {
	var req storyAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.audio.StoryAudio(c.Request.Context(), req.Text, req.Voice, req.Speed)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"text":    req.Text,
		"audio":   result.AudioBase64,
		"voice":   result.Voice,
		"speed":   result.Speed,
	})
}
