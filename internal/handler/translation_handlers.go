package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type translateRequest struct {
	Text    string `json:"text"`
	Context string `json:"context"`
}

func (h *Handler) translateInline(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}

	translation, err := h.translation.TranslateInline(c.Request.Context(), req.Text, req.Context)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"original":    req.Text,
		"translation": translation,
	})
}

func (h *Handler) translateFull(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}

	translation, err := h.translation.TranslateFull(c.Request.Context(), req.Text)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"original":    req.Text,
		"translation": translation,
	})
}
