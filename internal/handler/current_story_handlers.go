package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jtbrown6/language-storygen/pkg/model"
)

type saveCurrentStoryRequest struct {
	DeviceID    string                     `json:"deviceId"`
	Story       string                     `json:"story"`
	Markup      []model.MarkupSpan         `json:"markup"`
	Parameters  model.GenerationParameters `json:"parameters"`
	Translation string                     `json:"translation"`
}

func (h *Handler) saveCurrentStory(c *gin.Context) {
	var req saveCurrentStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}
	if req.DeviceID == "" || req.Story == "" {
		c.JSON(http.StatusBadRequest, APIError{Error: "Device ID and story content are required"})
		return
	}

	snapshot := &model.CurrentStory{
		ID:          uuid.New(),
		DeviceID:    req.DeviceID,
		Text:        req.Story,
		Markup:      model.SanitizeMarkup(req.Story, req.Markup),
		Parameters:  req.Parameters,
		Translation: req.Translation,
		SavedAt:     time.Now().UTC(),
	}

	if err := h.currentStory.SaveSnapshot(c.Request.Context(), snapshot); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

func (h *Handler) getCurrentStory(c *gin.Context) {
	deviceID := c.Param("deviceId")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, APIError{Error: "Device ID is required"})
		return
	}

	snapshot, err := h.currentStory.Latest(c.Request.Context(), deviceID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) deleteCurrentStories(c *gin.Context) {
	deviceID := c.Param("deviceId")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, APIError{Error: "Device ID is required"})
		return
	}

	count, err := h.currentStory.Purge(c.Request.Context(), deviceID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Deleted %d current stories for this device", count),
	})
}
