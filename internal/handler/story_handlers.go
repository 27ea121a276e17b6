package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/prompt"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

type generateStoryResponse struct {
	Success    bool                       `json:"success"`
	Story      string                     `json:"story"`
	Markup     []model.MarkupSpan         `json:"markup"`
	Parameters model.GenerationParameters `json:"parameters"`
}

func (h *Handler) generateStory(c *gin.Context) {
	var params model.GenerationParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.generation.Generate(c.Request.Context(), params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, generateStoryResponse{
		Success:    true,
		Story:      result.Story,
		Markup:     result.Markup,
		Parameters: params,
	})
}

func (h *Handler) randomScenario(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenario": prompt.RandomScenario()})
}

type saveStoryRequest struct {
	Story      string                     `json:"story"`
	Markup     []model.MarkupSpan         `json:"markup"`
	Parameters model.GenerationParameters `json:"parameters"`
}

func (h *Handler) saveStory(c *gin.Context) {
	var req saveStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}
	if req.Story == "" {
		c.JSON(http.StatusBadRequest, APIError{Error: "Story content is required"})
		return
	}

	story := &model.Story{
		ID:         uuid.New(),
		Text:       req.Story,
		Markup:     model.SanitizeMarkup(req.Story, req.Markup),
		Parameters: req.Parameters,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.stories.Save(c.Request.Context(), story); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, story)
}

func (h *Handler) listStories(c *gin.Context) {
	stories, err := h.stories.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *Handler) getStory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid story id"})
		return
	}

	story, err := h.stories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *Handler) deleteStory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid story id"})
		return
	}

	if err := h.stories.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Story deleted successfully"})
}

// attachStoryTranslation translates a saved story in full and persists
// the result on the story record.
func (h *Handler) attachStoryTranslation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid story id"})
		return
	}

	story, err := h.stories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	translation, err := h.translation.TranslateFull(c.Request.Context(), story.Text)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.stories.AttachTranslation(c.Request.Context(), id, translation); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.logger.Info("Story translation attached", zap.String("storyID", id.String()))
	c.JSON(http.StatusOK, gin.H{"success": true, "translation": translation})
}
