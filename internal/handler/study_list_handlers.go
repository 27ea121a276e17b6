package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jtbrown6/language-storygen/pkg/model"
)

type addStudyItemRequest struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Context     string `json:"context"`
}

func (h *Handler) addStudyItem(c *gin.Context) {
	var req addStudyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error()})
		return
	}
	if req.Text == "" || req.Translation == "" {
		c.JSON(http.StatusBadRequest, APIError{Error: "Text and translation are required"})
		return
	}

	item := &model.StudyItem{
		ID:          uuid.New(),
		Text:        req.Text,
		Translation: req.Translation,
		Context:     req.Context,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.studyList.Add(c.Request.Context(), item); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) listStudyItems(c *gin.Context) {
	items, err := h.studyList.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getStudyItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid study item id"})
		return
	}

	item, err := h.studyList.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) deleteStudyItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid study item id"})
		return
	}

	if err := h.studyList.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Study item removed successfully"})
}
