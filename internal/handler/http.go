package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/ai"
	"github.com/jtbrown6/language-storygen/internal/middleware"
	"github.com/jtbrown6/language-storygen/internal/repository"
	"github.com/jtbrown6/language-storygen/internal/service"
	"github.com/jtbrown6/language-storygen/pkg/model"
)

// APIError is the standard error response shape.
type APIError struct {
	Error string `json:"error"`
}

// Handler wires the HTTP API to the services and repositories.
type Handler struct {
	generation   *service.GenerationService
	translation  *service.TranslationService
	audio        *service.AudioService
	auth         *service.AuthService
	stories      repository.StoryRepository
	studyList    repository.StudyListRepository
	currentStory repository.CurrentStoryRepository
	logger       *zap.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(
	generation *service.GenerationService,
	translation *service.TranslationService,
	audio *service.AudioService,
	auth *service.AuthService,
	stories repository.StoryRepository,
	studyList repository.StudyListRepository,
	currentStory repository.CurrentStoryRepository,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		generation:   generation,
		translation:  translation,
		audio:        audio,
		auth:         auth,
		stories:      stories,
		studyList:    studyList,
		currentStory: currentStory,
		logger:       logger.Named("Handler"),
	}
}

// NewRouter builds the gin engine with middleware and all routes.
func (h *Handler) NewRouter(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ZapLogging(h.logger))

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(router)

	router.GET("/health", h.health)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.login)
	}

	requireToken := middleware.RequireToken(h.auth, h.logger)

	storyGroup := router.Group("/story", requireToken)
	{
		storyGroup.POST("/generate", h.generateStory)
		storyGroup.GET("/random-scenario", h.randomScenario)
		storyGroup.POST("/save", h.saveStory)
		storyGroup.GET("", h.listStories)
		storyGroup.GET("/:id", h.getStory)
		storyGroup.DELETE("/:id", h.deleteStory)
		storyGroup.POST("/:id/translation", h.attachStoryTranslation)
	}

	translateGroup := router.Group("/translate", requireToken)
	{
		translateGroup.POST("/inline", h.translateInline)
		translateGroup.POST("/full", h.translateFull)
	}

	studyListGroup := router.Group("/study-list", requireToken)
	{
		studyListGroup.GET("", h.listStudyItems)
		studyListGroup.GET("/:id", h.getStudyItem)
		studyListGroup.POST("", h.addStudyItem)
		studyListGroup.DELETE("/:id", h.deleteStudyItem)
	}

	audioGroup := router.Group("/audio", requireToken)
	{
		audioGroup.POST("/pronounce", h.pronounce)
		audioGroup.POST("/story", h.storyAudio)
	}

	currentStoryGroup := router.Group("/current-story", requireToken)
	{
		currentStoryGroup.GET("/:deviceId", h.getCurrentStory)
		currentStoryGroup.POST("", h.saveCurrentStory)
		currentStoryGroup.DELETE("/:deviceId", h.deleteCurrentStories)
	}

	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleServiceError maps service and repository errors to HTTP responses.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, service.ErrValidation):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Error: err.Error()}
	case errors.Is(err, service.ErrInvalidPassword):
		statusCode = http.StatusUnauthorized
		apiErr = APIError{Error: "invalid password"}
	case errors.Is(err, model.ErrNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Error: "resource not found"}
	case errors.Is(err, model.ErrDuplicateStudyItem):
		statusCode = http.StatusConflict
		apiErr = APIError{Error: "This item already exists in your study list"}
	case errors.Is(err, ai.ErrChatFailed), errors.Is(err, ai.ErrSpeechFailed):
		statusCode = http.StatusBadGateway
		apiErr = APIError{Error: err.Error()}
	default:
		h.logger.Error("Unhandled service error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Error: "internal server error"}
	}

	c.JSON(statusCode, apiErr)
}
