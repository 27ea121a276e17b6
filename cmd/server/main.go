package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jtbrown6/language-storygen/internal/ai"
	"github.com/jtbrown6/language-storygen/internal/config"
	"github.com/jtbrown6/language-storygen/internal/database"
	"github.com/jtbrown6/language-storygen/internal/handler"
	"github.com/jtbrown6/language-storygen/internal/logger"
	"github.com/jtbrown6/language-storygen/internal/repository"
	"github.com/jtbrown6/language-storygen/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	ctx := context.Background()

	dbPool, err := database.NewPgPool(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if err := database.Migrate(dbPool, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	chatClient, err := ai.NewChatClient(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create chat client", zap.Error(err))
	}
	speechClient := ai.NewSpeechClient(cfg, zapLogger)

	storyRepo := repository.NewPgStoryRepository(dbPool, zapLogger)
	studyListRepo := repository.NewPgStudyListRepository(dbPool, zapLogger)
	currentStoryRepo := repository.NewRedisCurrentStoryRepository(redisClient, zapLogger)

	generationService := service.NewGenerationService(chatClient, zapLogger)
	translationService := service.NewTranslationService(chatClient, zapLogger)
	audioService := service.NewAudioService(chatClient, speechClient, "", zapLogger)
	authService, err := service.NewAuthService(cfg.AccessPassword, cfg.JWTSecret, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create auth service", zap.Error(err))
	}

	h := handler.NewHandler(
		generationService,
		translationService,
		audioService,
		authService,
		storyRepo,
		studyListRepo,
		currentStoryRepo,
		zapLogger,
	)
	router := h.NewRouter(cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:    cfg.ServerAddr(),
		Handler: router,
	}

	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.ServerAddr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}
