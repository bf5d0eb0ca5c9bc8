package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/voxscribe/server/adapters/gcs"
	"github.com/voxscribe/server/adapters/llm"
	"github.com/voxscribe/server/adapters/mongo"
	"github.com/voxscribe/server/adapters/stt"
	"github.com/voxscribe/server/domain/repositories"
	"github.com/voxscribe/server/internal/api"
	"github.com/voxscribe/server/internal/auth"
	"github.com/voxscribe/server/internal/config"
	"github.com/voxscribe/server/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load(logger)
	ctx := context.Background()

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		logger.Fatal("Failed to create uploads directory", zap.Error(err))
	}

	// Initialize the Google Cloud clients. The server stays up when
	// they fail so /health can report the state, matching a broken or
	// missing GOOGLE_APPLICATION_CREDENTIALS setup.
	var speechToText repositories.SpeechToText
	speechReady := false
	if googleSTT, err := stt.NewGoogleSpeechToText(ctx, logger); err != nil {
		logger.Error("Failed to initialize Google Cloud Speech client", zap.Error(err))
		speechToText = stt.NewUnavailableSpeechToText(err)
	} else {
		speechToText = googleSTT
		speechReady = true
		defer googleSTT.Close()
	}

	var objectStorage repositories.ObjectStorage
	storageReady := false
	if storage, err := gcs.NewStorage(ctx, cfg.GCSBucket, logger); err != nil {
		logger.Error("Failed to initialize Google Cloud Storage client", zap.Error(err))
	} else {
		objectStorage = storage
		storageReady = true
		defer storage.Close()
	}

	logger.Info("Google Cloud clients initialized",
		zap.Bool("speech", speechReady),
		zap.Bool("storage", storageReady))

	// Optional transcription history
	var history repositories.TranscriptionRepository
	if cfg.HistoryEnabled() {
		mongoClient, err := mongo.NewClient(cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			logger.Error("Failed to connect to MongoDB, history disabled", zap.Error(err))
		} else {
			history = mongo.NewTranscriptionRepository(mongoClient.Database)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				mongoClient.Close(shutdownCtx)
			}()
		}
	}

	// Optional LLM transcript cleanup
	var cleaner repositories.TranscriptCleaner
	if cfg.CleanupEnabled() {
		geminiCleaner, err := llm.NewGeminiCleaner(ctx, cfg.GeminiAPIKey, logger)
		if err != nil {
			logger.Error("Failed to initialize Gemini client, cleanup disabled", zap.Error(err))
		} else {
			cleaner = geminiCleaner
		}
	}

	// Optional bearer-token protection
	var tokens *auth.Service
	if cfg.AuthEnabled() {
		tokens = auth.NewService(cfg.JWTSecret)
		logger.Info("Bearer-token authentication enabled")
	}

	service := usecase.NewTranscriptionService(speechToText, objectStorage, history, cleaner, usecase.Options{
		LongAudioSeconds: cfg.LongAudioSeconds,
		LongAudioBytes:   cfg.LongAudioBytes,
		FFmpegPath:       cfg.FFmpegPath,
	}, logger)

	handler := api.NewHandler(service, speechToText, history, tokens,
		cfg.UploadsDir, cfg.SampleAudioURI, cfg.APIKey, speechReady, storageReady, logger)

	// Create Echo instance
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api.InitRoutes(e, handler)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Transcription server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
