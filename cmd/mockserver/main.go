package main

import (
	"context"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/voxscribe/server/adapters/stt"
	"github.com/voxscribe/server/internal/api"
	"github.com/voxscribe/server/internal/config"
	"github.com/voxscribe/server/usecase"
)

// The mock variant serves the same endpoints with canned transcripts so
// CI and local development work without Google Cloud credentials.
func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.LoadMock(logger)

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		logger.Fatal("Failed to create uploads directory", zap.Error(err))
	}

	speechToText := stt.NewMockSpeechToText(logger)

	// The mock recognizer has no payload limits; never route uploads
	// to the long-running path
	service := usecase.NewTranscriptionService(speechToText, nil, nil, nil, usecase.Options{
		LongAudioSeconds: math.MaxFloat64,
		LongAudioBytes:   math.MaxInt64,
		FFmpegPath:       cfg.FFmpegPath,
	}, logger)

	handler := api.NewMockHandler(service, speechToText, cfg.UploadsDir, cfg.SampleAudioURI, logger)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api.InitRoutes(e, handler)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Mock transcription server started", zap.String("port", cfg.Port))

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
