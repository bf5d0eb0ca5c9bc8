package api

import (
	"github.com/labstack/echo/v4"

	ws "github.com/voxscribe/server/internal/websocket"
)

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, h *Handler) {
	e.GET("/", h.index)
	e.GET("/health", h.health)

	e.POST("/test", h.test, h.requireToken)
	e.POST("/transcribe", h.transcribe, h.requireToken)

	// Streaming transcription over websocket
	e.GET("/ws/transcribe", func(c echo.Context) error {
		return ws.HandleTranscribeStream(c, h.speechToText, h.logger)
	}, h.requireToken)

	v1 := e.Group("/api/v1")
	v1.POST("/token", h.token)

	if h.history != nil {
		v1.GET("/transcriptions", h.listTranscriptions, h.requireToken)
		v1.GET("/transcriptions/:id", h.getTranscription, h.requireToken)
	}
}
