package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voxscribe/server/domain/repositories"
	"github.com/voxscribe/server/internal/auth"
	"github.com/voxscribe/server/usecase"
)

const defaultLanguage = "en-US"

// Handler carries the dependencies of the HTTP endpoints. history and
// tokens are nil when the corresponding feature is disabled.
type Handler struct {
	service      *usecase.TranscriptionService
	speechToText repositories.SpeechToText
	history      repositories.TranscriptionRepository
	tokens       *auth.Service
	logger       *zap.Logger

	uploadsDir     string
	sampleAudioURI string
	apiKey         string

	// "mock" for the mock variant, empty for the real service
	mode string

	speechReady  bool
	storageReady bool
}

// NewHandler creates the endpoint handler for the real service
func NewHandler(
	service *usecase.TranscriptionService,
	stt repositories.SpeechToText,
	history repositories.TranscriptionRepository,
	tokens *auth.Service,
	uploadsDir, sampleAudioURI, apiKey string,
	speechReady, storageReady bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		service:        service,
		speechToText:   stt,
		history:        history,
		tokens:         tokens,
		logger:         logger,
		uploadsDir:     uploadsDir,
		sampleAudioURI: sampleAudioURI,
		apiKey:         apiKey,
		speechReady:    speechReady,
		storageReady:   storageReady,
	}
}

// NewMockHandler creates the endpoint handler for the mock variant
func NewMockHandler(service *usecase.TranscriptionService, stt repositories.SpeechToText, uploadsDir, sampleAudioURI string, logger *zap.Logger) *Handler {
	return &Handler{
		service:        service,
		speechToText:   stt,
		logger:         logger,
		uploadsDir:     uploadsDir,
		sampleAudioURI: sampleAudioURI,
		mode:           "mock",
		speechReady:    true,
	}
}

// health handles GET /health
func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:                   "healthy",
		SpeechClientInitialized:  h.speechReady,
		StorageClientInitialized: h.storageReady,
		Mode:                     h.mode,
	})
}

// transcribe handles POST /transcribe: a multipart upload with an
// audio_file and an optional language form field
func (h *Handler) transcribe(c echo.Context) error {
	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No audio file provided"})
	}
	if fileHeader.Filename == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file selected"})
	}

	language := c.FormValue("language")
	if language == "" {
		language = defaultLanguage
	}

	// Keep the original extension so format probing works on the copy
	uploadPath := filepath.Join(h.uploadsDir, uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := saveUpload(fileHeader, uploadPath); err != nil {
		h.logger.Error("Failed to save uploaded audio", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save uploaded file"})
	}
	defer os.Remove(uploadPath)

	result, err := h.service.TranscribeFile(c.Request().Context(), uploadPath, language)
	if err != nil {
		h.logger.Error("Transcription failed",
			zap.String("file", fileHeader.Filename),
			zap.String("language", language),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, TranscribeResponse{Transcript: result.Transcript, Success: true})
}

// test handles POST /test: transcribes the fixed sample clip
func (h *Handler) test(c echo.Context) error {
	language := c.FormValue("language")
	if language == "" {
		language = defaultLanguage
	}

	result, err := h.service.TranscribeURI(c.Request().Context(), h.sampleAudioURI, language)
	if err != nil {
		h.logger.Error("Sample transcription failed",
			zap.String("uri", h.sampleAudioURI),
			zap.String("language", language),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, TranscribeResponse{Transcript: result.Transcript, Success: true})
}

// token handles POST /api/v1/token: exchanges the configured API key
// for a bearer token
func (h *Handler) token(c echo.Context) error {
	if h.tokens == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Authentication is not enabled"})
	}

	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}

	if req.APIKey == "" || req.APIKey != h.apiKey {
		h.logger.Warn("Token request with invalid API key")
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid API key"})
	}

	token, expiresAt, err := h.tokens.GenerateToken()
	if err != nil {
		h.logger.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}

// listTranscriptions handles GET /api/v1/transcriptions
func (h *Handler) listTranscriptions(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	records, err := h.history.List(c.Request().Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list transcriptions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve history"})
	}

	items := make([]echo.Map, 0, len(records))
	for _, record := range records {
		items = append(items, echo.Map{
			"id":                 record.ID,
			"filename":           record.Filename,
			"language":           record.Language,
			"status":             record.Status,
			"created_at":         record.CreatedAt,
			"transcript_preview": record.TranscriptPreview(100),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"count":  len(items),
	})
}

// getTranscription handles GET /api/v1/transcriptions/:id
func (h *Handler) getTranscription(c echo.Context) error {
	record, err := h.history.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transcription not found"})
		}
		h.logger.Error("Failed to get transcription", zap.String("id", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve transcription"})
	}

	return c.JSON(http.StatusOK, record)
}

// requireToken is a no-op when authentication is disabled; otherwise it
// enforces a valid bearer token
func (h *Handler) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.tokens == nil {
			return next(c)
		}

		var token string
		authHeader := c.Request().Header.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}

		if token == "" {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Bearer token is required"})
		}

		if _, err := h.tokens.ValidateToken(token); err != nil {
			h.logger.Warn("Request rejected: invalid token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired token"})
		}

		return next(c)
	}
}

func saveUpload(fileHeader *multipart.FileHeader, dstPath string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
