package websocket

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voxscribe/server/domain/repositories"
)

const (
	// Maximum message size allowed from peer, sized for audio chunks
	maxMessageSize = 512 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// StreamConfigFromQuery builds the recognition config for a streaming
// session from the websocket query parameters
func StreamConfigFromQuery(values url.Values) repositories.AudioConfig {
	config := repositories.AudioConfig{
		Encoding:   "LINEAR16",
		SampleRate: 16000,
		Language:   "en-US",
	}

	if encoding := values.Get("encoding"); encoding != "" {
		config.Encoding = encoding
	}
	if language := values.Get("language"); language != "" {
		config.Language = language
	}
	if rate, err := strconv.Atoi(values.Get("sample_rate")); err == nil && rate > 0 {
		config.SampleRate = rate
	}

	return config
}

// HandleTranscribeStream upgrades the connection and pipes binary audio
// frames into a streaming recognition session. The client sends "end"
// as a text frame to close the utterance and receive the transcript.
func HandleTranscribeStream(c echo.Context, stt repositories.SpeechToText, logger *zap.Logger) error {
	config := StreamConfigFromQuery(c.QueryParams())

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	ctx := c.Request().Context()
	stream, err := stt.InitTranscribeStreaming(ctx, config)
	if err != nil {
		logger.Error("Failed to initialize streaming transcription", zap.Error(err))
		conn.WriteJSON(map[string]interface{}{"error": err.Error(), "success": false})
		return nil
	}

	logger.Info("Streaming transcription started",
		zap.String("language", config.Language),
		zap.String("encoding", config.Encoding),
		zap.Int("sampleRate", config.SampleRate))

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			logger.Info("Websocket closed before end of utterance", zap.Error(err))
			return nil
		}

		switch messageType {
		case websocket.BinaryMessage:
			if err := stream.Stream(data); err != nil {
				logger.Error("Failed to stream audio chunk", zap.Error(err))
				conn.WriteJSON(map[string]interface{}{"error": err.Error(), "success": false})
				return nil
			}
		case websocket.TextMessage:
			if string(data) != "end" {
				continue
			}

			transcript, err := stream.End()
			if err != nil {
				logger.Error("Streaming transcription failed", zap.Error(err))
				conn.WriteJSON(map[string]interface{}{"error": err.Error(), "success": false})
				return nil
			}

			logger.Info("Streaming transcription completed", zap.Int("length", len(transcript)))
			conn.WriteJSON(map[string]interface{}{"transcript": transcript, "success": true})
			return nil
		}
	}
}
