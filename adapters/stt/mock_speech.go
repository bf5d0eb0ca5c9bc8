package stt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voxscribe/server/domain/repositories"
)

// MockSpeechToText returns canned transcripts so the service can run
// in CI without Google Cloud credentials
type MockSpeechToText struct {
	logger *zap.Logger
}

// MockSpeechToTextStream is a mock implementation of streaming speech recognition
type MockSpeechToTextStream struct {
	logger        *zap.Logger
	language      string
	audioReceived bool
}

// NewMockSpeechToText creates a new mock speech-to-text service
func NewMockSpeechToText(logger *zap.Logger) repositories.SpeechToText {
	return &MockSpeechToText{
		logger: logger,
	}
}

// Recognize returns a deterministic canned transcript regardless of
// audio content
func (s *MockSpeechToText) Recognize(ctx context.Context, audioData []byte, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	s.logger.Info("Mock transcribing audio",
		zap.Int("audioSize", len(audioData)),
		zap.String("encoding", config.Encoding),
		zap.String("language", config.Language))

	return &repositories.RecognitionResult{
		Transcript: mockTranscript(config.Language),
		Confidence: 0.95,
	}, nil
}

// RecognizeURI returns a deterministic canned transcript for a GCS URI
func (s *MockSpeechToText) RecognizeURI(ctx context.Context, uri string, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	s.logger.Info("Mock transcribing GCS audio",
		zap.String("uri", uri),
		zap.String("language", config.Language))

	return &repositories.RecognitionResult{
		Transcript: mockGCSTranscript(config.Language),
		Confidence: 0.95,
	}, nil
}

// LongRecognizeURI behaves like RecognizeURI; the mock has no notion of
// long-running jobs
func (s *MockSpeechToText) LongRecognizeURI(ctx context.Context, uri string, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	return s.RecognizeURI(ctx, uri, config)
}

// InitTranscribeStreaming creates a new mock streaming session
func (s *MockSpeechToText) InitTranscribeStreaming(ctx context.Context, config repositories.AudioConfig) (repositories.SpeechToTextStreaming, error) {
	s.logger.Info("Initializing mock streaming transcription",
		zap.Int("sampleRate", config.SampleRate),
		zap.String("encoding", config.Encoding),
		zap.String("language", config.Language))

	return &MockSpeechToTextStream{
		logger:   s.logger,
		language: config.Language,
	}, nil
}

// Stream implements mock streaming audio processing
func (m *MockSpeechToTextStream) Stream(data []byte) error {
	m.logger.Info("Processing mock audio chunk", zap.Int("size", len(data)))

	if len(data) > 0 {
		m.audioReceived = true
	}

	return nil
}

// End returns the mock transcription result
func (m *MockSpeechToTextStream) End() (string, error) {
	if !m.audioReceived {
		return "", fmt.Errorf("no audio data received")
	}

	transcript := mockTranscript(m.language)
	m.logger.Info("Ending mock transcription stream", zap.String("result", transcript))

	return transcript, nil
}

func mockTranscript(language string) string {
	return fmt.Sprintf("Mock transcription in %s: This is a simulated transcription of your audio file. The speech recognition service is working correctly.", language)
}

func mockGCSTranscript(language string) string {
	return fmt.Sprintf("Mock GCS transcription in %s: This is a simulated transcription from Google Cloud Storage. The speech recognition service is working correctly.", language)
}
