package repositories

import "context"

// SpeechToText abstracts speech recognition services
type SpeechToText interface {
	// Recognize converts audio data to text synchronously
	Recognize(ctx context.Context, audioData []byte, config AudioConfig) (*RecognitionResult, error)
	// RecognizeURI converts audio stored at a cloud URI to text synchronously
	RecognizeURI(ctx context.Context, uri string, config AudioConfig) (*RecognitionResult, error)
	// LongRecognizeURI runs a long-running recognition job against a cloud URI
	// and blocks until it completes
	LongRecognizeURI(ctx context.Context, uri string, config AudioConfig) (*RecognitionResult, error)
	// InitTranscribeStreaming initializes a streaming transcription session
	InitTranscribeStreaming(ctx context.Context, config AudioConfig) (SpeechToTextStreaming, error)
}

// AudioConfig represents audio configuration for speech recognition
type AudioConfig struct {
	SampleRate int    `json:"sample_rate"`
	Encoding   string `json:"encoding"`
	Language   string `json:"language"`
}

// RecognitionResult holds the transcript for a completed recognition
type RecognitionResult struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

type SpeechToTextStreaming interface {
	Stream(data []byte) error
	End() (string, error)
}
