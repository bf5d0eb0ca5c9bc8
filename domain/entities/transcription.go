package entities

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptionStatus represents the outcome of a transcription request
type TranscriptionStatus string

const (
	TranscriptionStatusCompleted TranscriptionStatus = "completed"
	TranscriptionStatusFailed    TranscriptionStatus = "failed"
)

// Transcription is the persisted record of a single transcription request
type Transcription struct {
	ID              string              `bson:"_id" json:"id"`
	Filename        string              `bson:"filename" json:"filename"`
	Language        string              `bson:"language" json:"language"`
	Encoding        string              `bson:"encoding" json:"encoding"`
	SampleRate      int                 `bson:"sample_rate" json:"sample_rate"`
	SizeBytes       int64               `bson:"size_bytes" json:"size_bytes"`
	DurationSeconds float64             `bson:"duration_seconds,omitempty" json:"duration_seconds,omitempty"`
	LongRunning     bool                `bson:"long_running" json:"long_running"`
	Transcript      string              `bson:"transcript,omitempty" json:"transcript,omitempty"`
	Confidence      float64             `bson:"confidence,omitempty" json:"confidence,omitempty"`
	Status          TranscriptionStatus `bson:"status" json:"status"`
	Error           string              `bson:"error,omitempty" json:"error,omitempty"`
	ProcessingMs    int64               `bson:"processing_ms" json:"processing_ms"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
}

// NewTranscription creates a new transcription record for an uploaded file
func NewTranscription(filename, language string) *Transcription {
	return &Transcription{
		ID:        uuid.New().String(),
		Filename:  filename,
		Language:  language,
		CreatedAt: time.Now(),
	}
}

// Complete marks the record as successfully transcribed
func (t *Transcription) Complete(transcript string, confidence float64, took time.Duration) {
	t.Status = TranscriptionStatusCompleted
	t.Transcript = transcript
	t.Confidence = confidence
	t.ProcessingMs = took.Milliseconds()
}

// Fail marks the record as failed with the provider error
func (t *Transcription) Fail(err error, took time.Duration) {
	t.Status = TranscriptionStatusFailed
	if err != nil {
		t.Error = err.Error()
	}
	t.ProcessingMs = took.Milliseconds()
}

// TranscriptPreview returns the first n characters of the transcript
// for list responses
func (t *Transcription) TranscriptPreview(n int) string {
	if len(t.Transcript) <= n {
		return t.Transcript
	}
	return t.Transcript[:n] + "..."
}
