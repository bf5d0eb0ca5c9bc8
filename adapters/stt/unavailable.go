package stt

import (
	"context"
	"fmt"

	"github.com/voxscribe/server/domain/repositories"
)

// UnavailableSpeechToText stands in when the Google client could not be
// initialized: the server stays up, /health reports the state, and
// every recognition attempt returns the initialization error.
type UnavailableSpeechToText struct {
	err error
}

// NewUnavailableSpeechToText wraps the initialization failure
func NewUnavailableSpeechToText(err error) repositories.SpeechToText {
	return &UnavailableSpeechToText{err: err}
}

func (u *UnavailableSpeechToText) Recognize(ctx context.Context, audioData []byte, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	return nil, u.wrapped()
}

func (u *UnavailableSpeechToText) RecognizeURI(ctx context.Context, uri string, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	return nil, u.wrapped()
}

func (u *UnavailableSpeechToText) LongRecognizeURI(ctx context.Context, uri string, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	return nil, u.wrapped()
}

func (u *UnavailableSpeechToText) InitTranscribeStreaming(ctx context.Context, config repositories.AudioConfig) (repositories.SpeechToTextStreaming, error) {
	return nil, u.wrapped()
}

func (u *UnavailableSpeechToText) wrapped() error {
	return fmt.Errorf("speech client not initialized: %w", u.err)
}
