package stt

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/voxscribe/server/domain/repositories"
)

func TestMockRecognizeIsDeterministic(t *testing.T) {
	mock := NewMockSpeechToText(zap.NewNop())
	config := repositories.AudioConfig{SampleRate: 16000, Encoding: "LINEAR16", Language: "en-US"}

	first, err := mock.Recognize(context.Background(), []byte("some audio"), config)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	second, err := mock.Recognize(context.Background(), []byte("completely different audio"), config)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	if first.Transcript != second.Transcript {
		t.Errorf("Expected identical transcripts, got %q and %q", first.Transcript, second.Transcript)
	}

	if !strings.Contains(first.Transcript, "en-US") {
		t.Errorf("Expected transcript to mention the language code, got %q", first.Transcript)
	}
}

func TestMockStreamingRequiresAudio(t *testing.T) {
	mock := NewMockSpeechToText(zap.NewNop())
	config := repositories.AudioConfig{SampleRate: 16000, Encoding: "LINEAR16", Language: "en-US"}

	stream, err := mock.InitTranscribeStreaming(context.Background(), config)
	if err != nil {
		t.Fatalf("InitTranscribeStreaming() error = %v", err)
	}

	if _, err := stream.End(); err == nil {
		t.Error("Expected error when ending a stream with no audio")
	}

	stream, _ = mock.InitTranscribeStreaming(context.Background(), config)
	if err := stream.Stream([]byte("audio bytes")); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	transcript, err := stream.End()
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if transcript == "" {
		t.Error("Expected non-empty transcript")
	}
}
