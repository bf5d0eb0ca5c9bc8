package usecase

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/voxscribe/server/domain/entities"
	"github.com/voxscribe/server/domain/repositories"
)

type fakeSpeechToText struct {
	recognizeCalls     []repositories.AudioConfig
	recognizeURICalls  []string
	longRecognizeCalls []string
	transcript         string
	err                error
}

func (f *fakeSpeechToText) Recognize(ctx context.Context, audioData []byte, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	f.recognizeCalls = append(f.recognizeCalls, config)
	if f.err != nil {
		return nil, f.err
	}
	return &repositories.RecognitionResult{Transcript: f.transcript, Confidence: 0.9}, nil
}

func (f *fakeSpeechToText) RecognizeURI(ctx context.Context, uri string, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	f.recognizeURICalls = append(f.recognizeURICalls, uri)
	if f.err != nil {
		return nil, f.err
	}
	return &repositories.RecognitionResult{Transcript: f.transcript, Confidence: 0.9}, nil
}

func (f *fakeSpeechToText) LongRecognizeURI(ctx context.Context, uri string, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	f.longRecognizeCalls = append(f.longRecognizeCalls, uri)
	if f.err != nil {
		return nil, f.err
	}
	return &repositories.RecognitionResult{Transcript: f.transcript, Confidence: 0.9}, nil
}

func (f *fakeSpeechToText) InitTranscribeStreaming(ctx context.Context, config repositories.AudioConfig) (repositories.SpeechToTextStreaming, error) {
	return nil, errors.New("not implemented")
}

type fakeStorage struct {
	uploads []string
	deletes []string
}

func (f *fakeStorage) Upload(ctx context.Context, name string, data []byte) (string, error) {
	f.uploads = append(f.uploads, name)
	return "gs://test-bucket/" + name, nil
}

func (f *fakeStorage) Delete(ctx context.Context, name string) error {
	f.deletes = append(f.deletes, name)
	return nil
}

type fakeHistory struct {
	records []*entities.Transcription
}

func (f *fakeHistory) Create(ctx context.Context, record *entities.Transcription) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeHistory) GetByID(ctx context.Context, id string) (*entities.Transcription, error) {
	return nil, errors.New("not found")
}

func (f *fakeHistory) List(ctx context.Context, limit, offset int) ([]*entities.Transcription, error) {
	return f.records, nil
}

// writeWAV writes a minimal PCM WAV file with the given sample rate and
// seconds of silence
func writeWAV(t *testing.T, path string, sampleRate uint32, seconds float64) {
	t.Helper()

	byteRate := sampleRate * 2
	dataSize := uint32(float64(byteRate) * seconds)

	buf := make([]byte, 44+dataSize)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], 36+dataSize)
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1)
	binary.LittleEndian.PutUint16(buf[22:24], 1)
	binary.LittleEndian.PutUint32(buf[24:28], sampleRate)
	binary.LittleEndian.PutUint32(buf[28:32], byteRate)
	binary.LittleEndian.PutUint16(buf[32:34], 2)
	binary.LittleEndian.PutUint16(buf[34:36], 16)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], dataSize)

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("Failed to write test WAV: %v", err)
	}
}

func TestTranscribeFileSyncPath(t *testing.T) {
	stt := &fakeSpeechToText{transcript: "hello world"}
	storage := &fakeStorage{}
	service := NewTranscriptionService(stt, storage, nil, nil, Options{}, zap.NewNop())

	path := filepath.Join(t.TempDir(), "short.wav")
	writeWAV(t, path, 16000, 2.0)

	result, err := service.TranscribeFile(context.Background(), path, "en-US")
	if err != nil {
		t.Fatalf("TranscribeFile() error = %v", err)
	}

	if result.Transcript != "hello world" {
		t.Errorf("Expected transcript 'hello world', got %q", result.Transcript)
	}

	if len(stt.recognizeCalls) != 1 {
		t.Fatalf("Expected 1 Recognize call, got %d", len(stt.recognizeCalls))
	}

	if stt.recognizeCalls[0].SampleRate != 16000 {
		t.Errorf("Expected sample rate from WAV header, got %d", stt.recognizeCalls[0].SampleRate)
	}

	if len(storage.uploads) != 0 {
		t.Errorf("Expected no uploads on the sync path, got %d", len(storage.uploads))
	}
}

func TestTranscribeFileLongAudioByDuration(t *testing.T) {
	stt := &fakeSpeechToText{transcript: "a long recording"}
	storage := &fakeStorage{}
	service := NewTranscriptionService(stt, storage, nil, nil, Options{LongAudioSeconds: 1}, zap.NewNop())

	path := filepath.Join(t.TempDir(), "long.wav")
	writeWAV(t, path, 8000, 2.0)

	result, err := service.TranscribeFile(context.Background(), path, "en-US")
	if err != nil {
		t.Fatalf("TranscribeFile() error = %v", err)
	}

	if result.Transcript != "a long recording" {
		t.Errorf("Unexpected transcript: %q", result.Transcript)
	}

	if len(stt.longRecognizeCalls) != 1 {
		t.Fatalf("Expected 1 LongRecognizeURI call, got %d", len(stt.longRecognizeCalls))
	}

	if len(storage.uploads) != 1 || len(storage.deletes) != 1 {
		t.Errorf("Expected upload and delete of scratch object, got %d uploads and %d deletes",
			len(storage.uploads), len(storage.deletes))
	}

	if storage.uploads[0] != storage.deletes[0] {
		t.Errorf("Expected the uploaded object to be deleted, uploaded %s deleted %s",
			storage.uploads[0], storage.deletes[0])
	}
}

func TestTranscribeFileLongAudioByUnknownDurationAndSize(t *testing.T) {
	stt := &fakeSpeechToText{transcript: "large opaque file"}
	storage := &fakeStorage{}
	service := NewTranscriptionService(stt, storage, nil, nil, Options{LongAudioBytes: 100}, zap.NewNop())

	path := filepath.Join(t.TempDir(), "opaque.raw")
	if err := os.WriteFile(path, make([]byte, 500), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := service.TranscribeFile(context.Background(), path, "en-US"); err != nil {
		t.Fatalf("TranscribeFile() error = %v", err)
	}

	if len(stt.longRecognizeCalls) != 1 {
		t.Errorf("Expected long-running path for large file of unknown duration, got %d calls",
			len(stt.longRecognizeCalls))
	}
}

func TestTranscribeFileLongAudioWithoutStorage(t *testing.T) {
	stt := &fakeSpeechToText{transcript: "whatever"}
	service := NewTranscriptionService(stt, nil, nil, nil, Options{LongAudioBytes: 100}, zap.NewNop())

	path := filepath.Join(t.TempDir(), "opaque.raw")
	if err := os.WriteFile(path, make([]byte, 500), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := service.TranscribeFile(context.Background(), path, "en-US"); err == nil {
		t.Error("Expected error when long-running audio has no object storage configured")
	}
}

func TestTranscribeFileMP3FallbackAttempted(t *testing.T) {
	stt := &fakeSpeechToText{err: errors.New("MP3 decode failed")}
	service := NewTranscriptionService(stt, nil, nil, nil, Options{FFmpegPath: "/nonexistent/ffmpeg"}, zap.NewNop())

	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte("not really an mp3"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := service.TranscribeFile(context.Background(), path, "en-US")
	if err == nil {
		t.Fatal("Expected error when recognition and fallback both fail")
	}

	if len(stt.recognizeCalls) == 0 {
		t.Fatal("Expected at least one Recognize call")
	}

	if stt.recognizeCalls[0].Encoding != "MP3" {
		t.Errorf("Expected first attempt with MP3 encoding, got %s", stt.recognizeCalls[0].Encoding)
	}
}

func TestTranscribeFilePersistsHistory(t *testing.T) {
	stt := &fakeSpeechToText{transcript: "persisted"}
	history := &fakeHistory{}
	service := NewTranscriptionService(stt, nil, history, nil, Options{}, zap.NewNop())

	path := filepath.Join(t.TempDir(), "short.wav")
	writeWAV(t, path, 16000, 1.0)

	if _, err := service.TranscribeFile(context.Background(), path, "de-DE"); err != nil {
		t.Fatalf("TranscribeFile() error = %v", err)
	}

	if len(history.records) != 1 {
		t.Fatalf("Expected 1 history record, got %d", len(history.records))
	}

	record := history.records[0]
	if record.Status != entities.TranscriptionStatusCompleted {
		t.Errorf("Expected completed status, got %s", record.Status)
	}
	if record.Transcript != "persisted" {
		t.Errorf("Unexpected persisted transcript: %q", record.Transcript)
	}
	if record.Language != "de-DE" {
		t.Errorf("Expected language de-DE, got %s", record.Language)
	}
}

func TestTranscribeURI(t *testing.T) {
	stt := &fakeSpeechToText{transcript: "how old is the Brooklyn Bridge"}
	service := NewTranscriptionService(stt, nil, nil, nil, Options{}, zap.NewNop())

	result, err := service.TranscribeURI(context.Background(), "gs://cloud-samples-data/speech/brooklyn_bridge.raw", "en-US")
	if err != nil {
		t.Fatalf("TranscribeURI() error = %v", err)
	}

	if result.Transcript == "" {
		t.Error("Expected non-empty transcript")
	}

	if len(stt.recognizeURICalls) != 1 {
		t.Errorf("Expected 1 RecognizeURI call, got %d", len(stt.recognizeURICalls))
	}
}
