package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voxscribe/server/domain/entities"
	"github.com/voxscribe/server/domain/repositories"
	"github.com/voxscribe/server/internal/audio"
)

const (
	defaultLongAudioSeconds = 60
	defaultLongAudioBytes   = 1 << 20
	defaultFFmpegPath       = "ffmpeg"
)

// Options tunes the routing between synchronous and long-running
// recognition
type Options struct {
	// Audio longer than this goes through the long-running path
	LongAudioSeconds float64
	// Audio of unknown duration larger than this goes through the
	// long-running path
	LongAudioBytes int64
	// ffmpeg binary used for the MP3 fallback conversion
	FFmpegPath string
}

// TranscriptionService orchestrates the transcription flow: format
// probing, sync vs long-running routing, the MP3 fallback, the optional
// LLM cleanup pass and history persistence.
type TranscriptionService struct {
	speechToText repositories.SpeechToText
	storage      repositories.ObjectStorage           // nil disables long-running jobs
	history      repositories.TranscriptionRepository // nil disables persistence
	cleaner      repositories.TranscriptCleaner       // nil disables cleanup
	logger       *zap.Logger
	opts         Options
}

// NewTranscriptionService creates a new transcription service. storage,
// history and cleaner may be nil; the corresponding features degrade to
// disabled.
func NewTranscriptionService(
	stt repositories.SpeechToText,
	storage repositories.ObjectStorage,
	history repositories.TranscriptionRepository,
	cleaner repositories.TranscriptCleaner,
	opts Options,
	logger *zap.Logger,
) *TranscriptionService {
	if opts.LongAudioSeconds == 0 {
		opts.LongAudioSeconds = defaultLongAudioSeconds
	}
	if opts.LongAudioBytes == 0 {
		opts.LongAudioBytes = defaultLongAudioBytes
	}
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = defaultFFmpegPath
	}

	return &TranscriptionService{
		speechToText: stt,
		storage:      storage,
		history:      history,
		cleaner:      cleaner,
		logger:       logger,
		opts:         opts,
	}
}

// TranscribeFile transcribes an audio file on disk
func (s *TranscriptionService) TranscribeFile(ctx context.Context, path, language string) (*repositories.RecognitionResult, error) {
	started := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat audio file: %w", err)
	}

	format := audio.Probe(path)
	longRunning := s.needsLongRunning(format.DurationSeconds, info.Size())

	s.logger.Info("Transcribing audio file",
		zap.String("file", filepath.Base(path)),
		zap.String("encoding", format.Encoding),
		zap.Int("sampleRate", format.SampleRate),
		zap.Float64("durationSeconds", format.DurationSeconds),
		zap.Int64("sizeBytes", info.Size()),
		zap.Bool("longRunning", longRunning))

	record := entities.NewTranscription(filepath.Base(path), language)
	record.Encoding = format.Encoding
	record.SampleRate = format.SampleRate
	record.SizeBytes = info.Size()
	record.DurationSeconds = format.DurationSeconds
	record.LongRunning = longRunning

	var result *repositories.RecognitionResult
	if longRunning {
		result, err = s.transcribeLong(ctx, path, language)
	} else {
		result, err = s.transcribeSync(ctx, path, format, language)
	}

	if err == nil && s.cleaner != nil {
		cleaned, cleanErr := s.cleaner.CleanTranscript(ctx, result.Transcript, language)
		if cleanErr == nil {
			result.Transcript = cleaned
		}
	}

	s.saveRecord(ctx, record, result, err, time.Since(started))

	return result, err
}

// TranscribeURI transcribes audio already stored at a cloud URI, used
// by the /test endpoint for the fixed sample clip
func (s *TranscriptionService) TranscribeURI(ctx context.Context, uri, language string) (*repositories.RecognitionResult, error) {
	return s.speechToText.RecognizeURI(ctx, uri, repositories.AudioConfig{
		Encoding:   audio.EncodingLinear16,
		SampleRate: 16000,
		Language:   language,
	})
}

// transcribeSync reads the file into memory and recognizes it in one
// call, with the MP3 fallback conversion when recognition fails or
// yields nothing
func (s *TranscriptionService) transcribeSync(ctx context.Context, path string, format audio.Format, language string) (*repositories.RecognitionResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	config := repositories.AudioConfig{
		Encoding:   format.Encoding,
		SampleRate: format.SampleRate,
		Language:   language,
	}

	result, err := s.speechToText.Recognize(ctx, content, config)
	if format.Encoding != audio.EncodingMP3 {
		return result, err
	}

	// MP3 decoding on the provider side is flaky for some files;
	// convert to 16kHz mono WAV and retry when it fails or comes
	// back empty
	if err == nil && result.Transcript != "" {
		return result, nil
	}

	s.logger.Warn("MP3 transcription failed, converting to WAV and retrying",
		zap.String("file", filepath.Base(path)),
		zap.Error(err))

	wavPath, convErr := audio.ConvertToLinear16(ctx, s.opts.FFmpegPath, path)
	if convErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, convErr
	}
	defer os.Remove(wavPath)

	wavContent, readErr := os.ReadFile(wavPath)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read converted audio: %w", readErr)
	}

	return s.speechToText.Recognize(ctx, wavContent, repositories.AudioConfig{
		Encoding:   audio.EncodingLinear16,
		SampleRate: 16000,
		Language:   language,
	})
}

// transcribeLong uploads the file to the scratch bucket, runs a
// long-running recognition job against it and deletes the object
// afterwards
func (s *TranscriptionService) transcribeLong(ctx context.Context, path, language string) (*repositories.RecognitionResult, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("audio exceeds synchronous limits and no object storage is configured")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	objectName := fmt.Sprintf("audio/%s_%s", uuid.New().String(), filepath.Base(path))

	uri, err := s.storage.Upload(ctx, objectName, content)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio for long running recognition: %w", err)
	}
	defer func() {
		if err := s.storage.Delete(ctx, objectName); err != nil {
			s.logger.Warn("Failed to clean up scratch audio object",
				zap.String("object", objectName),
				zap.Error(err))
		}
	}()

	return s.speechToText.LongRecognizeURI(ctx, uri, repositories.AudioConfig{
		Encoding:   audio.EncodingLinear16,
		SampleRate: 16000,
		Language:   language,
	})
}

// needsLongRunning routes audio longer than the synchronous limit, or
// of unknown duration but suspiciously large, to the long-running path
func (s *TranscriptionService) needsLongRunning(durationSeconds float64, sizeBytes int64) bool {
	if durationSeconds > s.opts.LongAudioSeconds {
		return true
	}
	return durationSeconds == 0 && sizeBytes > s.opts.LongAudioBytes
}

func (s *TranscriptionService) saveRecord(ctx context.Context, record *entities.Transcription, result *repositories.RecognitionResult, err error, took time.Duration) {
	if s.history == nil {
		return
	}

	if err != nil {
		record.Fail(err, took)
	} else {
		record.Complete(result.Transcript, result.Confidence, took)
	}

	if saveErr := s.history.Create(ctx, record); saveErr != nil {
		s.logger.Warn("Failed to persist transcription record",
			zap.String("id", record.ID),
			zap.Error(saveErr))
	}
}
