package stt

import (
	"context"
	"fmt"
	"io"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/voxscribe/server/domain/repositories"
)

// GoogleSpeechToText implements SpeechToText for Google Cloud. The
// client authenticates through GOOGLE_APPLICATION_CREDENTIALS.
type GoogleSpeechToText struct {
	client *speech.Client
	logger *zap.Logger
}

// NewGoogleSpeechToText creates a Google Cloud Speech client
func NewGoogleSpeechToText(ctx context.Context, logger *zap.Logger) (*GoogleSpeechToText, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	return &GoogleSpeechToText{
		client: client,
		logger: logger,
	}, nil
}

// Close releases the underlying gRPC connection
func (g *GoogleSpeechToText) Close() error {
	return g.client.Close()
}

// Recognize converts audio data to text synchronously
func (g *GoogleSpeechToText) Recognize(ctx context.Context, audioData []byte, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	recognitionConfig, err := buildRecognitionConfig(config)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: recognitionConfig,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("recognize failed: %w", err)
	}

	return collectResults(resp.Results), nil
}

// RecognizeURI converts audio stored at a GCS URI to text synchronously
func (g *GoogleSpeechToText) RecognizeURI(ctx context.Context, uri string, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	recognitionConfig, err := buildRecognitionConfig(config)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: recognitionConfig,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: uri},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("recognize failed for %s: %w", uri, err)
	}

	return collectResults(resp.Results), nil
}

// LongRecognizeURI starts a long-running recognition job for audio at a
// GCS URI and blocks until it completes
func (g *GoogleSpeechToText) LongRecognizeURI(ctx context.Context, uri string, config repositories.AudioConfig) (*repositories.RecognitionResult, error) {
	recognitionConfig, err := buildRecognitionConfig(config)
	if err != nil {
		return nil, err
	}

	op, err := g.client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: recognitionConfig,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: uri},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start long running recognize: %w", err)
	}

	g.logger.Info("Waiting for long running recognition to complete", zap.String("uri", uri))

	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("long running recognize failed: %w", err)
	}

	return collectResults(resp.Results), nil
}

// InitTranscribeStreaming initializes a streaming transcription session
func (g *GoogleSpeechToText) InitTranscribeStreaming(ctx context.Context, config repositories.AudioConfig) (repositories.SpeechToTextStreaming, error) {
	stream, err := g.client.StreamingRecognize(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create streaming recognize: %w", err)
	}

	recognitionConfig, err := buildRecognitionConfig(config)
	if err != nil {
		stream.CloseSend()
		return nil, err
	}

	// Send initial configuration
	if err := stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: &speechpb.StreamingRecognitionConfig{
				Config:          recognitionConfig,
				InterimResults:  false, // We only want final results
				SingleUtterance: true,  // Treat as single utterance
			},
		},
	}); err != nil {
		stream.CloseSend()
		return nil, fmt.Errorf("failed to send streaming config: %w", err)
	}

	return &GoogleSpeechToTextStream{
		stream:     stream,
		ctx:        ctx,
		resultChan: make(chan string, 1),
		errorChan:  make(chan error, 1),
	}, nil
}

type GoogleSpeechToTextStream struct {
	stream         speechpb.Speech_StreamingRecognizeClient
	ctx            context.Context
	audioReceived  bool
	resultChan     chan string
	errorChan      chan error
	receiverActive bool
}

func (g *GoogleSpeechToTextStream) Stream(data []byte) error {
	// Start the result receiver goroutine only once
	if !g.receiverActive {
		g.receiverActive = true
		go g.receiveResults()
	}

	if len(data) > 0 {
		g.audioReceived = true

		if err := g.stream.Send(&speechpb.StreamingRecognizeRequest{
			StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{
				AudioContent: data,
			},
		}); err != nil {
			return fmt.Errorf("failed to send audio data: %w", err)
		}
	}

	return nil
}

func (g *GoogleSpeechToTextStream) End() (string, error) {
	if !g.audioReceived {
		return "", fmt.Errorf("no audio data received")
	}

	// Close the send stream to signal end of audio
	if err := g.stream.CloseSend(); err != nil {
		return "", fmt.Errorf("failed to close send stream: %w", err)
	}

	// Wait for final result or error
	select {
	case <-g.ctx.Done():
		return "", fmt.Errorf("context cancelled while waiting for result: %w", g.ctx.Err())
	case err := <-g.errorChan:
		if err != nil {
			return "", err
		}
	case result := <-g.resultChan:
		if result == "" {
			return "", fmt.Errorf("no speech detected in audio")
		}
		return result, nil
	}

	return "", fmt.Errorf("unexpected end of transcription")
}

func (g *GoogleSpeechToTextStream) receiveResults() {
	defer close(g.resultChan)
	defer close(g.errorChan)

	var finalTranscription string

	for {
		resp, err := g.stream.Recv()
		if err == io.EOF {
			// Stream ended normally
			g.resultChan <- finalTranscription
			return
		}
		if err != nil {
			g.errorChan <- fmt.Errorf("failed to receive response: %w", err)
			return
		}

		// Process results - only consider final ones
		for _, result := range resp.Results {
			if result.IsFinal && len(result.Alternatives) > 0 {
				// Take the best alternative
				finalTranscription = result.Alternatives[0].Transcript
			}
		}
	}
}

// buildRecognitionConfig converts our audio config to the Speech API
// recognition config
func buildRecognitionConfig(config repositories.AudioConfig) (*speechpb.RecognitionConfig, error) {
	encoding, err := getAudioEncoding(config.Encoding)
	if err != nil {
		return nil, err
	}

	return &speechpb.RecognitionConfig{
		Encoding:                   encoding,
		SampleRateHertz:            int32(config.SampleRate),
		LanguageCode:               config.Language,
		EnableAutomaticPunctuation: true,
	}, nil
}

// collectResults joins the best alternative of every result into a
// single transcript
func collectResults(results []*speechpb.SpeechRecognitionResult) *repositories.RecognitionResult {
	var (
		parts      []string
		confidence float64
	)

	for _, result := range results {
		if len(result.Alternatives) == 0 {
			continue
		}
		best := result.Alternatives[0]
		parts = append(parts, best.Transcript)
		if confidence == 0 {
			confidence = float64(best.Confidence)
		}
	}

	return &repositories.RecognitionResult{
		Transcript: strings.TrimSpace(strings.Join(parts, " ")),
		Confidence: confidence,
	}
}

// getAudioEncoding converts string encoding to Google Speech API enum
func getAudioEncoding(encoding string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch encoding {
	case "WAV", "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "MP3":
		return speechpb.RecognitionConfig_MP3, nil
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC, nil
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW, nil
	case "AMR":
		return speechpb.RecognitionConfig_AMR, nil
	case "AMR_WB":
		return speechpb.RecognitionConfig_AMR_WB, nil
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS, nil
	case "SPEEX_WITH_HEADER_BYTE":
		return speechpb.RecognitionConfig_SPEEX_WITH_HEADER_BYTE, nil
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
