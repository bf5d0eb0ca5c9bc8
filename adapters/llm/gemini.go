package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/voxscribe/server/domain/repositories"
)

const cleanupPrompt = "You are a transcript editor. Fix punctuation, casing and obvious " +
	"mis-hearings in the following %s speech transcript. Return only the corrected " +
	"transcript with no commentary.\n\nTranscript:\n%s"

// GeminiCleaner implements TranscriptCleaner using Google's Gemini API
type GeminiCleaner struct {
	client *genai.Client
	logger *zap.Logger
	model  string
}

// NewGeminiCleaner creates a new Gemini-backed transcript cleaner
func NewGeminiCleaner(ctx context.Context, apiKey string, logger *zap.Logger) (*GeminiCleaner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCleaner{
		client: client,
		logger: logger,
		model:  "gemini-2.0-flash",
	}, nil
}

// CleanTranscript asks Gemini to fix punctuation and casing. On any
// failure the original transcript is returned so cleanup never loses a
// recognition result.
func (g *GeminiCleaner) CleanTranscript(ctx context.Context, transcript, language string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return transcript, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(cleanupPrompt, language, transcript), genai.RoleUser),
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		g.logger.Warn("Transcript cleanup failed, returning raw transcript", zap.Error(err))
		return transcript, nil
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		g.logger.Warn("Transcript cleanup produced no candidates, returning raw transcript")
		return transcript, nil
	}

	var cleaned string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			cleaned += part.Text
		}
	}

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return transcript, nil
	}

	return cleaned, nil
}

var _ repositories.TranscriptCleaner = &GeminiCleaner{}
