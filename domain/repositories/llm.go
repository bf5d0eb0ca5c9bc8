package repositories

import "context"

// TranscriptCleaner abstracts the optional LLM pass that fixes
// punctuation and casing on raw transcripts
type TranscriptCleaner interface {
	CleanTranscript(ctx context.Context, transcript, language string) (string, error)
}
