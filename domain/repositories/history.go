package repositories

import (
	"context"
	"errors"

	"github.com/voxscribe/server/domain/entities"
)

// ErrNotFound is returned when a transcription record does not exist
var ErrNotFound = errors.New("transcription not found")

// TranscriptionRepository defines data access methods for transcription records
type TranscriptionRepository interface {
	Create(ctx context.Context, record *entities.Transcription) error
	GetByID(ctx context.Context, id string) (*entities.Transcription, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Transcription, error)
}
