package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voxscribe/server/domain/entities"
	"github.com/voxscribe/server/domain/repositories"
)

type TranscriptionRepository struct {
	collection *mongo.Collection
}

// NewTranscriptionRepository creates a new MongoDB transcription repository
func NewTranscriptionRepository(db *mongo.Database) repositories.TranscriptionRepository {
	return &TranscriptionRepository{
		collection: db.Collection("transcriptions"),
	}
}

// Create implements repositories.TranscriptionRepository
func (r *TranscriptionRepository) Create(ctx context.Context, record *entities.Transcription) error {
	if record == nil {
		return errors.New("transcription cannot be nil")
	}

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to create transcription record: %w", err)
	}

	return nil
}

// GetByID implements repositories.TranscriptionRepository
func (r *TranscriptionRepository) GetByID(ctx context.Context, id string) (*entities.Transcription, error) {
	var record entities.Transcription

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transcription: %w", err)
	}

	return &record, nil
}

// List implements repositories.TranscriptionRepository, newest first
func (r *TranscriptionRepository) List(ctx context.Context, limit, offset int) ([]*entities.Transcription, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*entities.Transcription
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode transcriptions: %w", err)
	}

	return records, nil
}
