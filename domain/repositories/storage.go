package repositories

import "context"

// ObjectStorage abstracts the scratch bucket used for long-running
// recognition jobs
type ObjectStorage interface {
	// Upload writes an object and returns its URI (e.g. gs://bucket/name)
	Upload(ctx context.Context, name string, data []byte) (string, error)
	// Delete removes an object previously created by Upload
	Delete(ctx context.Context, name string) error
}
