package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ObjectStorage defines the object storage operations used for schedule snapshots.
type ObjectStorage interface {
	// PutObject uploads body under objectKey.
	PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

// SnapshotKey returns a fresh object key for a plan's schedule snapshot.
func SnapshotKey(planID primitive.ObjectID) string {
	return fmt.Sprintf("snapshots/%s/%s.json", planID.Hex(), uuid.NewString())
}
