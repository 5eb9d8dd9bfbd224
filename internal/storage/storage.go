package storage

import (
	"context"
	"fmt"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

const rawResponsePrefix = "raw-responses"

// RawResponseArchive keeps model replies that could not be parsed so they can
// be inspected later.
type RawResponseArchive interface {
	// Put stores body under a new key for kind ("workout", "alternatives", ...)
	// and returns the key.
	Put(ctx context.Context, kind, body string) (string, error)

	// PresignGet creates a temporary URL that allows GET requests for the
	// object stored under key.
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}

// ObjectKey lays raw replies out by kind and UTC day.
func ObjectKey(kind string, at time.Time, id string) string {
	return fmt.Sprintf("%s/%s/%s/%s.txt", rawResponsePrefix, kind, at.UTC().Format(time.DateOnly), id)
}
