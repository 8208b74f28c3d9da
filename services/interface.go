package services

import (
	"context"
	"io"
	"time"
)

// ObjectStore is the slice of the staging-area client the orchestrator needs.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (string, error)
	Exists(ctx context.Context, bucket, key string) (bool, error)
	Copy(ctx context.Context, srcBucket, dstBucket, key string) (string, error)
	Delete(ctx context.Context, bucket, key string) error
	PresignedGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	ObjectURL(bucket, key string) string
}

// Extractor analyzes a readable document URI and returns the recognized
// field names mapped to their textual content.
type Extractor interface {
	Analyze(ctx context.Context, readableURI, modelID string) (map[string]string, error)
}

// ArrivalPublisher announces that a new object landed in the pending area.
type ArrivalPublisher interface {
	Publish(ctx context.Context, key string) error
}
