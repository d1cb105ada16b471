package storage

import "context"

// Storage persists uploaded files under opaque keys. Implementations must
// make Delete idempotent so callers can release replaced objects without
// checking existence first.
type Storage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
