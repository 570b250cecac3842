package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session entry not found")

// Store keeps short-lived per-visitor entries. Values expire after their TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
