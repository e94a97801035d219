package app

import (
	"context"
)

// Storage is the client-local key/value store the cart is mirrored to.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
