package cache

import "context"

// Store is a read-through cache for computed tax breakdowns. A miss is never
// an error; evaluation just runs again.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}
