package bridge

import "context"

// StoreClient is the bridge's view of the shared store. Both paths satisfy
// it with the exact semantics of the store itself: Set always succeeds and
// overwrites, Get's boolean reports presence, Del reports whether a mapping
// was removed.
//
// Errors are domain errors only: ErrStoreCorrupted when the store is
// poisoned, ErrStoreUnavailable when the fallback path cannot reach the
// store module at all.
type StoreClient interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context) ([]string, error)
}
