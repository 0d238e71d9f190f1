package store

import (
	"context"
	"errors"
	"time"
)

// RootPath is the path scope every preference cookie is written under.
const RootPath = "/"

// OneYear is the expiry applied to persisted preferences.
const OneYear = 365 * 24 * time.Hour

// ErrNotFound is returned when a key is absent or has expired.
var ErrNotFound = errors.New("no value for key")

// KV is the client-local, origin-scoped key/value storage. Values are strings
// and expire maxAge after they were last written.
type KV interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string, maxAge time.Duration) error
	PurgeExpired(ctx context.Context) (int, error)
}
