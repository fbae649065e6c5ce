package ports

import (
	"context"
	"time"

	"github.com/layer-3/walletgate/core"
)

// SessionStore persists the single session record of a client
type SessionStore interface {
	// Load returns core.ErrSessionNotFound when nothing is stored
	// and an error wrapping core.ErrStorageCorrupt for malformed data
	Load(ctx context.Context) (core.SessionRecord, error)
	Save(ctx context.Context, record core.SessionRecord) error
	Clear(ctx context.Context) error
}

// Sealer converts session records to tamper-evident strings and back
type Sealer interface {
	Seal(record core.SessionRecord, ttl time.Duration) (string, error)
	Open(sealed string) (core.SessionRecord, error)
}
