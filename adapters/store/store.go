// Package store keeps the single session record of a client.
package store

import (
	"context"
	"time"

	"github.com/layer-3/walletgate/core"
)

// DefaultKey is the storage key of the session record
const DefaultKey = "walletgate:session"

// Blob is raw single-key storage. Stores implement it so Sealed can wrap them.
type Blob interface {
	LoadRaw(ctx context.Context) ([]byte, error)
	SaveRaw(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// expiringBlob drops the stored value after ttl
type expiringBlob interface {
	SaveRawFor(ctx context.Context, data []byte, ttl time.Duration) error
}

// remaining is how long record stays valid at now, never less than a millisecond
func remaining(record core.SessionRecord, ttl time.Duration, now time.Time) time.Duration {
	if ttl <= 0 {
		ttl = core.DefaultSessionTTL
	}
	left := record.CreatedAt().Add(ttl).Sub(now)
	if left < time.Millisecond {
		return time.Millisecond
	}
	return left
}

func loadRecord(ctx context.Context, b Blob) (core.SessionRecord, error) {
	data, err := b.LoadRaw(ctx)
	if err != nil {
		return core.SessionRecord{}, err
	}
	return core.DecodeSessionRecord(data)
}

func saveRecord(ctx context.Context, b Blob, record core.SessionRecord) error {
	data, err := core.EncodeSessionRecord(record)
	if err != nil {
		return err
	}
	return b.SaveRaw(ctx, data)
}
