package store

import (
	"context"
	"time"

	"github.com/layer-3/walletgate/core"
	"github.com/layer-3/walletgate/ports"
)

// Sealed stores records as sealed tokens so edits to the stored value are detected
type Sealed struct {
	blob   Blob
	sealer ports.Sealer
	ttl    time.Duration
}

// NewSealed wraps blob; ttl bounds the seal's validity
func NewSealed(blob Blob, sealer ports.Sealer, ttl time.Duration) *Sealed {
	if ttl <= 0 {
		ttl = core.DefaultSessionTTL
	}
	return &Sealed{blob: blob, sealer: sealer, ttl: ttl}
}

func (s *Sealed) Load(ctx context.Context) (core.SessionRecord, error) {
	data, err := s.blob.LoadRaw(ctx)
	if err != nil {
		return core.SessionRecord{}, err
	}
	return s.sealer.Open(string(data))
}

func (s *Sealed) Save(ctx context.Context, record core.SessionRecord) error {
	sealed, err := s.sealer.Seal(record, s.ttl)
	if err != nil {
		return err
	}
	if eb, ok := s.blob.(expiringBlob); ok {
		return eb.SaveRawFor(ctx, []byte(sealed), remaining(record, s.ttl, time.Now()))
	}
	return s.blob.SaveRaw(ctx, []byte(sealed))
}

func (s *Sealed) Clear(ctx context.Context) error {
	return s.blob.Clear(ctx)
}
