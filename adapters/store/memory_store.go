package store

import (
	"context"
	"sync"

	"github.com/layer-3/walletgate/core"
)

// MemoryStore keeps the record in process memory, like a page's localStorage
type MemoryStore struct {
	data []byte
	mu   sync.RWMutex
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (core.SessionRecord, error) {
	return loadRecord(ctx, s)
}

func (s *MemoryStore) Save(ctx context.Context, record core.SessionRecord) error {
	return saveRecord(ctx, s, record)
}

// LoadRaw returns the stored bytes as written
func (s *MemoryStore) LoadRaw(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, core.ErrSessionNotFound
	}
	return append([]byte(nil), s.data...), nil
}

// SaveRaw replaces the stored bytes
func (s *MemoryStore) SaveRaw(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	return nil
}
