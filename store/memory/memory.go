// Package memory provides an in-memory token store for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/jcarver/wellpath/store"
)

// Store implements store.Store in process memory.
type Store struct {
	mu     sync.RWMutex
	record []byte
}

var _ store.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.record == nil {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(s.record))
	copy(out, s.record)
	return out, nil
}

func (s *Store) Save(ctx context.Context, record []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = make([]byte, len(record))
	copy(s.record, record)
	return nil
}

func (s *Store) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	return nil
}
