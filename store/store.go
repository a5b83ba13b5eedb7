// Package store defines the secure token store: persistence of a single
// serialized session record at whole-record granularity.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no session record is persisted.
var ErrNotFound = errors.New("no session record stored")

// ErrUnreadable is returned by Load when a record exists but cannot be
// recovered, e.g. it was sealed under a different passphrase. Callers
// should treat the record as lost, not the store as broken.
var ErrUnreadable = errors.New("session record unreadable")

// Store persists one opaque session record. Save replaces the record
// atomically as a whole; a reader never observes a partial write. Delete
// is idempotent.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, record []byte) error
	Delete(ctx context.Context) error
	Close() error
}
