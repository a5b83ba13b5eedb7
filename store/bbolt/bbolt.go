// Package bbolt provides a BBolt-backed secure token store. The session
// record is sealed with a key derived from a local passphrase before it
// touches disk.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/jcarver/wellpath/internal/secure"
	"github.com/jcarver/wellpath/store"
)

const (
	bucketName = "auth"
	recordKey  = "session"
	kdfKey     = "kdf"
	saltLen    = 16
)

// Store implements store.Store backed by a BBolt database file.
type Store struct {
	db         *bbolt.DB
	sealingKey []byte
}

var _ store.Store = (*Store)(nil)

type kdfRecord struct {
	Salt   []byte           `json:"salt"`
	Params secure.KDFParams `json:"params"`
}

// Open opens (or creates) the database at path and derives the sealing key
// from the passphrase. The KDF salt and parameters are persisted in the
// file on first open and reused afterwards, so the same passphrase always
// unseals the same file.
func Open(path, passphrase string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}

	var kdf kdfRecord
	err = db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		if data := b.Get([]byte(kdfKey)); data != nil {
			return json.Unmarshal(data, &kdf)
		}
		salt, err := secure.RandomBytes(saltLen)
		if err != nil {
			return err
		}
		kdf = kdfRecord{Salt: salt, Params: secure.DefaultKDFParams()}
		data, err := json.Marshal(kdf)
		if err != nil {
			return err
		}
		return b.Put([]byte(kdfKey), data)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing token store: %w", err)
	}

	key, err := secure.DeriveKey(passphrase, kdf.Salt, kdf.Params)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("deriving sealing key: %w", err)
	}

	return &Store{db: db, sealingKey: key}, nil
}

// Close wipes the sealing key and closes the underlying database.
func (s *Store) Close() error {
	secure.Wipe(s.sealingKey)
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var envelope store.Envelope
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return store.ErrNotFound
		}
		data := b.Get([]byte(recordKey))
		if data == nil {
			return store.ErrNotFound
		}
		return json.Unmarshal(data, &envelope)
	})
	if err != nil {
		return nil, err
	}
	record, err := store.Open(s.sealingKey, &envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnreadable, err)
	}
	return record, nil
}

func (s *Store) Save(ctx context.Context, record []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	envelope, err := store.Seal(s.sealingKey, record)
	if err != nil {
		return fmt.Errorf("sealing session record: %w", err)
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return b.Put([]byte(recordKey), data)
	})
}

func (s *Store) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(recordKey))
	})
}
