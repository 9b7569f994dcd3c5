package liststore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/promptmarket/internal/common"
)

const badgerConflictRetries = 5

// BadgerStore keeps each list as one JSON array value under "list:{key}".
// Every operation runs in a badger transaction, so concurrent writers are
// serialized by badger's optimistic conflict detection.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func OpenBadger(path string) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return NewBadgerStore(db), nil
}

func badgerKey(key string) []byte {
	return []byte("list:" + key)
}

func (s *BadgerStore) load(txn *badger.Txn, key string) ([]string, error) {
	item, err := txn.Get(badgerKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []string
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &items)
	})
	return items, err
}

func (s *BadgerStore) save(txn *badger.Txn, key string, items []string) error {
	if len(items) == 0 {
		return txn.Delete(badgerKey(key))
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return txn.Set(badgerKey(key), b)
}

// update retries fn when a concurrent transaction touched the same key.
func (s *BadgerStore) update(fn func(txn *badger.Txn) error) error {
	var err error
	for i := 0; i < badgerConflictRetries; i++ {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (s *BadgerStore) PushFront(ctx context.Context, key string, item string) error {
	err := s.update(func(txn *badger.Txn) error {
		items, err := s.load(txn, key)
		if err != nil {
			return err
		}
		return s.save(txn, key, append([]string{item}, items...))
	})
	if err != nil {
		return storeErr("push", key, err)
	}
	return nil
}

func (s *BadgerStore) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	var out []string
	err := s.db.View(func(txn *badger.Txn) error {
		items, err := s.load(txn, key)
		if err != nil {
			return err
		}
		out = sliceRange(items, start, stop)
		return nil
	})
	if err != nil {
		return nil, storeErr("range", key, err)
	}
	return out, nil
}

func (s *BadgerStore) Trim(ctx context.Context, key string, start, stop int64) error {
	err := s.update(func(txn *badger.Txn) error {
		items, err := s.load(txn, key)
		if err != nil {
			return err
		}
		return s.save(txn, key, sliceRange(items, start, stop))
	})
	if err != nil {
		return storeErr("trim", key, err)
	}
	return nil
}

func (s *BadgerStore) Clear(ctx context.Context, key string) error {
	err := s.update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(key))
	})
	if err != nil {
		return storeErr("clear", key, err)
	}
	return nil
}

// Swap is a single transaction: a concurrent commit on the same key makes
// badger reject this one with ErrConflict, reported as a version conflict.
func (s *BadgerStore) Swap(ctx context.Context, key string, expected, items []string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		current, err := s.load(txn, key)
		if err != nil {
			return err
		}
		if !slices.Equal(current, expected) {
			return common.ErrVersionConflict
		}
		return s.save(txn, key, items)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrVersionConflict), errors.Is(err, badger.ErrConflict):
		return common.ErrVersionConflict
	default:
		return storeErr("swap", key, err)
	}
}

func (s *BadgerStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return storeErr("ping", "", errors.New("badger is closed"))
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
