package docstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/dgraph-io/badger/v3"
)

type badgerBackend struct {
	db *badger.DB
	// serializa read-modify-write; badger só detecta conflito no commit
	mu sync.Mutex
}

// NewBadgerStore abre (ou cria) um store embarcado em dir.
func NewBadgerStore(dir string) (*TreeStore, error) {
	return OpenBadgerStore(badger.DefaultOptions(dir))
}

// OpenBadgerStore aceita opções prontas (ex.: WithInMemory nos testes).
func OpenBadgerStore(opts badger.Options) (*TreeStore, error) {
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir badger em %s: %w", opts.Dir, err)
	}
	log.Printf("✅ [DocStore] Badger aberto em %s (in-memory=%v)", opts.Dir, opts.InMemory)
	return newTreeStore(&badgerBackend{db: db}, true), nil
}

func (b *badgerBackend) load(_ context.Context, key string) ([]byte, error) {
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	return raw, err
}

func (b *badgerBackend) apply(_ context.Context, keys []string, fn func(map[string][]byte) (map[string][]byte, error)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.db.Update(func(txn *badger.Txn) error {
		current := make(map[string][]byte, len(keys))
		for _, k := range keys {
			item, err := txn.Get([]byte(k))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if current[k], err = item.ValueCopy(nil); err != nil {
				return err
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		for k, raw := range next {
			if raw == nil {
				if err := txn.Delete([]byte(k)); err != nil {
					return err
				}
				continue
			}
			if err := txn.Set([]byte(k), raw); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerBackend) close() error {
	return b.db.Close()
}
