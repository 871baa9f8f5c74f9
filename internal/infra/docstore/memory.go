package docstore

import (
	"context"
	"sync"
)

type memoryBackend struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryStore cria um store volátil, usado em testes e desenvolvimento local.
func NewMemoryStore() *TreeStore {
	return newTreeStore(&memoryBackend{docs: make(map[string][]byte)}, true)
}

func (b *memoryBackend) load(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.docs[key], nil
}

func (b *memoryBackend) apply(_ context.Context, keys []string, fn func(map[string][]byte) (map[string][]byte, error)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := make(map[string][]byte, len(keys))
	for _, k := range keys {
		current[k] = b.docs[k]
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	for k, raw := range next {
		if raw == nil {
			delete(b.docs, k)
		} else {
			b.docs[k] = raw
		}
	}
	return nil
}

func (b *memoryBackend) close() error { return nil }
