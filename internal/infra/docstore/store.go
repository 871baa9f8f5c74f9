// Package docstore implementa a árvore chave-valor hierárquica com assinatura em tempo real
// usada como banco de cada tenant ("users/{tenantId}/...").
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

var (
	ErrInvalidPath = errors.New("docstore: caminho inválido")
	ErrClosed      = errors.New("docstore: store fechado")
)

// Unsubscribe desliga o listener; chamadas repetidas não têm efeito.
type Unsubscribe func()

type Store interface {
	Get(ctx context.Context, path string) (any, error)
	// Set substitui a subárvore. value nil remove a chave.
	Set(ctx context.Context, path string, value any) error
	// Update mescla campos na subárvore; campos nil são removidos.
	Update(ctx context.Context, path string, fields map[string]any) error
	Remove(ctx context.Context, path string) error
	// MultiUpdate aplica várias escritas absolutas de forma atômica.
	MultiUpdate(ctx context.Context, updates map[string]any) error
	PushKey() string
	// Subscribe entrega o valor atual e depois cada mudança, em série, numa goroutine própria.
	Subscribe(ctx context.Context, path string, fn func(value any)) (Unsubscribe, error)
	Close() error
}

// backend persiste documentos JSON inteiros, um por chave "colecao/id".
type backend interface {
	load(ctx context.Context, key string) ([]byte, error)
	// apply carrega os documentos, chama fn e grava o resultado de forma atômica.
	// Um valor nil no mapa devolvido apaga o documento.
	apply(ctx context.Context, keys []string, fn func(current map[string][]byte) (map[string][]byte, error)) error
	close() error
}

// TreeStore traduz operações por caminho em leituras/escritas de documentos.
type TreeStore struct {
	backend     backend
	hub         *hub
	keys        *keyGenerator
	localNotify bool

	mu     sync.RWMutex
	closed bool
}

func newTreeStore(b backend, localNotify bool) *TreeStore {
	return &TreeStore{
		backend:     b,
		hub:         newHub(),
		keys:        newKeyGenerator(),
		localNotify: localNotify,
	}
}

func (s *TreeStore) Get(ctx context.Context, path string) (any, error) {
	key, inner, err := splitDocPath(path)
	if err != nil {
		return nil, err
	}
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	raw, err := s.backend.load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", key, err)
	}
	doc, err := decodeDoc(raw)
	if err != nil {
		return nil, err
	}
	return getIn(doc, inner), nil
}

func (s *TreeStore) Set(ctx context.Context, path string, value any) error {
	return s.MultiUpdate(ctx, map[string]any{path: value})
}

func (s *TreeStore) Update(ctx context.Context, path string, fields map[string]any) error {
	updates := make(map[string]any, len(fields))
	for field, v := range fields {
		// campo vazio resolveria para o próprio caminho e substituiria a subárvore
		if len(splitPath(field)) == 0 {
			return fmt.Errorf("%w: campo %q", ErrInvalidPath, field)
		}
		updates[joinPath(path, field)] = v
	}
	return s.MultiUpdate(ctx, updates)
}

func (s *TreeStore) Remove(ctx context.Context, path string) error {
	return s.MultiUpdate(ctx, map[string]any{path: nil})
}

func (s *TreeStore) MultiUpdate(ctx context.Context, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	if err := s.checkOpen(); err != nil {
		return err
	}

	type write struct {
		inner []string
		value any
	}
	byDoc := make(map[string][]write)
	paths := make([]string, 0, len(updates))
	for p := range updates {
		paths = append(paths, p)
	}
	// caminhos mais curtos primeiro: "a" e depois "a/b" produz o mesmo resultado em qualquer backend
	sort.Slice(paths, func(i, j int) bool { return len(splitPath(paths[i])) < len(splitPath(paths[j])) })

	for _, p := range paths {
		key, inner, err := splitDocPath(p)
		if err != nil {
			return err
		}
		value, err := normalize(updates[p])
		if err != nil {
			return fmt.Errorf("valor inválido em %s: %w", p, err)
		}
		byDoc[key] = append(byDoc[key], write{inner: inner, value: value})
	}

	keys := make([]string, 0, len(byDoc))
	for k := range byDoc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := s.backend.apply(ctx, keys, func(current map[string][]byte) (map[string][]byte, error) {
		next := make(map[string][]byte, len(keys))
		for _, key := range keys {
			doc, err := decodeDoc(current[key])
			if err != nil {
				return nil, err
			}
			for _, w := range byDoc[key] {
				doc = setIn(doc, w.inner, w.value)
			}
			raw, err := encodeDoc(doc)
			if err != nil {
				return nil, err
			}
			next[key] = raw
		}
		return next, nil
	})
	if err != nil {
		return fmt.Errorf("erro ao gravar %v: %w", keys, err)
	}

	if s.localNotify {
		for _, key := range keys {
			s.hub.publish(key)
		}
	}
	return nil
}

func (s *TreeStore) PushKey() string {
	return s.keys.next()
}

func (s *TreeStore) Subscribe(ctx context.Context, path string, fn func(value any)) (Unsubscribe, error) {
	key, _, err := splitDocPath(path)
	if err != nil {
		return nil, err
	}
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	read := func() (any, error) {
		return s.Get(context.Background(), path)
	}
	sub := s.hub.subscribe(key, read, fn)
	go func() {
		select {
		case <-ctx.Done():
			sub.cancel()
		case <-sub.done:
		}
	}()
	return sub.cancel, nil
}

func (s *TreeStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.hub.closeAll()
	if err := s.backend.close(); err != nil {
		log.Printf("⚠️ [DocStore] Erro ao fechar backend: %v", err)
		return err
	}
	return nil
}

func (s *TreeStore) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}
