package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryLedger é o ledger de uma instância só (sem Redis configurado).
type MemoryLedger struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryLedger) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.expires {
		if !exp.After(now) {
			delete(m.expires, k)
		}
	}
	if _, taken := m.expires[key]; taken {
		return false, nil
	}
	m.expires[key] = now.Add(ttl)
	return true, nil
}
