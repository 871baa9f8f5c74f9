package docstore

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// keyGenerator gera chaves ordenadas por tempo para itens novos de coleções.
type keyGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newKeyGenerator() *keyGenerator {
	return &keyGenerator{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

func (g *keyGenerator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String())
}
