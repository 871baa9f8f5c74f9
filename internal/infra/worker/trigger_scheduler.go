package worker

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/metrics"
)

// Dispatcher entrega uma mensagem pronta (direto no gateway ou via fila).
type Dispatcher interface {
	Dispatch(ctx context.Context, msg entity.OutboundMessage) error
}

// Ledger registra envios já feitos para que duas instâncias não disparem o mesmo timer.
type Ledger interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

const defaultLedgerTTL = 48 * time.Hour

type pendingFire struct {
	fire  PlannedFire
	timer Timer
}

// TriggerScheduler mantém os timers de um tenant. A cada snapshot tudo é cancelado e recalculado
// sob o mesmo lock, então duas gerações de timers nunca coexistem.
type TriggerScheduler struct {
	tenantID   string
	dispatcher Dispatcher
	ledger     Ledger
	ledgerTTL  time.Duration
	clock      Clock

	mu         sync.Mutex
	generation uint64
	pending    map[string]*pendingFire
	stopped    bool
}

type Option func(*TriggerScheduler)

func WithClock(c Clock) Option {
	return func(s *TriggerScheduler) { s.clock = c }
}

func WithLedger(l Ledger, ttl time.Duration) Option {
	return func(s *TriggerScheduler) {
		s.ledger = l
		if ttl > 0 {
			s.ledgerTTL = ttl
		}
	}
}

func NewTriggerScheduler(tenantID string, dispatcher Dispatcher, opts ...Option) *TriggerScheduler {
	s := &TriggerScheduler{
		tenantID:   tenantID,
		dispatcher: dispatcher,
		ledgerTTL:  defaultLedgerTTL,
		clock:      realClock{},
		pending:    make(map[string]*pendingFire),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reschedule troca o plano atual pelo plano do snapshot. Snapshot nil deixa o agendador ocioso.
func (s *TriggerScheduler) Reschedule(snap *entity.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.cancelLocked()
	s.generation++

	now := s.clock.Now()
	plan := Plan(snap, now)
	gen := s.generation
	for _, p := range plan {
		s.pending[p.Key] = &pendingFire{
			fire:  p,
			timer: s.clock.AfterFunc(p.At.Sub(now), func() { s.fire(gen, p) }),
		}
	}
	metrics.AddPendingTimers(len(plan))

	if len(plan) == 0 {
		log.Printf("💤 [Scheduler] Tenant %s: nenhum envio pendente", s.tenantID)
		return
	}
	log.Printf("⏰ [Scheduler] Tenant %s: %d envio(s) agendado(s), próximo em %s",
		s.tenantID, len(plan), plan[0].At.Sub(now).Round(time.Second))
}

// Stop cancela tudo; depois dele Reschedule não agenda mais nada.
func (s *TriggerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	s.cancelLocked()
}

// Pending devolve o plano armado, ordenado por horário.
func (s *TriggerScheduler) Pending() []PlannedFire {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PlannedFire, 0, len(s.pending))
	for _, p := range s.pending {
		out = append(out, p.fire)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At.Equal(out[j].At) {
			return out[i].Key < out[j].Key
		}
		return out[i].At.Before(out[j].At)
	})
	return out
}

func (s *TriggerScheduler) cancelLocked() {
	for _, p := range s.pending {
		p.timer.Stop()
	}
	metrics.AddPendingTimers(-len(s.pending))
	clear(s.pending)
}

func (s *TriggerScheduler) fire(gen uint64, p PlannedFire) {
	s.mu.Lock()
	// timer que escapou do Stop de uma geração antiga
	if s.stopped || gen != s.generation {
		s.mu.Unlock()
		return
	}
	if _, ok := s.pending[p.Key]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, p.Key)
	metrics.AddPendingTimers(-1)
	s.mu.Unlock()

	ctx := context.Background()
	if s.ledger != nil {
		claimKey := fmt.Sprintf("%s/%s/%d", s.tenantID, p.Key, p.At.Unix())
		ok, err := s.ledger.Claim(ctx, claimKey, s.ledgerTTL)
		if err != nil {
			log.Printf("⚠️ [Scheduler] Ledger indisponível, enviando mesmo assim: %v", err)
		} else if !ok {
			log.Printf("⏭️ [Scheduler] %s já enviado por outra instância", claimKey)
			return
		}
	}

	msg := entity.OutboundMessage{
		TenantID:  s.tenantID,
		TriggerID: p.Trigger.ID,
		LeadID:    p.Lead.ID,
		Mobile:    p.Lead.Mobile,
		Message:   p.Message(),
		Origin:    string(p.Trigger.Type),
	}
	log.Printf("🔔 [Scheduler] Disparando trigger %q para %s", p.Trigger.Name, p.Lead.Name)
	if err := s.dispatcher.Dispatch(ctx, msg); err != nil {
		log.Printf("❌ [Scheduler] Erro ao despachar trigger %s: %v", p.Trigger.ID, err)
	}
	metrics.RecordTriggerFire(string(p.Trigger.Type))
}
