package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/docstore"
	"github.com/xavierca1/green-crm/internal/infra/metrics"
)

type session struct {
	unsubscribe docstore.Unsubscribe
	scheduler   Scheduler
}

// SessionRegistry mantém uma assinatura e um agendador por tenant ativo.
type SessionRegistry struct {
	syncer       TenantSyncer
	newScheduler func(tenantID string) Scheduler

	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessionRegistry(syncer TenantSyncer, newScheduler func(tenantID string) Scheduler) *SessionRegistry {
	return &SessionRegistry{
		syncer:       syncer,
		newScheduler: newScheduler,
		sessions:     make(map[string]*session),
	}
}

// Start encerra a sessão anterior do tenant (se houver) e abre uma nova.
func (r *SessionRegistry) Start(tenantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.endLocked(tenantID)
	return r.startLocked(tenantID)
}

// Ensure abre a sessão só se ainda não existir (ex.: primeira requisição depois de um restart).
func (r *SessionRegistry) Ensure(tenantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[tenantID]; ok {
		return
	}
	if err := r.startLocked(tenantID); err != nil {
		log.Printf("❌ [Session] Erro ao iniciar sessão do tenant %s: %v", tenantID, err)
	}
}

func (r *SessionRegistry) End(tenantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endLocked(tenantID)
}

// StopAll encerra todas as sessões; usado no shutdown.
func (r *SessionRegistry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.sessions {
		r.endLocked(id)
	}
}

func (r *SessionRegistry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) startLocked(tenantID string) error {
	scheduler := r.newScheduler(tenantID)
	unsubscribe, err := r.syncer.Execute(context.Background(), tenantID, func(snap *entity.Snapshot) {
		scheduler.Reschedule(snap)
	})
	if err != nil {
		scheduler.Stop()
		return err
	}

	r.sessions[tenantID] = &session{unsubscribe: unsubscribe, scheduler: scheduler}
	metrics.RecordSessionStarted()
	log.Printf("▶️ [Session] Sessão iniciada para tenant %s", tenantID)
	return nil
}

// endLocked cancela a assinatura antes de parar o agendador, assim nenhum snapshot chega depois do Stop.
func (r *SessionRegistry) endLocked(tenantID string) {
	s, ok := r.sessions[tenantID]
	if !ok {
		return
	}
	delete(r.sessions, tenantID)
	s.unsubscribe()
	s.scheduler.Stop()
	metrics.RecordSessionEnded()
	log.Printf("⏹️ [Session] Sessão encerrada para tenant %s", tenantID)
}
