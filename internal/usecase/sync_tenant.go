package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/docstore"
)

type SyncTenantUseCase struct {
	Store docstore.Store
}

func NewSyncTenantUseCase(store docstore.Store) *SyncTenantUseCase {
	return &SyncTenantUseCase{Store: store}
}

// Execute assina a árvore inteira do tenant e entrega um Snapshot novo a cada mudança,
// incluindo a entrega inicial. O callback recebe nil enquanto o tenant não existir.
func (uc *SyncTenantUseCase) Execute(ctx context.Context, tenantID string, callback func(*entity.Snapshot)) (docstore.Unsubscribe, error) {
	unsubscribe, err := uc.Store.Subscribe(ctx, tenantPath(tenantID), func(raw any) {
		callback(DecodeSnapshot(tenantID, raw))
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao assinar tenant %s: %w", tenantID, err)
	}
	log.Printf("🔄 [Sync] Assinatura ativa para tenant %s", tenantID)
	return unsubscribe, nil
}

// Load lê o estado atual sem assinar.
func (uc *SyncTenantUseCase) Load(ctx context.Context, tenantID string) (*entity.Snapshot, error) {
	raw, err := uc.Store.Get(ctx, tenantPath(tenantID))
	if err != nil {
		return nil, storeError("erro ao carregar tenant", err)
	}
	return DecodeSnapshot(tenantID, raw), nil
}
