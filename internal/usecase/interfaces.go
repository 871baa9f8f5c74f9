package usecase

import (
	"context"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/docstore"
	"github.com/xavierca1/green-crm/internal/infra/integration/greenapi"
)

// MessageGateway é o cliente do provedor de mensagens.
type MessageGateway interface {
	Send(ctx context.Context, cfg *entity.GreenApiConfig, mobile, message string) greenapi.SendResult
}

type EmailService interface {
	SendWelcome(to, name string) error
}

// Scheduler recebe cada Snapshot do tenant; Stop é definitivo.
type Scheduler interface {
	Reschedule(snap *entity.Snapshot)
	Stop()
}

type TenantSyncer interface {
	Execute(ctx context.Context, tenantID string, callback func(*entity.Snapshot)) (docstore.Unsubscribe, error)
}
