package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/docstore"
	"github.com/xavierca1/green-crm/internal/infra/integration/greenapi"
)

const testMessage = "Green CRM - your API connection is working!👍"

type GatewayUseCase struct {
	Store   docstore.Store
	Gateway MessageGateway
}

func NewGatewayUseCase(store docstore.Store, gateway MessageGateway) *GatewayUseCase {
	return &GatewayUseCase{Store: store, Gateway: gateway}
}

func (uc *GatewayUseCase) Connect(ctx context.Context, tenantID string, input ConnectGatewayInput) error {
	if err := validationFailed(ValidateConnectGatewayInput(input)); err != nil {
		return err
	}
	cfg := entity.GreenApiConfig{
		InstanceID: input.InstanceID,
		APIKey:     input.APIKey,
		WebhookURL: input.WebhookURL,
	}
	if err := uc.Store.Set(ctx, tenantPath(tenantID, colGreenApiConfig), cfg); err != nil {
		return storeError("erro ao gravar config do gateway", err)
	}
	log.Printf("🔌 [Gateway] Tenant %s conectado à instância %s", tenantID, input.InstanceID)
	return nil
}

func (uc *GatewayUseCase) Disconnect(ctx context.Context, tenantID string) error {
	if err := uc.Store.Remove(ctx, tenantPath(tenantID, colGreenApiConfig)); err != nil {
		return storeError("erro ao remover config do gateway", err)
	}
	log.Printf("🔌 [Gateway] Tenant %s desconectado", tenantID)
	return nil
}

// SendTest é o fluxo "Test Connection": o resultado do provedor vai direto ao usuário.
func (uc *GatewayUseCase) SendTest(ctx context.Context, tenantID, mobile string) greenapi.SendResult {
	return uc.SendConfigured(ctx, tenantID, mobile, testMessage)
}

// SendConfigured lê a config gravada no momento do envio.
func (uc *GatewayUseCase) SendConfigured(ctx context.Context, tenantID, mobile, message string) greenapi.SendResult {
	raw, err := uc.Store.Get(ctx, tenantPath(tenantID, colGreenApiConfig))
	if err != nil {
		log.Printf("❌ [Gateway] Erro ao ler config do tenant %s: %v", tenantID, err)
		return greenapi.SendResult{Success: false, Message: err.Error()}
	}
	var cfg entity.GreenApiConfig
	if !decodeValue(raw, &cfg) {
		return greenapi.SendResult{Success: false, Message: "Green API is not connected."}
	}
	return uc.Gateway.Send(ctx, &cfg, mobile, message)
}

// Dispatch entrega um envio do agendador. É fire-and-forget: o resultado só é registrado.
func (uc *GatewayUseCase) Dispatch(ctx context.Context, msg entity.OutboundMessage) error {
	result := uc.SendConfigured(ctx, msg.TenantID, msg.Mobile, msg.Message)
	if !result.Success {
		log.Printf("⚠️ [Gateway] Envio do trigger %s falhou: %s", msg.TriggerID, result.Message)
	}
	return nil
}
