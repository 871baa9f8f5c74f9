package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/docstore"
	"github.com/xavierca1/green-crm/internal/infra/integration/greenapi"
	"github.com/xavierca1/green-crm/internal/infra/metrics"
)

const (
	OriginManual      = "manual"
	OriginLandingPage = "landing-page"
)

type LeadUseCase struct {
	Store   docstore.Store
	Gateway MessageGateway
	Now     func() time.Time
}

func NewLeadUseCase(store docstore.Store, gateway MessageGateway) *LeadUseCase {
	return &LeadUseCase{
		Store:   store,
		Gateway: gateway,
		Now:     time.Now,
	}
}

// Add grava o lead e, depois de gravado, dispara a mensagem de boas-vindas
// do primeiro trigger new-lead habilitado. Falhas no envio não desfazem o lead.
func (uc *LeadUseCase) Add(ctx context.Context, tenantID string, input NewLeadInput, origin string) (*entity.Lead, error) {
	if err := validationFailed(ValidateNewLeadInput(input)); err != nil {
		return nil, err
	}

	lead := &entity.Lead{
		ID:         uc.Store.PushKey(),
		Name:       input.Name,
		Mobile:     input.Mobile,
		Profession: input.Profession,
		City:       input.City,
		State:      input.State,
		Status:     entity.DefaultLeadStatus,
		DateAdded:  uc.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := uc.Store.Set(ctx, tenantPath(tenantID, colLeads, lead.ID), record(lead)); err != nil {
		return nil, storeError("erro ao gravar lead", err)
	}
	metrics.RecordLeadCreated(origin)
	log.Printf("✅ [Leads] Lead %s (%s) criado para tenant %s via %s", lead.ID, lead.Name, tenantID, origin)

	// a requisição pode terminar antes do envio; o envio segue mesmo assim
	uc.dispatchWelcome(context.WithoutCancel(ctx), tenantID, *lead)
	return lead, nil
}

// dispatchWelcome relê o tenant direto do store (não do snapshot em cache) para evitar dados velhos.
func (uc *LeadUseCase) dispatchWelcome(ctx context.Context, tenantID string, lead entity.Lead) (greenapi.SendResult, bool) {
	raw, err := uc.Store.Get(ctx, tenantPath(tenantID))
	if err != nil {
		log.Printf("❌ [Leads] Erro ao ler tenant para boas-vindas: %v", err)
		return greenapi.SendResult{}, false
	}

	snap := DecodeSnapshot(tenantID, raw)
	if snap == nil || snap.GreenApiConfig == nil || len(snap.Triggers) == 0 {
		log.Println("⚠️ [Leads] Sem config ou triggers: boas-vindas não enviada")
		return greenapi.SendResult{}, false
	}

	trigger, ok := snap.FirstEnabled(entity.TriggerNewLead)
	if !ok {
		return greenapi.SendResult{}, false
	}
	tpl, ok := snap.FindTemplate(trigger.TemplateID)
	if !ok {
		log.Printf("⚠️ [Leads] Template %s do trigger %s não existe", trigger.TemplateID, trigger.Name)
		return greenapi.SendResult{}, false
	}

	log.Printf("📤 [Leads] Enviando boas-vindas para %s...", lead.Name)
	result := uc.Gateway.Send(ctx, snap.GreenApiConfig, lead.Mobile, tpl.Render(lead.Name))
	if !result.Success {
		log.Printf("⚠️ [Leads] Boas-vindas para %s falhou: %s", lead.Name, result.Message)
	}
	metrics.RecordTriggerFire(string(entity.TriggerNewLead))
	return result, true
}

// Capture cria um lead vindo do formulário público de uma landing page.
func (uc *LeadUseCase) Capture(ctx context.Context, tenantID, landingPageID string, input NewLeadInput) (*entity.Lead, error) {
	if err := validateSegments("tenantId", tenantID); err != nil {
		return nil, err
	}
	if err := validateSegments("landingPageId", landingPageID); err != nil {
		return nil, err
	}
	page, err := uc.Store.Get(ctx, tenantPath(tenantID, colLandingPages, landingPageID))
	if err != nil {
		return nil, storeError("erro ao ler landing page", err)
	}
	if page == nil {
		return nil, notFound("landing page")
	}
	return uc.Add(ctx, tenantID, input, OriginLandingPage)
}

// Update mescla campos no lead. O id nunca é gravado.
func (uc *LeadUseCase) Update(ctx context.Context, tenantID, leadID string, fields map[string]any) error {
	if err := validateSegments("id", leadID); err != nil {
		return err
	}
	delete(fields, "id")
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	if err := validateSegments("field", keys...); err != nil {
		return err
	}
	if err := uc.Store.Update(ctx, tenantPath(tenantID, colLeads, leadID), fields); err != nil {
		return storeError("erro ao atualizar lead", err)
	}
	return nil
}

// Delete remove vários leads numa única escrita atômica.
func (uc *LeadUseCase) Delete(ctx context.Context, tenantID string, leadIDs []string) error {
	if len(leadIDs) == 0 {
		return nil
	}
	if err := validateSegments("ids", leadIDs...); err != nil {
		return err
	}
	updates := make(map[string]any, len(leadIDs))
	for _, id := range leadIDs {
		updates[tenantPath(tenantID, colLeads, id)] = nil
	}
	if err := uc.Store.MultiUpdate(ctx, updates); err != nil {
		return storeError("erro ao remover leads", err)
	}
	log.Printf("🗑️ [Leads] %d lead(s) removido(s) do tenant %s", len(leadIDs), tenantID)
	return nil
}

// UpdateStatuses substitui a lista de status. Leads com status removido ficam como estão.
func (uc *LeadUseCase) UpdateStatuses(ctx context.Context, tenantID string, statuses []entity.LeadStatus) error {
	if err := uc.Store.Set(ctx, tenantPath(tenantID, colLeadStatuses), statuses); err != nil {
		return storeError("erro ao gravar status", err)
	}
	return nil
}
