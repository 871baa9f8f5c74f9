package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/docstore"
)

// AutomationUseCase cuida de templates, triggers e passos de fluxo.
type AutomationUseCase struct {
	Store docstore.Store
	Now   func() time.Time
}

func NewAutomationUseCase(store docstore.Store) *AutomationUseCase {
	return &AutomationUseCase{Store: store, Now: time.Now}
}

func (uc *AutomationUseCase) SaveTemplate(ctx context.Context, tenantID string, tpl entity.MessageTemplate) (entity.MessageTemplate, error) {
	if tpl.ID == "" {
		tpl.ID = uc.Store.PushKey()
	} else if err := validateSegments("id", tpl.ID); err != nil {
		return entity.MessageTemplate{}, err
	}
	if tpl.LastUpdated == "" {
		tpl.LastUpdated = uc.Now().Format("2006-01-02")
	}
	if err := uc.Store.Set(ctx, tenantPath(tenantID, colTemplates, tpl.ID), record(tpl)); err != nil {
		return entity.MessageTemplate{}, storeError("erro ao gravar template", err)
	}
	return tpl, nil
}

// DeleteTemplate não limpa triggers que apontam para o template.
func (uc *AutomationUseCase) DeleteTemplate(ctx context.Context, tenantID, templateID string) error {
	if err := validateSegments("id", templateID); err != nil {
		return err
	}
	if err := uc.Store.Remove(ctx, tenantPath(tenantID, colTemplates, templateID)); err != nil {
		return storeError("erro ao remover template", err)
	}
	return nil
}

// UpdateTriggers substitui a coleção inteira de triggers.
func (uc *AutomationUseCase) UpdateTriggers(ctx context.Context, tenantID string, triggers []entity.Trigger) ([]entity.Trigger, error) {
	byID := make(map[string]any, len(triggers))
	for i := range triggers {
		if triggers[i].ID == "" {
			triggers[i].ID = uc.Store.PushKey()
		} else if err := validateSegments("id", triggers[i].ID); err != nil {
			return nil, err
		}
		byID[triggers[i].ID] = record(triggers[i])
	}
	if err := uc.Store.Set(ctx, tenantPath(tenantID, colTriggers), byID); err != nil {
		return nil, storeError("erro ao gravar triggers", err)
	}
	return triggers, nil
}

func (uc *AutomationUseCase) UpdateFlow(ctx context.Context, tenantID string, steps []entity.FlowStep) ([]entity.FlowStep, error) {
	byID := make(map[string]any, len(steps))
	for i := range steps {
		if steps[i].ID == "" {
			steps[i].ID = uc.Store.PushKey()
		} else if err := validateSegments("id", steps[i].ID); err != nil {
			return nil, err
		}
		if steps[i].DelayMinutes < 0 {
			steps[i].DelayMinutes = 0
		}
		byID[steps[i].ID] = record(steps[i])
	}
	if err := uc.Store.Set(ctx, tenantPath(tenantID, colFlow), byID); err != nil {
		return nil, storeError("erro ao gravar fluxo", err)
	}
	return steps, nil
}
