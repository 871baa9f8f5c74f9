package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/docstore"
)

type CalendarUseCase struct {
	Store docstore.Store
}

func NewCalendarUseCase(store docstore.Store) *CalendarUseCase {
	return &CalendarUseCase{Store: store}
}

func (uc *CalendarUseCase) AddMeeting(ctx context.Context, tenantID string, input MeetingInput) (*entity.Meeting, error) {
	if input.EndTime.Before(input.StartTime) {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "endTime must not be before startTime"}
	}
	m := &entity.Meeting{
		ID:        uc.Store.PushKey(),
		Title:     input.Title,
		Attendee:  input.Attendee,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}
	data := map[string]any{
		"title":     m.Title,
		"attendee":  m.Attendee,
		"startTime": m.StartTime.UTC().Format(time.RFC3339Nano),
		"endTime":   m.EndTime.UTC().Format(time.RFC3339Nano),
	}
	if err := uc.Store.Set(ctx, tenantPath(tenantID, colMeetings, m.ID), data); err != nil {
		return nil, storeError("erro ao gravar reunião", err)
	}
	return m, nil
}

func (uc *CalendarUseCase) UpdateAdmin(ctx context.Context, tenantID string, admin entity.Admin) error {
	if err := uc.Store.Set(ctx, tenantPath(tenantID, colAdminUser), admin); err != nil {
		return storeError("erro ao gravar perfil", err)
	}
	return nil
}
