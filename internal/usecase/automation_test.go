package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/green-crm/internal/entity"
)

func TestAutomationUseCase_SaveTemplateAssignsID(t *testing.T) {
	store := seededStore(t, false)
	uc := NewAutomationUseCase(store)
	uc.Now = func() time.Time { return fixedNow }
	ctx := context.Background()

	saved, err := uc.SaveTemplate(ctx, tenant, entity.MessageTemplate{Name: "Promo", Content: "Hi {{name}}"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "2026-03-10", saved.LastUpdated)

	snap, err := NewSyncTenantUseCase(store).Load(ctx, tenant)
	require.NoError(t, err)
	got, ok := snap.FindTemplate(saved.ID)
	require.True(t, ok)
	assert.Equal(t, "Promo", got.Name)
}

func TestAutomationUseCase_DeleteTemplateKeepsTriggers(t *testing.T) {
	store := seededStore(t, false)
	uc := NewAutomationUseCase(store)
	ctx := context.Background()

	require.NoError(t, uc.DeleteTemplate(ctx, tenant, "TPL001"))

	snap, err := NewSyncTenantUseCase(store).Load(ctx, tenant)
	require.NoError(t, err)
	_, ok := snap.FindTemplate("TPL001")
	assert.False(t, ok)
	trigger, ok := snap.FirstEnabled(entity.TriggerNewLead)
	require.True(t, ok)
	assert.Equal(t, "TPL001", trigger.TemplateID)
}

func TestAutomationUseCase_UpdateTriggersReplacesCollection(t *testing.T) {
	store := seededStore(t, false)
	uc := NewAutomationUseCase(store)
	ctx := context.Background()

	saved, err := uc.UpdateTriggers(ctx, tenant, []entity.Trigger{
		{ID: "TRG001", Name: "Welcome", Enabled: false, Type: entity.TriggerNewLead, TemplateID: "TPL001"},
		{Name: "Follow up", Enabled: true, Type: entity.TriggerScheduled, TemplateID: "TPL002",
			Config: &entity.TriggerConfig{DateTime: "2026-03-11T09:00", LeadID: "L1"}},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotEmpty(t, saved[1].ID)

	snap, err := NewSyncTenantUseCase(store).Load(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, snap.Triggers, 2)
	enabled := snap.EnabledTriggers()
	require.Len(t, enabled, 1)
	assert.Equal(t, entity.TriggerScheduled, enabled[0].Type)
	assert.Equal(t, "L1", enabled[0].Config.LeadID)
}

func TestAutomationUseCase_UpdateFlow(t *testing.T) {
	store := seededStore(t, false)
	uc := NewAutomationUseCase(store)
	ctx := context.Background()

	_, err := uc.UpdateFlow(ctx, tenant, []entity.FlowStep{{IncomingMsg: "hello", ResponseMsg: "hi!", DelayMinutes: -3}})
	require.NoError(t, err)

	snap, err := NewSyncTenantUseCase(store).Load(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, snap.Flow, 1)
	assert.Equal(t, "hello", snap.Flow[0].IncomingMsg)
	assert.Zero(t, snap.Flow[0].DelayMinutes)
}

func TestCalendarUseCase_AddMeeting(t *testing.T) {
	store := seededStore(t, false)
	uc := NewCalendarUseCase(store)
	ctx := context.Background()

	start := fixedNow.Add(3 * time.Hour)
	m, err := uc.AddMeeting(ctx, tenant, MeetingInput{Title: "Demo", Attendee: "Raj", StartTime: start, EndTime: start.Add(time.Hour)})
	require.NoError(t, err)

	snap, err := NewSyncTenantUseCase(store).Load(ctx, tenant)
	require.NoError(t, err)
	var found bool
	for _, got := range snap.Meetings {
		if got.ID == m.ID {
			found = true
			assert.True(t, got.StartTime.Equal(start))
		}
	}
	assert.True(t, found)

	_, err = uc.AddMeeting(ctx, tenant, MeetingInput{Title: "Bad", StartTime: start, EndTime: start.Add(-time.Hour)})
	assert.True(t, IsDomainError(err))
}

func TestAutomationUseCase_RejectsInvalidIDs(t *testing.T) {
	store := seededStore(t, false)
	uc := NewAutomationUseCase(store)
	ctx := context.Background()

	requireValidationError(t, uc.DeleteTemplate(ctx, tenant, ""))
	requireValidationError(t, uc.DeleteTemplate(ctx, tenant, " "))

	_, err := uc.SaveTemplate(ctx, tenant, entity.MessageTemplate{ID: "TPL001/content", Content: "x"})
	requireValidationError(t, err)

	_, err = uc.UpdateTriggers(ctx, tenant, []entity.Trigger{{ID: "a/b", Name: "x"}})
	requireValidationError(t, err)

	_, err = uc.UpdateFlow(ctx, tenant, []entity.FlowStep{{ID: " "}})
	requireValidationError(t, err)

	snap, err := NewSyncTenantUseCase(store).Load(ctx, tenant)
	require.NoError(t, err)
	assert.Len(t, snap.Templates, 2)
	tpl, ok := snap.FindTemplate("TPL001")
	require.True(t, ok)
	assert.NotEqual(t, "x", tpl.Content)
	assert.Len(t, snap.Triggers, 2)
	assert.Len(t, snap.Flow, 3)
}
