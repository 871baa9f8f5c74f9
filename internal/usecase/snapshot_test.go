package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshot_NilWhenTenantMissing(t *testing.T) {
	assert.Nil(t, DecodeSnapshot(tenant, nil))
	assert.Nil(t, DecodeSnapshot(tenant, "not a map"))
}

func TestDecodeSnapshot_CollectionsAndOrdering(t *testing.T) {
	raw := map[string]any{
		colLeads: map[string]any{
			"a": map[string]any{"name": "Old", "mobile": "9000000001", "dateAdded": "2026-01-01T00:00:00Z"},
			"b": map[string]any{"name": "New", "mobile": "9000000002", "dateAdded": "2026-02-01T00:00:00Z"},
			"c": map[string]any{"name": "Undated", "mobile": "9000000003"},
			"d": "garbage",
		},
		// lista no lugar de mapa: índice vira id
		colTemplates: []any{nil, map[string]any{"name": "T", "content": "Hi {{name}}"}},
		colMeetings: map[string]any{
			"m1": map[string]any{"title": "Call", "attendee": "New", "startTime": "2026-03-01T10:00:00Z", "endTime": "2026-03-01T10:30:00Z"},
			"m2": map[string]any{"title": "Broken", "attendee": "Old", "startTime": "tomorrow"},
		},
		colGreenApiConfig: map[string]any{"instanceId": "1101", "apiKey": "k"},
	}

	snap := DecodeSnapshot(tenant, raw)

	require.NotNil(t, snap)
	require.Len(t, snap.Leads, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{snap.Leads[0].ID, snap.Leads[1].ID, snap.Leads[2].ID})

	require.Len(t, snap.Templates, 1)
	assert.Equal(t, "1", snap.Templates[0].ID)

	require.Len(t, snap.Meetings, 2)
	for _, m := range snap.Meetings {
		if m.ID == "m1" {
			assert.True(t, m.StartTime.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))
		} else {
			assert.True(t, m.StartTime.IsZero())
		}
	}

	require.NotNil(t, snap.GreenApiConfig)
	assert.Equal(t, "1101", snap.GreenApiConfig.InstanceID)
	assert.Nil(t, snap.AdminUser)
}

func TestDecodeSnapshot_SortsDateOnlyLeads(t *testing.T) {
	raw := map[string]any{
		colLeads: map[string]any{
			"a": map[string]any{"name": "Sem data", "mobile": "9000000001"},
			"b": map[string]any{"name": "Dia", "mobile": "9000000002", "dateAdded": "2023-10-20"},
			"c": map[string]any{"name": "Completa", "mobile": "9000000003", "dateAdded": "2023-10-19T09:00:00Z"},
		},
	}
	snap := DecodeSnapshot(tenant, raw)
	require.NotNil(t, snap)
	require.Len(t, snap.Leads, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{snap.Leads[0].ID, snap.Leads[1].ID, snap.Leads[2].ID})
}
