package entity

import "time"

type TriggerType string

const (
	TriggerNewLead         TriggerType = "new-lead"
	TriggerScheduled       TriggerType = "scheduled"
	TriggerMeetingReminder TriggerType = "meeting-reminder"
)

// TriggerConfig é um payload variante: os campos usados dependem do Type.
// Formatos trocados são tolerados e simplesmente não disparam.
type TriggerConfig struct {
	DateTime      string  `json:"dateTime,omitempty"`
	LeadID        string  `json:"leadId,omitempty"`
	MinutesBefore float64 `json:"minutesBefore,omitempty"`
}

type Trigger struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Enabled    bool           `json:"enabled"`
	Type       TriggerType    `json:"type"`
	TemplateID string         `json:"templateId"`
	Config     *TriggerConfig `json:"config,omitempty"`
}

// ScheduledAt interpreta config.dateTime. ok=false para trigger sem data válida.
func (t Trigger) ScheduledAt() (time.Time, bool) {
	if t.Config == nil || t.Config.DateTime == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if at, err := time.Parse(layout, t.Config.DateTime); err == nil {
			return at, true
		}
	}
	return time.Time{}, false
}

func (t Trigger) ReminderOffset() time.Duration {
	if t.Config == nil {
		return 0
	}
	return time.Duration(t.Config.MinutesBefore * float64(time.Minute))
}
