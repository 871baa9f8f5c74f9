package worker

import (
	"sort"
	"time"

	"github.com/xavierca1/green-crm/internal/entity"
)

// PlannedFire é um envio futuro de um trigger para um lead.
type PlannedFire struct {
	Key      string
	At       time.Time
	Trigger  entity.Trigger
	Lead     entity.Lead
	Template entity.MessageTemplate
}

func (p PlannedFire) Message() string {
	return p.Template.Render(p.Lead.Name)
}

// Plan calcula os envios pendentes de um snapshot. É puro: mesmo snapshot e mesmo now dão o mesmo plano.
// Referências quebradas e datas inválidas só descartam o trigger afetado.
func Plan(snap *entity.Snapshot, now time.Time) []PlannedFire {
	if snap == nil || snap.GreenApiConfig == nil || len(snap.Leads) == 0 || len(snap.Templates) == 0 {
		return nil
	}
	triggers := snap.EnabledTriggers()
	if len(triggers) == 0 {
		return nil
	}

	byKey := make(map[string]PlannedFire)
	for _, trigger := range triggers {
		tpl, ok := snap.FindTemplate(trigger.TemplateID)
		if !ok {
			continue
		}

		switch trigger.Type {
		case entity.TriggerScheduled:
			at, ok := trigger.ScheduledAt()
			if !ok || !at.After(now) {
				continue
			}
			lead, ok := snap.FindLead(trigger.Config.LeadID)
			if !ok {
				continue
			}
			key := trigger.ID + "/" + lead.ID
			byKey[key] = PlannedFire{Key: key, At: at, Trigger: trigger, Lead: lead, Template: tpl}

		case entity.TriggerMeetingReminder:
			offset := trigger.ReminderOffset()
			if offset <= 0 {
				continue
			}
			for _, meeting := range snap.Meetings {
				if meeting.StartTime.IsZero() {
					continue
				}
				at := meeting.StartTime.Add(-offset)
				if !at.After(now) {
					continue
				}
				lead, ok := snap.FindLeadByName(meeting.Attendee)
				if !ok {
					continue
				}
				key := trigger.ID + "/" + meeting.ID + "/" + lead.ID
				byKey[key] = PlannedFire{Key: key, At: at, Trigger: trigger, Lead: lead, Template: tpl}
			}

		// new-lead é enviado na criação do lead, nunca por timer
		default:
		}
	}

	plan := make([]PlannedFire, 0, len(byKey))
	for _, p := range byKey {
		plan = append(plan, p)
	}
	sort.Slice(plan, func(i, j int) bool {
		if plan[i].At.Equal(plan[j].At) {
			return plan[i].Key < plan[j].Key
		}
		return plan[i].At.Before(plan[j].At)
	})
	return plan
}
