package usecase

import (
	"time"

	"github.com/xavierca1/green-crm/internal/entity"
)

const defaultAvatarURL = "https://picsum.photos/100"

// SeedData monta a árvore inicial de um tenant recém-cadastrado.
func SeedData(name, email string, now time.Time) map[string]any {
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }
	meeting := func(title, attendee string, start time.Time, minutes int) map[string]any {
		return map[string]any{
			"title":     title,
			"attendee":  attendee,
			"startTime": start.UTC().Format(time.RFC3339Nano),
			"endTime":   start.Add(time.Duration(minutes) * time.Minute).UTC().Format(time.RFC3339Nano),
		}
	}

	return map[string]any{
		colTemplates: map[string]any{
			"TPL001": record(entity.MessageTemplate{Name: "Welcome Message", Content: "Hi {{name}}, welcome! Thanks for signing up.", LastUpdated: "2023-10-20"}),
			"TPL002": record(entity.MessageTemplate{Name: "Follow-up Reminder", Content: "Hi {{name}}, just a reminder about our meeting tomorrow.", LastUpdated: "2023-10-22"}),
		},
		colTriggers: map[string]any{
			"TRG001": record(entity.Trigger{Name: "New Lead Welcome", Type: entity.TriggerNewLead, Enabled: true, TemplateID: "TPL001"}),
			"TRG002": record(entity.Trigger{Name: "Meeting Reminder (24h)", Type: entity.TriggerMeetingReminder, Enabled: false, TemplateID: "TPL002", Config: &entity.TriggerConfig{MinutesBefore: 1440}}),
		},
		colFlow: map[string]any{
			"1": record(entity.FlowStep{IncomingMsg: "Hi", ResponseMsg: "Hello! Welcome to our service. How can I help you today?", DelayMinutes: 0}),
			"2": record(entity.FlowStep{IncomingMsg: "interested", ResponseMsg: "Great! To get started, could you please tell me a bit more about what you are looking for?", DelayMinutes: 2}),
			"3": record(entity.FlowStep{IncomingMsg: "price", ResponseMsg: "We have several plans available. I can send you a link to our pricing page.", DelayMinutes: 1}),
		},
		colLandingPages: map[string]any{
			"LP001": record(entity.LandingPage{Name: "Winter Offer Campaign", RedirectURL: "/thank-you-winter", CreatedDate: "2023-10-15", LeadsCount: 120}),
			"LP002": record(entity.LandingPage{Name: "Ebook Download", RedirectURL: "/thank-you-ebook", CreatedDate: "2023-09-02", LeadsCount: 450}),
		},
		colMeetings: map[string]any{
			"1": meeting("Discovery Call with Priya Sharma", "Priya Sharma", day(1), 30),
			"2": meeting("Project Kickoff", "Rajesh Kumar", day(2), 60),
			"3": meeting("Follow-up with Sunita Rao", "Sunita Rao", day(-2), 45),
			"4": meeting("Strategy Session", "Amit Singh", day(-5), 60),
		},
		colLeadStatuses: entity.DefaultLeadStatuses(),
		colAdminUser: entity.Admin{
			Name:      name,
			Email:     email,
			AvatarURL: defaultAvatarURL,
			Role:      "Administrator",
		},
	}
}
