package usecase

import "time"

type NewLeadInput struct {
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	Profession string `json:"profession"`
	City       string `json:"city"`
	State      string `json:"state"`
}

type MeetingInput struct {
	Title     string    `json:"title"`
	Attendee  string    `json:"attendee"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type ConnectGatewayInput struct {
	InstanceID string `json:"instanceId"`
	APIKey     string `json:"apiKey"`
	WebhookURL string `json:"webhookUrl"`
}

type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthOutput struct {
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}
