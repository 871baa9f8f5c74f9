package entity

import "time"

type Meeting struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Attendee é texto livre comparado com Lead.Name por igualdade exata.
	Attendee  string    `json:"attendee"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type FlowStep struct {
	ID           string  `json:"id"`
	IncomingMsg  string  `json:"incomingMsg"`
	ResponseMsg  string  `json:"responseMsg"`
	DelayMinutes float64 `json:"delayMinutes"`
}

type LandingPage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RedirectURL string `json:"redirectUrl"`
	CreatedDate string `json:"createdDate"`
	LeadsCount  int    `json:"leadsCount"`
}

type Admin struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
	Role      string `json:"role"`
}
