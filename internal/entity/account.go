package entity

import "time"

// Account é a credencial de login; o ID é também o identificador do tenant.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OutboundMessage é um envio pronto, seja direto ou via fila.
type OutboundMessage struct {
	TenantID  string `json:"tenant_id"`
	TriggerID string `json:"trigger_id,omitempty"`
	LeadID    string `json:"lead_id,omitempty"`
	Mobile    string `json:"mobile"`
	Message   string `json:"message"`
	Origin    string `json:"origin"`
}
