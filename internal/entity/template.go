package entity

import "strings"

const NamePlaceholder = "{{name}}"

type MessageTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Content     string `json:"content"`
	LastUpdated string `json:"lastUpdated"`
}

// Render substitui todas as ocorrências de {{name}} pelo nome do lead.
func (t MessageTemplate) Render(leadName string) string {
	return strings.ReplaceAll(t.Content, NamePlaceholder, leadName)
}
