package entity

import "strings"

const DefaultGatewayHost = "api.green-api.com"

type GreenApiConfig struct {
	InstanceID string `json:"instanceId"`
	APIKey     string `json:"apiKey"`
	WebhookURL string `json:"webhookUrl,omitempty"`
}

func (c *GreenApiConfig) Configured() bool {
	return c != nil && c.InstanceID != "" && c.APIKey != ""
}

// Endpoint separa "instancia:host". Sem ':' usa defaultHost.
func (c GreenApiConfig) Endpoint(defaultHost string) (instance, host string) {
	instance, host, found := strings.Cut(c.InstanceID, ":")
	if !found || host == "" {
		host = defaultHost
	}
	if host == "" {
		host = DefaultGatewayHost
	}
	return instance, host
}
