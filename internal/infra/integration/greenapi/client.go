package greenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/metrics"
)

const (
	DefaultCountryCode = "91"
	chatSuffix         = "@c.us"

	msgNotConfigured = "Green API is not configured."
	msgAuthFailed    = "Authentication failed (401). Please check your credentials and ensure your instance is authorized in your Green API account."
	msgNotSent       = "API indicates message was not sent. Check Green API console."
)

type Client struct {
	httpClient  *http.Client
	defaultHost string
	countryCode string
}

func NewClient(httpClient *http.Client, defaultHost, countryCode string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if defaultHost == "" {
		defaultHost = entity.DefaultGatewayHost
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return &Client{
		httpClient:  httpClient,
		defaultHost: defaultHost,
		countryCode: countryCode,
	}
}

func (c *Client) ChatID(mobile string) string {
	return c.countryCode + mobile + chatSuffix
}

func (c *Client) SendURL(cfg entity.GreenApiConfig) string {
	instance, host := cfg.Endpoint(c.defaultHost)
	return fmt.Sprintf("https://%s/waInstance%s/sendMessage/%s", host, instance, cfg.APIKey)
}

// Send envia uma mensagem de texto. Nunca retorna erro: toda falha vira SendResult.
func (c *Client) Send(ctx context.Context, cfg *entity.GreenApiConfig, mobile, message string) SendResult {
	if !cfg.Configured() {
		metrics.RecordGatewaySend("not_configured")
		return SendResult{Success: false, Message: msgNotConfigured}
	}

	result, err := c.send(ctx, *cfg, mobile, message)
	if err != nil {
		log.Printf("❌ [GreenAPI] Falha ao enviar mensagem para %s: %v", mobile, err)
		metrics.RecordGatewaySend("error")
		return SendResult{Success: false, Message: err.Error()}
	}
	if result.Success {
		log.Printf("✅ [GreenAPI] Mensagem enviada para %s (id %s)", mobile, result.MessageID)
		metrics.RecordGatewaySend("sent")
	} else {
		log.Printf("⚠️ [GreenAPI] Mensagem para %s não confirmada pela API", mobile)
		metrics.RecordGatewaySend("not_sent")
	}
	return result
}

func (c *Client) send(ctx context.Context, cfg entity.GreenApiConfig, mobile, message string) (SendResult, error) {
	body, err := json.Marshal(SendMessageRequest{ChatID: c.ChatID(mobile), Message: message})
	if err != nil {
		return SendResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.SendURL(cfg), bytes.NewReader(body))
	if err != nil {
		return SendResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SendResult{}, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			return SendResult{}, fmt.Errorf("%s", msgAuthFailed)
		}
		var apiErr ErrorResponse
		_ = json.Unmarshal(respBody, &apiErr)
		if apiErr.Error != "" {
			return SendResult{}, fmt.Errorf("%s", apiErr.Error)
		}
		if apiErr.Message != "" {
			return SendResult{}, fmt.Errorf("%s", apiErr.Message)
		}
		return SendResult{}, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result SendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return SendResult{}, fmt.Errorf("resposta inválida da API: %w", err)
	}
	if result.IDMessage == "" {
		return SendResult{Success: false, Message: msgNotSent}, nil
	}
	return SendResult{
		Success:   true,
		Message:   "Message sent successfully with ID: " + result.IDMessage,
		MessageID: result.IDMessage,
	}, nil
}
