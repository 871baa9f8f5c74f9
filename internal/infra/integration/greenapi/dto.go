package greenapi

type SendMessageRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

type SendMessageResponse struct {
	IDMessage string `json:"idMessage"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendResult nunca carrega erro: falhas viram Success=false com mensagem legível.
type SendResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
}
