package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/green-crm/internal/usecase"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: msg})
}

// writeError traduz erros de domínio para 4xx; o resto vira 500 sem detalhes internos.
func writeError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, domainStatus(de.Code), ErrorResponse{Success: false, Code: de.Code, Message: de.Message})
		return
	}

	log.Printf("❌ [HTTP] Erro interno: %v", err)
	code := "INTERNAL_ERROR"
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		code = te.Code
	}
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Code: code, Message: "internal error"})
}

func domainStatus(code string) int {
	switch code {
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "NOT_FOUND":
		return http.StatusNotFound
	case "INVALID_CREDENTIALS", "INVALID_TOKEN":
		return http.StatusUnauthorized
	case "EMAIL_TAKEN", "ALREADY_SEEDED":
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}
