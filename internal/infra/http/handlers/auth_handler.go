package handlers

import (
	"net/http"

	"github.com/xavierca1/green-crm/internal/infra/http/middleware"
	"github.com/xavierca1/green-crm/internal/usecase"
)

// SessionManager liga e desliga o agendador do tenant.
type SessionManager interface {
	Start(tenantID string) error
	End(tenantID string)
}

type AuthHandler struct {
	AuthUC   *usecase.AuthUseCase
	Sessions SessionManager
}

func NewAuthHandler(uc *usecase.AuthUseCase, sessions SessionManager) *AuthHandler {
	return &AuthHandler{AuthUC: uc, Sessions: sessions}
}

// SignUp (POST /auth/signup)
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input usecase.SignUpInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.AuthUC.SignUp(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	h.startSession(output.TenantID)
	writeJSON(w, http.StatusCreated, output)
}

// SignIn (POST /auth/signin)
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input usecase.SignInInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.AuthUC.SignIn(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	h.startSession(output.TenantID)
	writeJSON(w, http.StatusOK, output)
}

// Logout (POST /api/auth/logout)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.End(middleware.TenantID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RetrySeed (POST /api/seed/retry)
func (h *AuthHandler) RetrySeed(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthUC.RetrySeed(r.Context(), middleware.TenantID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) startSession(tenantID string) {
	if h.Sessions == nil {
		return
	}
	// login não falha por causa do agendador; o Auth middleware tenta de novo
	_ = h.Sessions.Start(tenantID)
}
