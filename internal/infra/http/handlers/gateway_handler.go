package handlers

import (
	"net/http"

	"github.com/xavierca1/green-crm/internal/infra/http/middleware"
	"github.com/xavierca1/green-crm/internal/usecase"
)

type GatewayHandler struct {
	GatewayUC *usecase.GatewayUseCase
}

func NewGatewayHandler(uc *usecase.GatewayUseCase) *GatewayHandler {
	return &GatewayHandler{GatewayUC: uc}
}

type TestConnectionRequest struct {
	Mobile string `json:"mobile"`
}

// Connect (PUT /api/gateway)
func (h *GatewayHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var input usecase.ConnectGatewayInput
	if !decodeJSON(w, r, &input) {
		return
	}

	if err := h.GatewayUC.Connect(r.Context(), middleware.TenantID(r.Context()), input); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Disconnect (DELETE /api/gateway)
func (h *GatewayHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.GatewayUC.Disconnect(r.Context(), middleware.TenantID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Test (POST /api/gateway/test) devolve o resultado do provedor como veio, sempre 200.
func (h *GatewayHandler) Test(w http.ResponseWriter, r *http.Request) {
	var req TestConnectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Mobile == "" {
		writeMessage(w, http.StatusBadRequest, "mobile is required")
		return
	}

	result := h.GatewayUC.SendTest(r.Context(), middleware.TenantID(r.Context()), req.Mobile)
	writeJSON(w, http.StatusOK, result)
}
