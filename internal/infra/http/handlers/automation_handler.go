package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/http/middleware"
	"github.com/xavierca1/green-crm/internal/usecase"
)

type AutomationHandler struct {
	AutomationUC *usecase.AutomationUseCase
}

func NewAutomationHandler(uc *usecase.AutomationUseCase) *AutomationHandler {
	return &AutomationHandler{AutomationUC: uc}
}

// SaveTemplate (POST /api/templates e PUT /api/templates/{id})
func (h *AutomationHandler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl entity.MessageTemplate
	if !decodeJSON(w, r, &tpl) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		tpl.ID = id
	}

	saved, err := h.AutomationUC.SaveTemplate(r.Context(), middleware.TenantID(r.Context()), tpl)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteTemplate (DELETE /api/templates/{id})
func (h *AutomationHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.AutomationUC.DeleteTemplate(r.Context(), middleware.TenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateTriggers (PUT /api/triggers)
func (h *AutomationHandler) UpdateTriggers(w http.ResponseWriter, r *http.Request) {
	var triggers []entity.Trigger
	if !decodeJSON(w, r, &triggers) {
		return
	}

	saved, err := h.AutomationUC.UpdateTriggers(r.Context(), middleware.TenantID(r.Context()), triggers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// UpdateFlow (PUT /api/flow)
func (h *AutomationHandler) UpdateFlow(w http.ResponseWriter, r *http.Request) {
	var steps []entity.FlowStep
	if !decodeJSON(w, r, &steps) {
		return
	}

	saved, err := h.AutomationUC.UpdateFlow(r.Context(), middleware.TenantID(r.Context()), steps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
