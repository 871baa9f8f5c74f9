package handlers

import (
	"net/http"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/http/middleware"
	"github.com/xavierca1/green-crm/internal/usecase"
)

type CalendarHandler struct {
	CalendarUC *usecase.CalendarUseCase
}

func NewCalendarHandler(uc *usecase.CalendarUseCase) *CalendarHandler {
	return &CalendarHandler{CalendarUC: uc}
}

// AddMeeting (POST /api/meetings)
func (h *CalendarHandler) AddMeeting(w http.ResponseWriter, r *http.Request) {
	var input usecase.MeetingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	meeting, err := h.CalendarUC.AddMeeting(r.Context(), middleware.TenantID(r.Context()), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, meeting)
}

// UpdateAdmin (PUT /api/admin)
func (h *CalendarHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var admin entity.Admin
	if !decodeJSON(w, r, &admin) {
		return
	}

	if err := h.CalendarUC.UpdateAdmin(r.Context(), middleware.TenantID(r.Context()), admin); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
