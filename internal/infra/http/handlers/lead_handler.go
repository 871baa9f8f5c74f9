package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/http/middleware"
	"github.com/xavierca1/green-crm/internal/usecase"
)

type LeadHandler struct {
	LeadUC      *usecase.LeadUseCase
	rateLimiter *RateLimiter
}

func NewLeadHandler(uc *usecase.LeadUseCase, capturePerMinute int) *LeadHandler {
	return &LeadHandler{
		LeadUC:      uc,
		rateLimiter: NewRateLimiter(capturePerMinute, time.Minute),
	}
}

type DeleteLeadsRequest struct {
	IDs []string `json:"ids"`
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"leadId,omitempty"`
	Message string `json:"message,omitempty"`
}

// Create (POST /api/leads)
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.NewLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.LeadUC.Add(r.Context(), middleware.TenantID(r.Context()), input, usecase.OriginManual)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

// Update (PATCH /api/leads/{id})
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if !decodeJSON(w, r, &fields) {
		return
	}

	if err := h.LeadUC.Update(r.Context(), middleware.TenantID(r.Context()), chi.URLParam(r, "id"), fields); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete (DELETE /api/leads) remove todos os ids do corpo de uma vez.
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteLeadsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.LeadUC.Delete(r.Context(), middleware.TenantID(r.Context()), req.IDs); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatuses (PUT /api/lead-statuses)
func (h *LeadHandler) UpdateStatuses(w http.ResponseWriter, r *http.Request) {
	var statuses []entity.LeadStatus
	if !decodeJSON(w, r, &statuses) {
		return
	}
	for _, s := range statuses {
		if strings.TrimSpace(s.Name) == "" || !s.Color.Valid() {
			writeMessage(w, http.StatusBadRequest, "each status needs a name and a known color")
			return
		}
	}

	if err := h.LeadUC.UpdateStatuses(r.Context(), middleware.TenantID(r.Context()), statuses); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Capture (POST /public/{tenantId}/landing/{pageId}/leads) é público e limitado por IP.
func (h *LeadHandler) Capture(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.NewLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.LeadUC.Capture(r.Context(), chi.URLParam(r, "tenantId"), chi.URLParam(r, "pageId"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CaptureLeadResponse{Success: true, LeadID: lead.ID})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Allow conta a requisição na janela fixa do IP. Visitantes velhos são descartados aqui mesmo.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.visitors) > 1024 {
		for k, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, k)
			}
		}
	}

	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.lastReset) > rl.window {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	v.count++
	return v.count <= rl.limit
}
