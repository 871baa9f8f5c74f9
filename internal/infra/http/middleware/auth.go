package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const tenantIDKey contextKey = "tenantID"

// TokenValidator devolve o tenant dono de um token de acesso.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// SessionStarter garante que o agendador do tenant está rodando.
type SessionStarter interface {
	Ensure(tenantID string)
}

// Auth valida o Bearer token (ou ?token= para WebSocket) e injeta o tenant no contexto.
func Auth(validator TokenValidator, sessions SessionStarter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				log.Printf("❌ [Auth] Token ausente - Path: %s", r.URL.Path)
				unauthorized(w, "Authorization header required")
				return
			}

			tenantID, err := validator.ValidateToken(token)
			if err != nil {
				log.Printf("❌ [Auth] Token inválido - Path: %s, Error: %v", r.URL.Path, err)
				unauthorized(w, "Invalid or expired token")
				return
			}

			if sessions != nil {
				sessions.Ensure(tenantID)
			}
			next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenantID)))
		})
	}
}

func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

func TenantID(ctx context.Context) string {
	id, _ := ctx.Value(tenantIDKey).(string)
	return id
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	// o browser não envia headers no handshake de WebSocket
	return r.URL.Query().Get("token")
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}
