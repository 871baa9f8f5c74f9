package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeValidator map[string]string

func (f fakeValidator) ValidateToken(token string) (string, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid")
}

type recordingSessions struct{ started []string }

func (r *recordingSessions) Ensure(tenantID string) { r.started = append(r.started, tenantID) }

func TestAuthInjectsTenantAndStartsSession(t *testing.T) {
	sessions := &recordingSessions{}
	var seen string
	h := Auth(fakeValidator{"good": "tenant-1"}, sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TenantID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tenant-1", seen)
	assert.Equal(t, []string{"tenant-1"}, sessions.started)
}

func TestAuthAcceptsQueryToken(t *testing.T) {
	h := Auth(fakeValidator{"good": "tenant-1"}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/snapshot?token=good", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	h := Auth(fakeValidator{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler não deveria ser chamado")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}
