package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/green-crm/internal/infra/docstore"
)

func newAuthUC(t *testing.T) (*AuthUseCase, *docstore.TreeStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	uc := NewAuthUseCase(store, nil, "test-secret", time.Hour)
	return uc, store
}

func TestAuthUseCase_SignUpSeedsTenant(t *testing.T) {
	uc, store := newAuthUC(t)
	ctx := context.Background()

	out, err := uc.SignUp(ctx, SignUpInput{Name: "Asha", Email: "Asha@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.TenantID)
	assert.Equal(t, "asha@example.com", out.Email)
	assert.NotEmpty(t, out.Token)

	snap, err := NewSyncTenantUseCase(store).Load(ctx, out.TenantID)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Templates, 2)
	assert.Len(t, snap.Triggers, 2)
	assert.Len(t, snap.Flow, 3)
	assert.Len(t, snap.LandingPages, 2)
	assert.Len(t, snap.Meetings, 4)
	assert.Len(t, snap.LeadStatuses, 4)
	assert.Empty(t, snap.Leads)
	assert.Nil(t, snap.GreenApiConfig)
	require.NotNil(t, snap.AdminUser)
	assert.Equal(t, "Asha", snap.AdminUser.Name)
	assert.Equal(t, "Administrator", snap.AdminUser.Role)
}

func TestAuthUseCase_SignUpRejectsDuplicateEmail(t *testing.T) {
	uc, _ := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.SignUp(ctx, SignUpInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = uc.SignUp(ctx, SignUpInput{Name: "Other", Email: "ASHA@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthUseCase_SignUpSendsWelcomeMail(t *testing.T) {
	uc, _ := newAuthUC(t)
	mailer := new(MockEmailService)
	sent := make(chan struct{})
	mailer.On("SendWelcome", "asha@example.com", "Asha").Return(nil).Run(func(mock.Arguments) { close(sent) })
	uc.Mailer = mailer

	_, err := uc.SignUp(context.Background(), SignUpInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("welcome mail not sent")
	}
}

func TestAuthUseCase_SignIn(t *testing.T) {
	uc, _ := newAuthUC(t)
	ctx := context.Background()

	created, err := uc.SignUp(ctx, SignUpInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	out, err := uc.SignIn(ctx, SignInInput{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, created.TenantID, out.TenantID)

	tenantID, err := uc.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.TenantID, tenantID)

	_, err = uc.SignIn(ctx, SignInInput{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.SignIn(ctx, SignInInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUseCase_ValidateTokenRejects(t *testing.T) {
	uc, _ := newAuthUC(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tenant-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	expiredToken, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	otherKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tenant-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	otherToken, err := otherKey.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	for _, token := range []string{expiredToken, otherToken, "garbage"} {
		_, err := uc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestAuthUseCase_RetrySeed(t *testing.T) {
	uc, store := newAuthUC(t)
	ctx := context.Background()

	out, err := uc.SignUp(ctx, SignUpInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.RetrySeed(ctx, out.TenantID), ErrTenantAlreadySeeded)

	// simula um seed que falhou
	require.NoError(t, store.Remove(ctx, tenantPath(out.TenantID)))
	require.NoError(t, uc.RetrySeed(ctx, out.TenantID))

	snap, err := NewSyncTenantUseCase(store).Load(ctx, out.TenantID)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "asha@example.com", snap.AdminUser.Email)
}
