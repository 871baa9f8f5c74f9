package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/green-crm/internal/entity"
	"github.com/xavierca1/green-crm/internal/infra/docstore"
)

type tenantIndex struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthUseCase faz cadastro e login. O id da conta é o id do tenant.
type AuthUseCase struct {
	Store     docstore.Store
	Mailer    EmailService
	JWTSecret string
	JWTExpiry time.Duration
	Now       func() time.Time
}

func NewAuthUseCase(store docstore.Store, mailer EmailService, secret string, expiry time.Duration) *AuthUseCase {
	return &AuthUseCase{
		Store:     store,
		Mailer:    mailer,
		JWTSecret: secret,
		JWTExpiry: expiry,
		Now:       time.Now,
	}
}

// SignUp cria a conta e depois grava os dados iniciais do tenant.
// As duas escritas não são atômicas: se o seed falhar a conta continua válida e RetrySeed completa.
func (uc *AuthUseCase) SignUp(ctx context.Context, input SignUpInput) (*AuthOutput, error) {
	if err := validationFailed(ValidateSignUpInput(input)); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := uc.Store.Get(ctx, accountPath(email))
	if err != nil {
		return nil, storeError("erro ao verificar email", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &TechnicalError{Code: "HASH_ERROR", Message: "erro ao gerar hash da senha", Err: err}
	}

	now := uc.Now()
	account := entity.Account{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now.UTC(),
	}

	err = uc.Store.MultiUpdate(ctx, map[string]any{
		accountPath(email):          account,
		tenantIndexPath(account.ID): tenantIndex{Name: account.Name, Email: email},
	})
	if err != nil {
		return nil, storeError("erro ao criar conta", err)
	}
	log.Printf("✅ [Auth] Conta criada: %s (tenant %s)", email, account.ID)

	if err := uc.Store.Set(ctx, tenantPath(account.ID), SeedData(account.Name, email, now)); err != nil {
		log.Printf("⚠️ [Auth] Seed do tenant %s falhou, use o retry: %v", account.ID, err)
	}

	if uc.Mailer != nil {
		go func() {
			if err := uc.Mailer.SendWelcome(email, account.Name); err != nil {
				log.Printf("⚠️ [Auth] Erro ao enviar email de boas-vindas: %v", err)
			}
		}()
	}

	return uc.issue(account)
}

func (uc *AuthUseCase) SignIn(ctx context.Context, input SignInInput) (*AuthOutput, error) {
	raw, err := uc.Store.Get(ctx, accountPath(input.Email))
	if err != nil {
		return nil, storeError("erro ao ler conta", err)
	}

	var account entity.Account
	if !decodeValue(raw, &account) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	log.Printf("🔑 [Auth] Login: %s", account.Email)
	return uc.issue(account)
}

// RetrySeed grava os dados iniciais só quando o nó do tenant ainda não existe.
func (uc *AuthUseCase) RetrySeed(ctx context.Context, tenantID string) error {
	current, err := uc.Store.Get(ctx, tenantPath(tenantID))
	if err != nil {
		return storeError("erro ao ler tenant", err)
	}
	if current != nil {
		return ErrTenantAlreadySeeded
	}

	raw, err := uc.Store.Get(ctx, tenantIndexPath(tenantID))
	if err != nil {
		return storeError("erro ao ler índice do tenant", err)
	}
	var idx tenantIndex
	if !decodeValue(raw, &idx) {
		return notFound("tenant")
	}

	if err := uc.Store.Set(ctx, tenantPath(tenantID), SeedData(idx.Name, idx.Email, uc.Now())); err != nil {
		return storeError("erro ao gravar seed", err)
	}
	log.Printf("🌱 [Auth] Seed refeito para tenant %s", tenantID)
	return nil
}

// ValidateToken devolve o tenant (claim sub) de um token válido.
func (uc *AuthUseCase) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(uc.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

func (uc *AuthUseCase) issue(account entity.Account) (*AuthOutput, error) {
	now := uc.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": account.ID,
		"exp": now.Add(uc.JWTExpiry).Unix(),
		"iat": now.Unix(),
	})
	signed, err := token.SignedString([]byte(uc.JWTSecret))
	if err != nil {
		return nil, &TechnicalError{Code: "TOKEN_ERROR", Message: "erro ao assinar token", Err: err}
	}
	return &AuthOutput{
		TenantID: account.ID,
		Name:     account.Name,
		Email:    account.Email,
		Token:    signed,
	}, nil
}
