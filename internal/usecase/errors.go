package usecase

import (
	"errors"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

var (
	ErrInvalidCredentials  = &DomainError{Code: "INVALID_CREDENTIALS", Message: "email ou senha inválidos"}
	ErrEmailTaken          = &DomainError{Code: "EMAIL_TAKEN", Message: "email já cadastrado"}
	ErrTenantAlreadySeeded = &DomainError{Code: "ALREADY_SEEDED", Message: "dados do tenant já existem"}
	ErrInvalidToken        = &DomainError{Code: "INVALID_TOKEN", Message: "token inválido"}
)

func notFound(what string) *DomainError {
	return &DomainError{Code: "NOT_FOUND", Message: what + " não encontrado"}
}

func storeError(op string, err error) *TechnicalError {
	return &TechnicalError{Code: "STORE_ERROR", Message: op, Err: err}
}
