package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/xavierca1/green-crm/internal/infra/docstore"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var nonDigits = regexp.MustCompile(`\D`)

func ValidateNewLeadInput(input NewLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.Mobile) == "" {
		errors = append(errors, ValidationError{"mobile", "is required"})
	} else if !isValidMobile(input.Mobile) {
		errors = append(errors, ValidationError{"mobile", "must contain only digits (10 to 15)"})
	}

	return errors
}

func ValidateSignUpInput(input SignUpInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}
	if len(input.Password) < 6 {
		errors = append(errors, ValidationError{"password", "must have at least 6 characters"})
	}

	return errors
}

func ValidateConnectGatewayInput(input ConnectGatewayInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.InstanceID) == "" {
		errors = append(errors, ValidationError{"instanceId", "is required"})
	}
	if strings.TrimSpace(input.APIKey) == "" {
		errors = append(errors, ValidationError{"apiKey", "is required"})
	}

	return errors
}

func isValidMobile(mobile string) bool {
	if nonDigits.MatchString(mobile) {
		return false
	}
	return len(mobile) >= 10 && len(mobile) <= 15
}

// validateSegments garante que ids e chaves vindos do cliente são um único segmento de caminho.
func validateSegments(field string, values ...string) error {
	var errs []ValidationError
	for _, v := range values {
		if docstore.ValidSegment(v) != nil {
			errs = append(errs, ValidationError{field, fmt.Sprintf("invalid key %q", v)})
		}
	}
	return validationFailed(errs)
}

func validationFailed(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: "validation failed: " + strings.Join(parts, ", "),
	}
}
