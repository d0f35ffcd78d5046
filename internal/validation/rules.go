// Package validation holds the request rules shared by the HTTP DTOs.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/cube/simple/internal/errors"
)

var (
	memberIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9][0-9\- ]{5,18}[0-9]$`)
)

// WrapValidationError turns a DTO validation failure into ErrInvalidInput so
// the responder maps it to 422.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordPolicy bounds a plaintext password by character count. A zero
// MaxLength means no upper bound. Control characters are never accepted.
type PasswordPolicy struct {
	MinLength int
	MaxLength int
}

// Validate implements validation.Rule.
func (p PasswordPolicy) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_type", "password must be a string")
	}
	if s == "" {
		// Required decides whether empty is allowed.
		return nil
	}

	n := utf8.RuneCountInString(s)
	switch {
	case n < p.MinLength:
		return validation.NewError("validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength))
	case p.MaxLength > 0 && n > p.MaxLength:
		return validation.NewError("validation_password_max_length",
			fmt.Sprintf("password must be at most %d characters", p.MaxLength))
	case strings.IndexFunc(s, unicode.IsControl) >= 0:
		return validation.NewError("validation_password_control", "password must not contain control characters")
	}
	return nil
}

// MemberID accepts login identifiers made of ASCII letters, digits, '.', '_' and '-'.
var MemberID = validation.NewStringRuleWithError(
	memberIDPattern.MatchString,
	validation.NewError("validation_member_id", "must contain only letters, digits, '.', '_' or '-'"),
)

// Phone accepts numbers like 010-1234-5678 or +82 10 1234 5678.
var Phone = validation.NewStringRuleWithError(
	phonePattern.MatchString,
	validation.NewError("validation_phone_format", "must be a valid phone number"),
)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "must not be blank"),
)
