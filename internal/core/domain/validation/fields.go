// Package validation holds the pure field and form checks applied to operator
// input before anything is written. Messages are user-facing Spanish text.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	NameMinLength  = 2
	NameMaxLength  = 100
	PhoneMinLength = 6
	PhoneMaxLength = 20
	TextMaxLength  = 100
	NotesMaxLength = 500
	DateLayout     = time.DateOnly
)

var (
	namePattern  = regexp.MustCompile(`^[\p{L}\s.'\-]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]+$`)
	emailShape   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	maxAmount = decimal.RequireFromString("999999.99")

	validate = validator.New()
)

// FieldError is a single failed field rule.
type FieldError struct {
	Field   string
	Message string
}

func newFieldError(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", errs.ErrValueIsInvalid, e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// ValidateName checks a person or customer name.
func ValidateName(name string) error {
	name = kernel.NormalizeName(name)
	if name == "" {
		return newFieldError("name", "El nombre es obligatorio")
	}
	if n := utf8.RuneCountInString(name); n < NameMinLength || n > NameMaxLength {
		return newFieldError("name", "El nombre debe tener entre %d y %d caracteres", NameMinLength, NameMaxLength)
	}
	if !namePattern.MatchString(name) {
		return newFieldError("name", "El nombre solo puede contener letras, espacios, guiones, apóstrofes y puntos")
	}
	return nil
}

// ValidatePhone checks a phone after stripping separators.
func ValidatePhone(phone string) error {
	phone = kernel.NormalizePhone(phone)
	if phone == "" {
		return newFieldError("phone", "El teléfono es obligatorio")
	}
	if n := len(phone); n < PhoneMinLength || n > PhoneMaxLength {
		return newFieldError("phone", "El teléfono debe tener entre %d y %d caracteres", PhoneMinLength, PhoneMaxLength)
	}
	if !phonePattern.MatchString(phone) {
		return newFieldError("phone", "El teléfono solo puede contener dígitos y un + inicial")
	}
	return nil
}

// ValidateEmail accepts an empty value. A present value must look like local@domain.tld.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if !emailShape.MatchString(email) || validate.Var(email, "email") != nil {
		return newFieldError("email", "El email no tiene un formato válido")
	}
	return nil
}

// ValidateAmount parses a paid amount. A comma is accepted as decimal separator.
func ValidateAmount(value string) (decimal.Decimal, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, newFieldError("amount", "El importe debe ser un número")
	}
	if amount.IsNegative() {
		return decimal.Zero, newFieldError("amount", "El importe no puede ser negativo")
	}
	if amount.GreaterThan(maxAmount) {
		return decimal.Zero, newFieldError("amount", "El importe no puede superar %s", maxAmount.StringFixed(2))
	}
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, newFieldError("amount", "El importe admite como mucho dos decimales")
	}
	return amount, nil
}

// ValidateDate parses a YYYY-MM-DD date that must fall within one year of now.
func ValidateDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, newFieldError("date", "La fecha es obligatoria")
	}
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, newFieldError("date", "La fecha no es válida")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today.AddDate(-1, 0, 0)) || date.After(today.AddDate(1, 0, 0)) {
		return time.Time{}, newFieldError("date", "La fecha debe estar dentro de un año respecto a hoy")
	}
	return date, nil
}

// ValidateText checks bounded free text.
func ValidateText(value, field string, required bool, maxLength int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return newFieldError(field, "El campo %s es obligatorio", field)
		}
		return nil
	}
	if utf8.RuneCountInString(value) > maxLength {
		return newFieldError(field, "El campo %s no puede superar %d caracteres", field, maxLength)
	}
	return nil
}

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// SanitizeInput strips angle brackets and trims. It is not an HTML sanitizer.
func SanitizeInput(value string) string {
	return strings.TrimSpace(angleBrackets.Replace(value))
}
