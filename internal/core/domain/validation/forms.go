package validation

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/pkg/errs"
)

// Result collects per-field messages of a form check.
type Result struct {
	Errors map[string]string
}

func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a valid result, otherwise a ValueIsInvalidError wrapping FieldErrors.
func (r Result) Err() error {
	if r.IsValid() {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("form", FieldErrors(r.Errors))
}

func (r *Result) add(field string, err error) {
	if err == nil {
		return
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		fe = &FieldError{Field: field, Message: err.Error()}
	}
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	r.Errors[field] = fe.Message
}

// FieldErrors is the error form of Result.Errors.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, field := range slices.Sorted(maps.Keys(f)) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, f[field]))
	}
	return strings.Join(parts, "; ")
}

// FieldMessages extracts the per-field messages from err, if it carries any.
func FieldMessages(err error) (map[string]string, bool) {
	var invalid *errs.ValueIsInvalidError
	if errors.As(err, &invalid) {
		if fields, ok := invalid.Cause.(FieldErrors); ok {
			return fields, true
		}
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return map[string]string{fe.Field: fe.Message}, true
	}
	return nil, false
}

// EncargoForm is the raw order input.
type EncargoForm struct {
	Date      string
	Product   string
	Lab       string
	Warehouse string
	Customer  string
	Phone     string
	Amount    string
	Notes     string
}

// Sanitize applies SanitizeInput to every field.
func (f EncargoForm) Sanitize() EncargoForm {
	return EncargoForm{
		Date:      SanitizeInput(f.Date),
		Product:   SanitizeInput(f.Product),
		Lab:       SanitizeInput(f.Lab),
		Warehouse: SanitizeInput(f.Warehouse),
		Customer:  SanitizeInput(f.Customer),
		Phone:     SanitizeInput(f.Phone),
		Amount:    SanitizeInput(f.Amount),
		Notes:     SanitizeInput(f.Notes),
	}
}

// ValidateEncargoForm checks every field independently. Phone is optional on orders.
func ValidateEncargoForm(f EncargoForm, now time.Time) Result {
	var r Result
	f.checkDetails(&r, now)
	f.checkContact(&r)
	return r
}

// ValidateEncargoDetails checks the editable fields only, ignoring customer and phone.
func ValidateEncargoDetails(f EncargoForm, now time.Time) Result {
	var r Result
	f.checkDetails(&r, now)
	return r
}

// ValidateEncargoContact checks customer and phone only.
func ValidateEncargoContact(f EncargoForm) Result {
	var r Result
	f.checkContact(&r)
	return r
}

func (f EncargoForm) checkDetails(r *Result, now time.Time) {
	_, err := ValidateDate(f.Date, now)
	r.add("date", err)
	r.add("product", ValidateText(f.Product, "producto", true, TextMaxLength))
	r.add("lab", ValidateText(f.Lab, "laboratorio", false, TextMaxLength))
	r.add("warehouse", ValidateText(f.Warehouse, "almacén", false, TextMaxLength))
	_, err = ValidateAmount(f.Amount)
	r.add("amount", err)
	r.add("notes", ValidateText(f.Notes, "notas", false, NotesMaxLength))
}

func (f EncargoForm) checkContact(r *Result) {
	r.add("customer", ValidateName(f.Customer))
	if strings.TrimSpace(f.Phone) != "" {
		r.add("phone", ValidatePhone(f.Phone))
	}
}

// Details converts a checked form into order details.
func (f EncargoForm) Details(now time.Time) (order.Details, error) {
	date, err := ValidateDate(f.Date, now)
	if err != nil {
		return order.Details{}, err
	}
	amount, err := ValidateAmount(f.Amount)
	if err != nil {
		return order.Details{}, err
	}
	return order.Details{
		Date:      date,
		Product:   f.Product,
		Lab:       f.Lab,
		Warehouse: f.Warehouse,
		Amount:    amount,
		Notes:     f.Notes,
	}, nil
}

// Contact converts a checked form into the cached customer contact.
func (f EncargoForm) Contact() (kernel.Contact, error) {
	return kernel.NewContact(f.Customer, f.Phone)
}

// PersonaForm is the raw person input.
type PersonaForm struct {
	Name               string
	Phone              string
	Email              string
	PhoneNotifications bool
	EmailNotifications bool
}

func (f PersonaForm) Sanitize() PersonaForm {
	f.Name = SanitizeInput(f.Name)
	f.Phone = SanitizeInput(f.Phone)
	f.Email = SanitizeInput(f.Email)
	return f
}

// ValidatePersonaForm checks name, phone and email. Email notifications need an email.
func ValidatePersonaForm(f PersonaForm) Result {
	var r Result
	r.add("name", ValidateName(f.Name))
	r.add("phone", ValidatePhone(f.Phone))
	r.add("email", ValidateEmail(f.Email))
	if f.EmailNotifications && strings.TrimSpace(f.Email) == "" {
		r.add("email", newFieldError("email", "Para avisar por email hace falta un email"))
	}
	return r
}
