package kernel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/guard"
)

// TenantIDMaxLength bounds selling point identifiers.
const TenantIDMaxLength = 64

// ErrTenantIDIsNotConstructed is returned when a zero TenantID is used.
var ErrTenantIDIsNotConstructed = errs.NewValueIsRequiredError(
	"tenant ID must be created via NewTenantID")

// TenantID identifies the selling point that owns every record.
// Every repository call takes one explicitly; there is no ambient tenant.
//
// Example:
//
//	tenant, err := kernel.NewTenantID("farmacia-centro")
//	if err != nil {
//	    return err
//	}
//	orders, err := repo.ListAll(ctx, tenant)
type TenantID struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewTenantID trims s and rejects empty or overlong identifiers.
func NewTenantID(s string) (TenantID, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return TenantID{}, errs.NewValueIsRequiredError("selling point")
	}
	if n := utf8.RuneCountInString(value); n > TenantIDMaxLength {
		return TenantID{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"selling point length", n, 1, TenantIDMaxLength,
			fmt.Errorf("%q is too long", value),
		)
	}

	return TenantID{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// MustTenantID is NewTenantID for constants and tests.
func MustTenantID(s string) TenantID {
	t, err := NewTenantID(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate reports whether the tenant was built via NewTenantID.
func (t TenantID) Validate() error {
	return t.guard.Validate(ErrTenantIDIsNotConstructed)
}

func (t TenantID) String() string {
	return t.value
}

// IsEqual compares two tenants by value.
func (t TenantID) IsEqual(other TenantID) bool {
	return t.value == other.value
}
