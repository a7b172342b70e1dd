package kernel

import (
	"encargos/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("id")

// UUID identifies orders, persons and catalog items. The zero value is the nil
// UUID and fails Validate; build one with NewUUID or parse a stored value.
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random version 4 id. Aggregates get theirs from the caller,
// which lets commands and tests choose the id up front.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), tenant, details, customer)
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical form and the braced and urn forms
// accepted by google/uuid. The nil UUID is rejected.
//
// Example:
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // not an id at all
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return fromGoogle(id)
}

// UUIDFromBytes reads the 16 byte form used by the sql adapters.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return fromGoogle(id)
}

func fromGoogle(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the google/uuid value for storage.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// SameLink reports whether two optional links point at the same record.
// Two nil links are the same.
func SameLink(a, b *UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsEqual(*b)
}
