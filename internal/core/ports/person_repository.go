package ports

import (
	"context"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/person"
)

// PersonRepository defines the persistence contract for person aggregates.
type PersonRepository interface {
	Add(ctx context.Context, aggregate *person.Person) error
	Update(ctx context.Context, aggregate *person.Person) error
	Delete(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) error
	Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*person.Person, error)

	// List returns every person of the tenant ordered by name.
	List(ctx context.Context, tenant kernel.TenantID) ([]*person.Person, error)

	// FindByContact returns persons matching the phone or the name. Either may be empty.
	// Callers pick the best match with services.ContactResolver.
	FindByContact(ctx context.Context, tenant kernel.TenantID, phone, name string) ([]*person.Person, error)

	// ExistsPhoneForOther reports whether a person other than exclude already has phone.
	ExistsPhoneForOther(ctx context.Context, tenant kernel.TenantID, phone string, exclude *kernel.UUID) (bool, error)
}
