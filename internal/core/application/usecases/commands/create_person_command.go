package commands

import (
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/pkg/guard"
)

var ErrCreatePersonCommandIsNotConstructed = errors.New(
	"CreatePersonCommand must be created via NewCreatePersonCommand constructor",
)

// CreatePersonCommand registers a customer.
type CreatePersonCommand struct {
	tenant      kernel.TenantID
	personID    kernel.UUID
	name        string
	phone       string
	email       string
	preferences person.Preferences

	guard guard.ConstructorGuard
}

func NewCreatePersonCommand(
	tenant kernel.TenantID,
	personID kernel.UUID,
	name, phone, email string,
	preferences person.Preferences,
) (CreatePersonCommand, error) {
	if err := errors.Join(tenant.Validate(), personID.Validate()); err != nil {
		return CreatePersonCommand{}, err
	}
	return CreatePersonCommand{
		tenant:      tenant,
		personID:    personID,
		name:        name,
		phone:       phone,
		email:       email,
		preferences: preferences,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePersonCommand) Validate() error {
	return c.guard.Validate(ErrCreatePersonCommandIsNotConstructed)
}

func (c CreatePersonCommand) Tenant() kernel.TenantID         { return c.tenant }
func (c CreatePersonCommand) PersonID() kernel.UUID           { return c.personID }
func (c CreatePersonCommand) Name() string                    { return c.name }
func (c CreatePersonCommand) Phone() string                   { return c.phone }
func (c CreatePersonCommand) Email() string                   { return c.email }
func (c CreatePersonCommand) Preferences() person.Preferences { return c.preferences }
