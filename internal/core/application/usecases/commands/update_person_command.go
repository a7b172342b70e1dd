package commands

import (
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/pkg/guard"
)

var ErrUpdatePersonCommandIsNotConstructed = errors.New(
	"UpdatePersonCommand must be created via NewUpdatePersonCommand constructor",
)

// UpdatePersonCommand replaces a person's contact data. Name and phone changes
// cascade to the person's orders.
type UpdatePersonCommand struct {
	tenant      kernel.TenantID
	personID    kernel.UUID
	name        string
	phone       string
	email       string
	preferences person.Preferences

	guard guard.ConstructorGuard
}

func NewUpdatePersonCommand(
	tenant kernel.TenantID,
	personID kernel.UUID,
	name, phone, email string,
	preferences person.Preferences,
) (UpdatePersonCommand, error) {
	if err := errors.Join(tenant.Validate(), personID.Validate()); err != nil {
		return UpdatePersonCommand{}, err
	}
	return UpdatePersonCommand{
		tenant:      tenant,
		personID:    personID,
		name:        name,
		phone:       phone,
		email:       email,
		preferences: preferences,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePersonCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePersonCommandIsNotConstructed)
}

func (c UpdatePersonCommand) Tenant() kernel.TenantID         { return c.tenant }
func (c UpdatePersonCommand) PersonID() kernel.UUID           { return c.personID }
func (c UpdatePersonCommand) Name() string                    { return c.name }
func (c UpdatePersonCommand) Phone() string                   { return c.phone }
func (c UpdatePersonCommand) Email() string                   { return c.email }
func (c UpdatePersonCommand) Preferences() person.Preferences { return c.preferences }
