package commands

import (
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/guard"
)

var ErrDeletePersonCommandIsNotConstructed = errors.New(
	"DeletePersonCommand must be created via NewDeletePersonCommand constructor",
)

// DeletePersonCommand removes a person that no order references.
type DeletePersonCommand struct {
	tenant   kernel.TenantID
	personID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeletePersonCommand(tenant kernel.TenantID, personID kernel.UUID) (DeletePersonCommand, error) {
	if err := errors.Join(tenant.Validate(), personID.Validate()); err != nil {
		return DeletePersonCommand{}, err
	}
	return DeletePersonCommand{tenant: tenant, personID: personID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeletePersonCommand) Validate() error {
	return c.guard.Validate(ErrDeletePersonCommandIsNotConstructed)
}

func (c DeletePersonCommand) Tenant() kernel.TenantID {
	return c.tenant
}

func (c DeletePersonCommand) PersonID() kernel.UUID {
	return c.personID
}
