package commands

import (
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/guard"
)

var ErrRepairConsistencyCommandIsNotConstructed = errors.New(
	"RepairConsistencyCommand must be created via NewRepairConsistencyCommand constructor",
)

// RepairConsistencyCommand rewrites the customer of every order whose cached
// name disagrees with its person.
type RepairConsistencyCommand struct {
	tenant kernel.TenantID

	guard guard.ConstructorGuard
}

func NewRepairConsistencyCommand(tenant kernel.TenantID) (RepairConsistencyCommand, error) {
	if err := tenant.Validate(); err != nil {
		return RepairConsistencyCommand{}, err
	}
	return RepairConsistencyCommand{tenant: tenant, guard: guard.NewConstructorGuard()}, nil
}

func (c RepairConsistencyCommand) Validate() error {
	return c.guard.Validate(ErrRepairConsistencyCommandIsNotConstructed)
}

func (c RepairConsistencyCommand) Tenant() kernel.TenantID {
	return c.tenant
}
