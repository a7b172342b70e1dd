package commands

import (
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order. Orders are not referenced by anything,
// so there is no guard.
type DeleteOrderCommand struct {
	tenant  kernel.TenantID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(tenant kernel.TenantID, orderID kernel.UUID) (DeleteOrderCommand, error) {
	if err := errors.Join(tenant.Validate(), orderID.Validate()); err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{tenant: tenant, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) Tenant() kernel.TenantID {
	return c.tenant
}

func (c DeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
