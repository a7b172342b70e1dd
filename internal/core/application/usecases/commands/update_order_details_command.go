package commands

import (
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/pkg/guard"
)

var ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
	"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
)

// UpdateOrderDetailsCommand replaces the date, product, lab, warehouse, amount
// and notes of an order. Stages and customer have their own commands.
type UpdateOrderDetailsCommand struct {
	tenant  kernel.TenantID
	orderID kernel.UUID
	details order.Details

	guard guard.ConstructorGuard
}

func NewUpdateOrderDetailsCommand(
	tenant kernel.TenantID,
	orderID kernel.UUID,
	details order.Details,
) (UpdateOrderDetailsCommand, error) {
	if err := errors.Join(tenant.Validate(), orderID.Validate()); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}
	return UpdateOrderDetailsCommand{
		tenant:  tenant,
		orderID: orderID,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

func (c UpdateOrderDetailsCommand) Tenant() kernel.TenantID {
	return c.tenant
}

func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderDetailsCommand) Details() order.Details {
	return c.details
}
