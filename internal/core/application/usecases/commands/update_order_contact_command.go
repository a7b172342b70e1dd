package commands

import (
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/guard"
)

var ErrUpdateOrderContactCommandIsNotConstructed = errors.New(
	"UpdateOrderContactCommand must be created via NewUpdateOrderContactCommand constructor",
)

// UpdateOrderContactCommand edits the customer name and phone directly on an
// order. The edit is propagated to the owning person and to every order of
// that person.
type UpdateOrderContactCommand struct {
	tenant   kernel.TenantID
	orderID  kernel.UUID
	customer kernel.Contact

	guard guard.ConstructorGuard
}

func NewUpdateOrderContactCommand(
	tenant kernel.TenantID,
	orderID kernel.UUID,
	name, phone string,
) (UpdateOrderContactCommand, error) {
	customer, err := kernel.NewContact(name, phone)
	if err = errors.Join(tenant.Validate(), orderID.Validate(), err); err != nil {
		return UpdateOrderContactCommand{}, err
	}

	return UpdateOrderContactCommand{
		tenant:   tenant,
		orderID:  orderID,
		customer: customer,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderContactCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderContactCommandIsNotConstructed)
}

func (c UpdateOrderContactCommand) Tenant() kernel.TenantID {
	return c.tenant
}

func (c UpdateOrderContactCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer is the new name and phone, normalized.
func (c UpdateOrderContactCommand) Customer() kernel.Contact {
	return c.customer
}
