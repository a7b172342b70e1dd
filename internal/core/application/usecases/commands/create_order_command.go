package commands

import (
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to record a new customer order.
//
// Example:
//
//	customer, _ := kernel.NewContact("Ana", "600111222")
//	cmd, err := NewCreateOrderCommand(tenant, kernel.NewUUID(), details, customer, false)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
//	if IsPotentialDuplicate(err) {
//	    // ask the operator, then resend with confirmDuplicate = true
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	tenant           kernel.TenantID
	orderID          kernel.UUID
	details          order.Details
	customer         kernel.Contact
	confirmDuplicate bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to record an order. Details are
// validated by the order aggregate when the handler builds it.
func NewCreateOrderCommand(
	tenant kernel.TenantID,
	orderID kernel.UUID,
	details order.Details,
	customer kernel.Contact,
	confirmDuplicate bool,
) (CreateOrderCommand, error) {
	if err := errors.Join(tenant.Validate(), orderID.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}
	if customer.Name() == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("customer")
	}

	return CreateOrderCommand{
		tenant:           tenant,
		orderID:          orderID,
		details:          details,
		customer:         customer,
		confirmDuplicate: confirmDuplicate,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Tenant() kernel.TenantID {
	return c.tenant
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c CreateOrderCommand) Customer() kernel.Contact {
	return c.customer
}

// ConfirmDuplicate is true when the operator already accepted a potential duplicate.
func (c CreateOrderCommand) ConfirmDuplicate() bool {
	return c.confirmDuplicate
}
