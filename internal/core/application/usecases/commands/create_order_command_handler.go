package commands

import (
	"context"
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/domain/validation"
	"encargos/internal/core/ports"
	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/retry"
)

// ErrPotentialDuplicate is the cause of the ConflictError returned when an order
// looks like one already recorded.
var ErrPotentialDuplicate = errors.New("potential duplicate order")

// IsPotentialDuplicate reports whether err asks the operator to confirm a duplicate.
func IsPotentialDuplicate(err error) bool {
	var conflict *errs.ConflictError
	return errors.As(err, &conflict) && errors.Is(conflict.Cause, ErrPotentialDuplicate)
}

// CreateOrderCommandHandler records orders.
//
// Within one transaction it:
//   - rejects a likely duplicate unless the command confirms it
//   - creates missing catalog items named by the order
//   - links the order to the person owning its phone, creating that person
//     when there is none and both name and phone are known
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	retrier    *retry.Retrier
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, retrier *retry.Retrier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		retrier:    retrier,
	}
}

// Handle creates the order and returns it.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return retry.DoValue(ctx, h.retrier, func(ctx context.Context) (*order.Order, error) {
		return h.handle(ctx, command)
	})
}

func (h CreateOrderCommandHandler) handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	o, err := order.NewOrder(command.OrderID(), command.Tenant(), command.Details(), command.Customer())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	persons := uow.PersonRepository()

	if !command.ConfirmDuplicate() {
		sameDay, findErr := orders.FindSameDay(ctx, o.Tenant(), o.Date(), o.Product())
		if findErr != nil {
			return nil, findErr
		}
		if validation.CheckPotentialDuplicate(o, sameDay) {
			return nil, errs.NewConflictErrorWithCause("an order of the same day", o.Product(), ErrPotentialDuplicate)
		}
	}

	if err = ensureCatalogItems(ctx, uow.CatalogRepository(), o.Tenant(), o.Details()); err != nil {
		return nil, err
	}

	if err = h.linkCustomer(ctx, persons, o); err != nil {
		return nil, err
	}

	if err = orders.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h CreateOrderCommandHandler) linkCustomer(ctx context.Context, persons ports.PersonRepository, o *order.Order) error {
	customer := o.Customer()
	if !customer.IsComplete() {
		return nil
	}

	p, err := findByPhone(ctx, persons, o.Tenant(), customer.Phone())
	if err != nil {
		return err
	}
	if p == nil {
		p, err = person.NewPerson(kernel.NewUUID(), o.Tenant(), customer.Name(), customer.Phone(), "", person.Preferences{})
		if err != nil {
			return err
		}
		if err = persons.Add(ctx, p); err != nil {
			return err
		}
	}

	id := p.ID()
	return o.LinkPerson(&id)
}
