package commands

import (
	"context"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/ports"
	"encargos/internal/pkg/retry"
)

// UpdateOrderContactResult reports what a contact edit touched.
type UpdateOrderContactResult struct {
	Order *order.Order
	// Person is the person the order ends up linked to, nil when none.
	Person *person.Person
	// PersonCreated is true when Person did not exist before the edit.
	PersonCreated bool
	// OrdersRenamed and OrdersRephoned count orders rewritten by the cascade,
	// the edited order included.
	OrdersRenamed  int64
	OrdersRephoned int64
}

// UpdateOrderContactCommandHandler keeps the whole person graph consistent
// after a single order's contact is edited.
//
// In one transaction it:
//  1. finds the person owning the order (link first, then current phone)
//  2. if found, writes a changed phone or name onto that person and onto every
//     order of that person
//  3. if none is found and both name and phone are present, creates the person
//  4. fails with a ConflictError when the new phone belongs to another person
type UpdateOrderContactCommandHandler struct {
	uowFactory UoWFactory
	recorder   ports.Recorder
	retrier    *retry.Retrier
}

func NewUpdateOrderContactCommandHandler(
	uowFactory UoWFactory,
	recorder ports.Recorder,
	retrier *retry.Retrier,
) UpdateOrderContactCommandHandler {
	return UpdateOrderContactCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorderOrNop(recorder),
		retrier:    retrier,
	}
}

func (h UpdateOrderContactCommandHandler) Handle(
	ctx context.Context,
	command UpdateOrderContactCommand,
) (UpdateOrderContactResult, error) {
	if err := command.Validate(); err != nil {
		return UpdateOrderContactResult{}, err
	}

	result, err := retry.DoValue(ctx, h.retrier, func(ctx context.Context) (UpdateOrderContactResult, error) {
		return h.handle(ctx, command)
	})
	if err != nil {
		return UpdateOrderContactResult{}, err
	}

	h.recorder.CascadeApplied("name", result.OrdersRenamed)
	h.recorder.CascadeApplied("phone", result.OrdersRephoned)
	return result, nil
}

func (h UpdateOrderContactCommandHandler) handle(
	ctx context.Context,
	command UpdateOrderContactCommand,
) (UpdateOrderContactResult, error) {
	var result UpdateOrderContactResult

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	persons := uow.PersonRepository()
	tenant := command.Tenant()
	edited := command.Customer()

	o, err := orders.Get(ctx, tenant, command.OrderID())
	if err != nil {
		return result, err
	}

	owner, err := findOwner(ctx, persons, o)
	if err != nil {
		return result, err
	}

	switch {
	case owner != nil:
		ownerID := owner.ID()
		if edited.HasPhone() && edited.Phone() != owner.Phone() {
			if err = ensurePhoneIsFree(ctx, persons, tenant, edited.Phone(), &ownerID); err != nil {
				return result, err
			}
			oldPhone := owner.Phone()
			if err = owner.ChangePhone(edited.Phone()); err != nil {
				return result, err
			}
			if result.OrdersRephoned, err = orders.ChangeCustomerPhone(
				ctx, tenant, ownerID, oldPhone, owner.Phone()); err != nil {
				return result, err
			}
		}
		if edited.Name() != owner.Name() {
			oldName := owner.Name()
			if err = owner.Rename(edited.Name()); err != nil {
				return result, err
			}
			if result.OrdersRenamed, err = orders.RenameCustomer(
				ctx, tenant, ownerID, oldName, owner.Name()); err != nil {
				return result, err
			}
		}
		if err = persons.Update(ctx, owner); err != nil {
			return result, err
		}
		if err = o.LinkPerson(&ownerID); err != nil {
			return result, err
		}
		result.Person = owner

	case edited.IsComplete():
		if err = ensurePhoneIsFree(ctx, persons, tenant, edited.Phone(), nil); err != nil {
			return result, err
		}
		created, newErr := person.NewPerson(kernel.NewUUID(), tenant, edited.Name(), edited.Phone(), "", person.Preferences{})
		if newErr != nil {
			return result, newErr
		}
		if err = persons.Add(ctx, created); err != nil {
			return result, err
		}
		createdID := created.ID()
		if err = o.LinkPerson(&createdID); err != nil {
			return result, err
		}
		result.Person = created
		result.PersonCreated = true
	}

	if err = o.SetCustomer(edited); err != nil {
		return result, err
	}
	if err = orders.Update(ctx, o); err != nil {
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	result.Order = o
	return result, nil
}
