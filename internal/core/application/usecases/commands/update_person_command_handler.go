package commands

import (
	"context"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/ports"
	"encargos/internal/pkg/retry"
)

// UpdatePersonResult reports the person after the edit and how many orders the
// cascades rewrote.
type UpdatePersonResult struct {
	Person         *person.Person
	OrdersRenamed  int64
	OrdersRephoned int64
}

// UpdatePersonCommandHandler edits a person and cascades the change.
//
// A phone change first checks that no other person has the new phone, then
// rewrites the person and every order of that person in the same transaction.
// A name change does the same for names. Any failure rolls back both.
type UpdatePersonCommandHandler struct {
	uowFactory UoWFactory
	recorder   ports.Recorder
	retrier    *retry.Retrier
}

func NewUpdatePersonCommandHandler(
	uowFactory UoWFactory,
	recorder ports.Recorder,
	retrier *retry.Retrier,
) UpdatePersonCommandHandler {
	return UpdatePersonCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorderOrNop(recorder),
		retrier:    retrier,
	}
}

func (h UpdatePersonCommandHandler) Handle(ctx context.Context, command UpdatePersonCommand) (UpdatePersonResult, error) {
	if err := command.Validate(); err != nil {
		return UpdatePersonResult{}, err
	}

	result, err := retry.DoValue(ctx, h.retrier, func(ctx context.Context) (UpdatePersonResult, error) {
		return h.handle(ctx, command)
	})
	if err != nil {
		return UpdatePersonResult{}, err
	}

	h.recorder.CascadeApplied("name", result.OrdersRenamed)
	h.recorder.CascadeApplied("phone", result.OrdersRephoned)
	return result, nil
}

func (h UpdatePersonCommandHandler) handle(ctx context.Context, command UpdatePersonCommand) (UpdatePersonResult, error) {
	var result UpdatePersonResult

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	persons := uow.PersonRepository()
	orders := uow.OrderRepository()
	tenant := command.Tenant()

	p, err := persons.Get(ctx, tenant, command.PersonID())
	if err != nil {
		return result, err
	}
	id := p.ID()

	if phone := kernel.NormalizePhone(command.Phone()); phone != p.Phone() {
		if err = ensurePhoneIsFree(ctx, persons, tenant, phone, &id); err != nil {
			return result, err
		}
		oldPhone := p.Phone()
		if err = p.ChangePhone(phone); err != nil {
			return result, err
		}
		if result.OrdersRephoned, err = orders.ChangeCustomerPhone(ctx, tenant, id, oldPhone, p.Phone()); err != nil {
			return result, err
		}
	}

	if name := kernel.NormalizeName(command.Name()); name != p.Name() {
		oldName := p.Name()
		if err = p.Rename(name); err != nil {
			return result, err
		}
		if result.OrdersRenamed, err = orders.RenameCustomer(ctx, tenant, id, oldName, p.Name()); err != nil {
			return result, err
		}
	}

	if err = p.UpdateContactPreferences(command.Email(), command.Preferences()); err != nil {
		return result, err
	}

	if err = persons.Update(ctx, p); err != nil {
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	result.Person = p
	return result, nil
}
