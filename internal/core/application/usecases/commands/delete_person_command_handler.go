package commands

import (
	"context"

	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/retry"
)

// DeletePersonCommandHandler deletes a person unless orders still reference it
// by link, name or phone. A blocked delete returns ObjectIsReferencedError
// carrying the number of blocking orders.
type DeletePersonCommandHandler struct {
	uowFactory UoWFactory
	retrier    *retry.Retrier
}

func NewDeletePersonCommandHandler(uowFactory UoWFactory, retrier *retry.Retrier) DeletePersonCommandHandler {
	return DeletePersonCommandHandler{
		uowFactory: uowFactory,
		retrier:    retrier,
	}
}

func (h DeletePersonCommandHandler) Handle(ctx context.Context, command DeletePersonCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.retrier.Do(ctx, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		persons := uow.PersonRepository()

		p, err := persons.Get(ctx, command.Tenant(), command.PersonID())
		if err != nil {
			return err
		}

		count, err := uow.OrderRepository().CountReferencing(ctx, p.Tenant(), p.ID(), p.Name(), p.Phone())
		if err != nil {
			return err
		}
		if count > 0 {
			return errs.NewObjectIsReferencedError("person", p.ID(), count)
		}

		if err = persons.Delete(ctx, p.Tenant(), p.ID()); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
