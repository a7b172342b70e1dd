package commands

import (
	"context"

	"encargos/internal/core/domain/model/person"
	"encargos/internal/pkg/retry"
)

// CreatePersonCommandHandler adds a person after checking that nobody else in
// the selling point has the phone.
type CreatePersonCommandHandler struct {
	uowFactory UoWFactory
	retrier    *retry.Retrier
}

func NewCreatePersonCommandHandler(uowFactory UoWFactory, retrier *retry.Retrier) CreatePersonCommandHandler {
	return CreatePersonCommandHandler{
		uowFactory: uowFactory,
		retrier:    retrier,
	}
}

func (h CreatePersonCommandHandler) Handle(ctx context.Context, command CreatePersonCommand) (*person.Person, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	p, err := person.NewPerson(
		command.PersonID(), command.Tenant(),
		command.Name(), command.Phone(), command.Email(), command.Preferences(),
	)
	if err != nil {
		return nil, err
	}

	return retry.DoValue(ctx, h.retrier, func(ctx context.Context) (*person.Person, error) {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		persons := uow.PersonRepository()

		if err := ensurePhoneIsFree(ctx, persons, p.Tenant(), p.Phone(), nil); err != nil {
			return nil, err
		}

		if err := persons.Add(ctx, p); err != nil {
			return nil, err
		}

		if err := uow.Commit(ctx); err != nil {
			return nil, err
		}

		return p, nil
	})
}
