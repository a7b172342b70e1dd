package commands

import (
	"context"

	"encargos/internal/pkg/retry"
)

type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	retrier    *retry.Retrier
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, retrier *retry.Retrier) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		retrier:    retrier,
	}
}

// Handle deletes the order. A missing order yields ObjectNotFoundError.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, command DeleteOrderCommand) error {
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

		if err := uow.OrderRepository().Delete(ctx, command.Tenant(), command.OrderID()); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
