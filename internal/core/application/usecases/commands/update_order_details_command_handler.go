package commands

import (
	"context"

	"encargos/internal/core/domain/model/order"
	"encargos/internal/pkg/retry"
)

// UpdateOrderDetailsCommandHandler edits the non-workflow fields of an order,
// creating catalog items for new names.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory UoWFactory
	retrier    *retry.Retrier
}

func NewUpdateOrderDetailsCommandHandler(
	uowFactory UoWFactory,
	retrier *retry.Retrier,
) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{
		uowFactory: uowFactory,
		retrier:    retrier,
	}
}

func (h UpdateOrderDetailsCommandHandler) Handle(
	ctx context.Context,
	command UpdateOrderDetailsCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return retry.DoValue(ctx, h.retrier, func(ctx context.Context) (*order.Order, error) {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		orders := uow.OrderRepository()

		o, err := orders.Get(ctx, command.Tenant(), command.OrderID())
		if err != nil {
			return nil, err
		}

		if err = o.UpdateDetails(command.Details()); err != nil {
			return nil, err
		}

		if err = ensureCatalogItems(ctx, uow.CatalogRepository(), o.Tenant(), o.Details()); err != nil {
			return nil, err
		}

		if err = orders.Update(ctx, o); err != nil {
			return nil, err
		}

		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}

		return o, nil
	})
}
