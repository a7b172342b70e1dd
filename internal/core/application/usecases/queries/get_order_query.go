package queries

import (
	"context"
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	tenant  kernel.TenantID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(tenant kernel.TenantID, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(tenant.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{tenant: tenant, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when the order does not exist in the tenant.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE selling_point = ? AND id = ?
	`, query.tenant.String(), query.orderID.String()).Rows()
	if err != nil {
		return OrderView{}, err
	}

	orders, err := scanOrders(rows)
	if err != nil {
		return OrderView{}, err
	}
	if len(orders) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.orderID.String())
	}
	return orders[0], nil
}
