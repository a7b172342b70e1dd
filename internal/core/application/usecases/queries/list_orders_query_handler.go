package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}

	page := OrderPage{Page: query.Page(), PageSize: query.PageSize()}

	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM orders WHERE selling_point = ?
	`, query.Tenant().String()).Row().Scan(&page.Total)
	if err != nil {
		return OrderPage{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE selling_point = ?
		ORDER BY date DESC, created_at DESC
		LIMIT ? OFFSET ?
	`, query.Tenant().String(), query.PageSize(), query.offset()).Rows()
	if err != nil {
		return OrderPage{}, err
	}

	if page.Items, err = scanOrders(rows); err != nil {
		return OrderPage{}, err
	}
	return page, nil
}
