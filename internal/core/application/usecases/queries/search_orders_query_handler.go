package queries

import (
	"context"

	"gorm.io/gorm"
)

type SearchOrdersQueryHandler struct {
	db *gorm.DB
}

func NewSearchOrdersQueryHandler(db *gorm.DB) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db}
}

func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pattern := query.pattern()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE selling_point = ?
			AND (
				LOWER(customer_name) LIKE ?
				OR LOWER(customer_phone) LIKE ?
				OR LOWER(product) LIKE ?
				OR LOWER(COALESCE(lab, '')) LIKE ?
				OR LOWER(COALESCE(notes, '')) LIKE ?
			)
		ORDER BY date DESC, created_at DESC
	`, query.Tenant().String(), pattern, pattern, pattern, pattern, pattern).Rows()
	if err != nil {
		return nil, err
	}

	return scanOrders(rows)
}
