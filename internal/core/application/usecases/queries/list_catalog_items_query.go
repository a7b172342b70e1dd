package queries

import (
	"context"
	"errors"
	"time"

	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListCatalogItemsQueryIsNotConstructed = errors.New(
	"ListCatalogItemsQuery must be created via NewListCatalogItemsQuery constructor",
)

type CatalogItemView struct {
	ID        kernel.UUID
	Kind      catalog.Kind
	Name      string
	CreatedAt time.Time
}

// ListCatalogItemsQuery lists the products, laboratories or warehouses of a tenant.
type ListCatalogItemsQuery struct {
	tenant kernel.TenantID
	kind   catalog.Kind

	guard guard.ConstructorGuard
}

func NewListCatalogItemsQuery(tenant kernel.TenantID, kind catalog.Kind) (ListCatalogItemsQuery, error) {
	if err := errors.Join(tenant.Validate(), kind.Validate()); err != nil {
		return ListCatalogItemsQuery{}, err
	}
	return ListCatalogItemsQuery{tenant: tenant, kind: kind, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCatalogItemsQuery) Validate() error {
	return q.guard.Validate(ErrListCatalogItemsQueryIsNotConstructed)
}

type ListCatalogItemsQueryHandler struct {
	db *gorm.DB
}

func NewListCatalogItemsQueryHandler(db *gorm.DB) ListCatalogItemsQueryHandler {
	return ListCatalogItemsQueryHandler{db: db}
}

func (h ListCatalogItemsQueryHandler) Handle(ctx context.Context, query ListCatalogItemsQuery) ([]CatalogItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, created_at
		FROM catalog_items
		WHERE selling_point = ? AND kind = ?
		ORDER BY name
	`, query.tenant.String(), query.kind.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CatalogItemView, 0)
	for rows.Next() {
		view := CatalogItemView{Kind: query.kind}
		var id uuid.UUID

		if err = rows.Scan(&id, &view.Name, &view.CreatedAt); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = itemID
		items = append(items, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
