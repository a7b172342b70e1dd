package ports

import (
	"context"

	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
)

// CatalogRepository defines the persistence contract for products, laboratories and warehouses.
type CatalogRepository interface {
	Add(ctx context.Context, item *catalog.Item) error
	Update(ctx context.Context, item *catalog.Item) error
	Delete(ctx context.Context, tenant kernel.TenantID, kind catalog.Kind, id kernel.UUID) error
	Get(ctx context.Context, tenant kernel.TenantID, kind catalog.Kind, id kernel.UUID) (*catalog.Item, error)

	// List returns the items of one kind ordered by name.
	List(ctx context.Context, tenant kernel.TenantID, kind catalog.Kind) ([]*catalog.Item, error)

	// FindByName looks up an item by case-insensitive name.
	// Returns ObjectNotFoundError when there is none.
	FindByName(ctx context.Context, tenant kernel.TenantID, kind catalog.Kind, name string) (*catalog.Item, error)
}
