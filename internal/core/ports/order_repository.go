package ports

import (
	"context"
	"time"

	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every method is scoped to one selling point; rows of other tenants are never
// read or written.
//
// The cascade helpers match an order when it is linked to the person, or when
// it is unlinked and its cached value equals the old value. Matched unlinked
// orders are linked to the person as part of the same statement.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes an order. Returns ObjectNotFoundError when nothing was deleted.
	Delete(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*order.Order, error)

	// ListAll returns every order of the tenant, newest date first.
	ListAll(ctx context.Context, tenant kernel.TenantID) ([]*order.Order, error)

	// FindSameDay returns the orders for product on the calendar day of date.
	// Product comparison is case-insensitive.
	FindSameDay(ctx context.Context, tenant kernel.TenantID, date time.Time, product string) ([]*order.Order, error)

	// RenameCustomer rewrites the cached customer name of the person's orders.
	RenameCustomer(ctx context.Context, tenant kernel.TenantID, personID kernel.UUID, oldName, newName string) (int64, error)

	// ChangeCustomerPhone rewrites the cached customer phone of the person's orders.
	ChangeCustomerPhone(
		ctx context.Context, tenant kernel.TenantID, personID kernel.UUID, oldPhone, newPhone string,
	) (int64, error)

	// CountReferencing counts orders linked to the person or carrying its name or phone.
	CountReferencing(ctx context.Context, tenant kernel.TenantID, personID kernel.UUID, name, phone string) (int64, error)

	// RenameCatalogReference rewrites the product, lab or warehouse name on orders.
	RenameCatalogReference(
		ctx context.Context, tenant kernel.TenantID, kind catalog.Kind, oldName, newName string,
	) (int64, error)
}
