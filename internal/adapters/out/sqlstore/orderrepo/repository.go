package orderrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"encargos/internal/adapters/out/sqlstore/sqltypes"
	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) scoped(ctx context.Context, tenant kernel.TenantID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&OrderDTO{}).Where("selling_point = ?", tenant.String())
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes every column of an existing order, false flags and a nil
// link included.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.scoped(ctx, aggregate.Tenant()).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "selling_point", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return nil
}

func (r *GormOrderRepository) Delete(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) error {
	if err := errors.Join(tenant.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("selling_point = ? AND id = ?", tenant.String(), sqltypes.FromKernel(id)).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenant.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.scoped(ctx, tenant).First(&dto, "id = ?", sqltypes.FromKernel(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) ListAll(ctx context.Context, tenant kernel.TenantID) ([]*order.Order, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.scoped(ctx, tenant).Order("date DESC, created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormOrderRepository) FindSameDay(
	ctx context.Context,
	tenant kernel.TenantID,
	date time.Time,
	product string,
) ([]*order.Order, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.scoped(ctx, tenant).
		Where("date = ? AND LOWER(product) = ?", order.CalendarDay(date), strings.ToLower(strings.TrimSpace(product))).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// RenameCustomer rewrites customer_name on the person's orders and on the
// unlinked ones that carried the old name. A name alone does not identify a
// person, so those rows stay unlinked.
func (r *GormOrderRepository) RenameCustomer(
	ctx context.Context,
	tenant kernel.TenantID,
	personID kernel.UUID,
	oldName, newName string,
) (int64, error) {
	return r.cascade(ctx, tenant, personID, "customer_name", oldName, newName, false)
}

// ChangeCustomerPhone rewrites customer_phone on the person's orders and links
// the unlinked ones that carried the old phone.
func (r *GormOrderRepository) ChangeCustomerPhone(
	ctx context.Context,
	tenant kernel.TenantID,
	personID kernel.UUID,
	oldPhone, newPhone string,
) (int64, error) {
	return r.cascade(ctx, tenant, personID, "customer_phone", oldPhone, newPhone, true)
}

func (r *GormOrderRepository) cascade(
	ctx context.Context,
	tenant kernel.TenantID,
	personID kernel.UUID,
	column, oldValue, newValue string,
	link bool,
) (int64, error) {
	if err := errors.Join(tenant.Validate(), personID.Validate()); err != nil {
		return 0, err
	}

	pid := sqltypes.FromKernel(personID)
	now := time.Now().UTC()

	linked := r.scoped(ctx, tenant).
		Where("person_id = ?", pid).
		Updates(map[string]any{column: newValue, "updated_at": now})
	if linked.Error != nil || oldValue == "" {
		return linked.RowsAffected, linked.Error
	}

	values := map[string]any{column: newValue, "updated_at": now}
	if link {
		values["person_id"] = pid
	}
	unlinked := r.scoped(ctx, tenant).
		Where("person_id IS NULL AND "+column+" = ?", oldValue).
		Updates(values)
	return linked.RowsAffected + unlinked.RowsAffected, unlinked.Error
}

func (r *GormOrderRepository) CountReferencing(
	ctx context.Context,
	tenant kernel.TenantID,
	personID kernel.UUID,
	name, phone string,
) (int64, error) {
	if err := errors.Join(tenant.Validate(), personID.Validate()); err != nil {
		return 0, err
	}

	query := r.scoped(ctx, tenant)
	conditions := r.db.Where("person_id = ?", sqltypes.FromKernel(personID))
	if name != "" {
		conditions = conditions.Or("customer_name = ?", name)
	}
	if phone != "" {
		conditions = conditions.Or("customer_phone = ?", phone)
	}

	var count int64
	err := query.Where(conditions).Count(&count).Error
	return count, err
}

func (r *GormOrderRepository) RenameCatalogReference(
	ctx context.Context,
	tenant kernel.TenantID,
	kind catalog.Kind,
	oldName, newName string,
) (int64, error) {
	if err := errors.Join(tenant.Validate(), kind.Validate()); err != nil {
		return 0, err
	}

	column, err := catalogColumn(kind)
	if err != nil {
		return 0, err
	}

	result := r.scoped(ctx, tenant).
		Where("LOWER("+column+") = ?", strings.ToLower(oldName)).
		Updates(map[string]any{column: newName, "updated_at": time.Now().UTC()})
	return result.RowsAffected, result.Error
}

func catalogColumn(kind catalog.Kind) (string, error) {
	switch kind {
	case catalog.Product:
		return "product", nil
	case catalog.Laboratory:
		return "lab", nil
	case catalog.Warehouse:
		return "warehouse", nil
	case catalog.UnknownKind:
	}
	return "", errs.NewValueIsInvalidError("kind")
}
