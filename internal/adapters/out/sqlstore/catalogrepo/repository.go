package catalogrepo

import (
	"context"
	"errors"
	"strings"

	"encargos/internal/adapters/out/sqlstore/sqltypes"
	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) scoped(ctx context.Context, tenant kernel.TenantID, kind catalog.Kind) *gorm.DB {
	return r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("selling_point = ? AND kind = ?", tenant.String(), kind.String())
}

func (r *GormCatalogRepository) Add(ctx context.Context, item *catalog.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update stores the item name; nothing else of an item changes.
func (r *GormCatalogRepository) Update(ctx context.Context, item *catalog.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	result := r.scoped(ctx, item.Tenant(), item.Kind()).
		Where("id = ?", sqltypes.FromKernel(item.ID())).
		Update("name", item.Name())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(item.Kind().String(), item.ID().String())
	}
	return nil
}

func (r *GormCatalogRepository) Delete(ctx context.Context, tenant kernel.TenantID, kind catalog.Kind, id kernel.UUID) error {
	if err := errors.Join(tenant.Validate(), kind.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("selling_point = ? AND kind = ? AND id = ?", tenant.String(), kind.String(), sqltypes.FromKernel(id)).
		Delete(&ItemDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(kind.String(), id.String())
	}
	return nil
}

func (r *GormCatalogRepository) Get(
	ctx context.Context,
	tenant kernel.TenantID,
	kind catalog.Kind,
	id kernel.UUID,
) (*catalog.Item, error) {
	if err := errors.Join(tenant.Validate(), kind.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.scoped(ctx, tenant, kind).First(&dto, "id = ?", sqltypes.FromKernel(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(kind.String(), id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormCatalogRepository) List(ctx context.Context, tenant kernel.TenantID, kind catalog.Kind) ([]*catalog.Item, error) {
	if err := errors.Join(tenant.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	var dtos []ItemDTO
	if err := r.scoped(ctx, tenant, kind).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*catalog.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *GormCatalogRepository) FindByName(
	ctx context.Context,
	tenant kernel.TenantID,
	kind catalog.Kind,
	name string,
) (*catalog.Item, error) {
	if err := errors.Join(tenant.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	name = kernel.NormalizeName(name)
	var dto ItemDTO
	err := r.scoped(ctx, tenant, kind).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(kind.String(), name)
		}
		return nil, err
	}
	return toDomain(dto)
}
