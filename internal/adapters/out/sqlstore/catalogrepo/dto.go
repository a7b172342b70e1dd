// Package catalogrepo persists products, laboratories and warehouses in one
// catalog_items table discriminated by kind.
package catalogrepo

import (
	"time"

	"encargos/internal/adapters/out/sqlstore/sqltypes"
	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
)

type ItemDTO struct {
	ID           sqltypes.UUID `gorm:"primaryKey"`
	SellingPoint string        `gorm:"size:64;not null;index:idx_catalog_tenant_kind,priority:1"`
	Kind         string        `gorm:"size:16;not null;index:idx_catalog_tenant_kind,priority:2"`
	Name         string        `gorm:"size:100;not null"`
	CreatedAt    time.Time
}

func (ItemDTO) TableName() string {
	return "catalog_items"
}

func fromDomain(item *catalog.Item) ItemDTO {
	return ItemDTO{
		ID:           sqltypes.FromKernel(item.ID()),
		SellingPoint: item.Tenant().String(),
		Kind:         item.Kind().String(),
		Name:         item.Name(),
		CreatedAt:    item.CreatedAt(),
	}
}

func toDomain(dto ItemDTO) (*catalog.Item, error) {
	id, err := dto.ID.Kernel()
	if err != nil {
		return nil, err
	}
	tenant, err := kernel.NewTenantID(dto.SellingPoint)
	if err != nil {
		return nil, err
	}
	kind, err := catalog.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreItem(id, tenant, kind, dto.Name, dto.CreatedAt)
}
