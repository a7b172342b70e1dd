// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"time"

	"encargos/internal/adapters/out/sqlstore/sqltypes"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The customer name and phone are the cached copy; PersonID is the link.
type OrderDTO struct {
	ID            sqltypes.UUID   `gorm:"primaryKey"`
	SellingPoint  string          `gorm:"size:64;not null;index:idx_orders_tenant_date,priority:1"`
	Date          time.Time       `gorm:"type:date;not null;index:idx_orders_tenant_date,priority:2"`
	Product       string          `gorm:"size:100;not null"`
	Lab           string          `gorm:"size:100"`
	Warehouse     string          `gorm:"size:100"`
	Ordered       bool            `gorm:"not null;default:false"`
	Received      bool            `gorm:"not null;default:false"`
	Delivered     bool            `gorm:"not null;default:false"`
	CustomerName  string          `gorm:"size:100;not null"`
	CustomerPhone string          `gorm:"size:20;index"`
	PersonID      *sqltypes.UUID  `gorm:"index"`
	Notified      bool            `gorm:"not null;default:false"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Notes         string          `gorm:"size:500"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	stages := o.Stages()
	customer := o.Customer()

	return OrderDTO{
		ID:            sqltypes.FromKernel(o.ID()),
		SellingPoint:  o.Tenant().String(),
		Date:          d.Date,
		Product:       d.Product,
		Lab:           d.Lab,
		Warehouse:     d.Warehouse,
		Ordered:       stages.Ordered(),
		Received:      stages.Received(),
		Delivered:     stages.Delivered(),
		CustomerName:  customer.Name(),
		CustomerPhone: customer.Phone(),
		PersonID:      sqltypes.FromKernelPtr(o.PersonID()),
		Notified:      o.Notified(),
		Amount:        d.Amount,
		Notes:         d.Notes,
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := dto.ID.Kernel()
	if err != nil {
		return nil, err
	}
	personID, err := sqltypes.KernelPtr(dto.PersonID)
	if err != nil {
		return nil, err
	}
	tenant, err := kernel.NewTenantID(dto.SellingPoint)
	if err != nil {
		return nil, err
	}
	customer, err := kernel.NewContact(dto.CustomerName, dto.CustomerPhone)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		tenant,
		order.Details{
			Date:      dto.Date,
			Product:   dto.Product,
			Lab:       dto.Lab,
			Warehouse: dto.Warehouse,
			Amount:    dto.Amount,
			Notes:     dto.Notes,
		},
		customer,
		personID,
		order.NewStages(dto.Ordered, dto.Received, dto.Delivered),
		dto.Notified,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
