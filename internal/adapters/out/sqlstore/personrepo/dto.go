// Package personrepo persists person aggregates with GORM.
package personrepo

import (
	"time"

	"encargos/internal/adapters/out/sqlstore/sqltypes"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/person"
)

// PersonDTO represents the persons table. Phone uniqueness per selling point is
// checked by the application, not by an index.
type PersonDTO struct {
	ID                 sqltypes.UUID `gorm:"primaryKey"`
	SellingPoint       string        `gorm:"size:64;not null;index:idx_persons_tenant_phone,priority:1"`
	Name               string        `gorm:"size:100;not null"`
	Phone              string        `gorm:"size:20;not null;index:idx_persons_tenant_phone,priority:2"`
	Email              string        `gorm:"size:254"`
	PhoneNotifications bool          `gorm:"not null;default:false"`
	EmailNotifications bool          `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (PersonDTO) TableName() string {
	return "persons"
}

func fromDomain(p *person.Person) PersonDTO {
	prefs := p.Preferences()
	return PersonDTO{
		ID:                 sqltypes.FromKernel(p.ID()),
		SellingPoint:       p.Tenant().String(),
		Name:               p.Name(),
		Phone:              p.Phone(),
		Email:              p.Email(),
		PhoneNotifications: prefs.Phone,
		EmailNotifications: prefs.Email,
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}

func toDomain(dto PersonDTO) (*person.Person, error) {
	id, err := dto.ID.Kernel()
	if err != nil {
		return nil, err
	}
	tenant, err := kernel.NewTenantID(dto.SellingPoint)
	if err != nil {
		return nil, err
	}

	return person.RestorePerson(
		id, tenant,
		dto.Name, dto.Phone, dto.Email,
		person.Preferences{Phone: dto.PhoneNotifications, Email: dto.EmailNotifications},
		dto.CreatedAt, dto.UpdatedAt,
	)
}
