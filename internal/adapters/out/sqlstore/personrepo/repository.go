package personrepo

import (
	"context"
	"errors"

	"encargos/internal/adapters/out/sqlstore/sqltypes"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPersonRepository implements ports.PersonRepository using GORM.
type GormPersonRepository struct {
	db *gorm.DB
}

func NewGormPersonRepository(db *gorm.DB) *GormPersonRepository {
	return &GormPersonRepository{db: db}
}

func (r *GormPersonRepository) scoped(ctx context.Context, tenant kernel.TenantID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&PersonDTO{}).Where("selling_point = ?", tenant.String())
}

func (r *GormPersonRepository) Add(ctx context.Context, aggregate *person.Person) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormPersonRepository) Update(ctx context.Context, aggregate *person.Person) error {
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
		return errs.NewObjectNotFoundError("person", aggregate.ID().String())
	}
	return nil
}

func (r *GormPersonRepository) Delete(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) error {
	if err := errors.Join(tenant.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("selling_point = ? AND id = ?", tenant.String(), sqltypes.FromKernel(id)).
		Delete(&PersonDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("person", id.String())
	}
	return nil
}

func (r *GormPersonRepository) Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*person.Person, error) {
	if err := errors.Join(tenant.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto PersonDTO
	if err := r.scoped(ctx, tenant).First(&dto, "id = ?", sqltypes.FromKernel(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("person", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormPersonRepository) List(ctx context.Context, tenant kernel.TenantID) ([]*person.Person, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	var dtos []PersonDTO
	if err := r.scoped(ctx, tenant).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// FindByContact returns every person whose phone equals phone or whose name
// equals name. Empty arguments are ignored; both empty yields nothing.
func (r *GormPersonRepository) FindByContact(
	ctx context.Context,
	tenant kernel.TenantID,
	phone, name string,
) ([]*person.Person, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	phone = kernel.NormalizePhone(phone)
	name = kernel.NormalizeName(name)
	if phone == "" && name == "" {
		return []*person.Person{}, nil
	}

	var conditions *gorm.DB
	switch {
	case phone != "" && name != "":
		conditions = r.db.Where("phone = ?", phone).Or("name = ?", name)
	case phone != "":
		conditions = r.db.Where("phone = ?", phone)
	default:
		conditions = r.db.Where("name = ?", name)
	}

	var dtos []PersonDTO
	if err := r.scoped(ctx, tenant).Where(conditions).Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormPersonRepository) ExistsPhoneForOther(
	ctx context.Context,
	tenant kernel.TenantID,
	phone string,
	exclude *kernel.UUID,
) (bool, error) {
	if err := tenant.Validate(); err != nil {
		return false, err
	}

	query := r.scoped(ctx, tenant).Where("phone = ?", kernel.NormalizePhone(phone))
	if exclude != nil {
		query = query.Where("id <> ?", sqltypes.FromKernel(*exclude))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func toDomainList(dtos []PersonDTO) ([]*person.Person, error) {
	persons := make([]*person.Person, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, nil
}
