package queries

import (
	"context"
	"errors"
	"time"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListPersonsQueryIsNotConstructed = errors.New(
	"ListPersonsQuery must be created via NewListPersonsQuery constructor",
)

// PersonView is the read model of a person with the number of orders that
// reference it by link, name or phone.
type PersonView struct {
	ID                 kernel.UUID
	Name               string
	Phone              string
	Email              string
	PhoneNotifications bool
	EmailNotifications bool
	OrderCount         int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type ListPersonsQuery struct {
	tenant kernel.TenantID

	guard guard.ConstructorGuard
}

func NewListPersonsQuery(tenant kernel.TenantID) (ListPersonsQuery, error) {
	if err := tenant.Validate(); err != nil {
		return ListPersonsQuery{}, err
	}
	return ListPersonsQuery{tenant: tenant, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPersonsQuery) Validate() error {
	return q.guard.Validate(ErrListPersonsQueryIsNotConstructed)
}

type ListPersonsQueryHandler struct {
	db *gorm.DB
}

func NewListPersonsQueryHandler(db *gorm.DB) ListPersonsQueryHandler {
	return ListPersonsQueryHandler{db: db}
}

// Handle lists the tenant's persons ordered by name.
func (h ListPersonsQueryHandler) Handle(ctx context.Context, query ListPersonsQuery) ([]PersonView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.name,
			p.phone,
			p.email,
			p.phone_notifications,
			p.email_notifications,
			(
				SELECT COUNT(*) FROM orders o
				WHERE o.selling_point = p.selling_point
					AND (o.person_id = p.id OR o.customer_name = p.name OR o.customer_phone = p.phone)
			) AS order_count,
			p.created_at,
			p.updated_at
		FROM persons p
		WHERE p.selling_point = ?
		ORDER BY p.name
	`, query.tenant.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	persons := make([]PersonView, 0)
	for rows.Next() {
		var view PersonView
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&view.Name,
			&view.Phone,
			&view.Email,
			&view.PhoneNotifications,
			&view.EmailNotifications,
			&view.OrderCount,
			&view.CreatedAt,
			&view.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		personID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = personID
		persons = append(persons, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return persons, nil
}
