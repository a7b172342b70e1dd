package queries

import (
	"database/sql"
	"time"

	"encargos/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderView is the read model of one order row.
type OrderView struct {
	ID            kernel.UUID
	Date          time.Time
	Product       string
	Lab           string
	Warehouse     string
	Ordered       bool
	Received      bool
	Delivered     bool
	Notified      bool
	CustomerName  string
	CustomerPhone string
	PersonID      *kernel.UUID
	Amount        decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const orderColumns = `
	id,
	date,
	product,
	lab,
	warehouse,
	ordered,
	received,
	delivered,
	notified,
	customer_name,
	customer_phone,
	person_id,
	amount,
	notes,
	created_at,
	updated_at`

func scanOrders(rows *sql.Rows) ([]OrderView, error) {
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		var view OrderView
		var id uuid.UUID
		var personID uuid.NullUUID

		err := rows.Scan(
			&id,
			&view.Date,
			&view.Product,
			&view.Lab,
			&view.Warehouse,
			&view.Ordered,
			&view.Received,
			&view.Delivered,
			&view.Notified,
			&view.CustomerName,
			&view.CustomerPhone,
			&personID,
			&view.Amount,
			&view.Notes,
			&view.CreatedAt,
			&view.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = orderID

		if personID.Valid {
			linked, linkErr := kernel.UUIDFromBytes(personID.UUID[:])
			if linkErr != nil {
				return nil, linkErr
			}
			view.PersonID = &linked
		}

		orders = append(orders, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
