package commands_test

import (
	"testing"
	"time"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var orderDay = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func details(product string) order.Details {
	return order.Details{
		Date:    orderDay,
		Product: product,
		Amount:  decimal.RequireFromString("4.95"),
	}
}

func contact(t *testing.T, name, phone string) kernel.Contact {
	t.Helper()
	c, err := kernel.NewContact(name, phone)
	require.NoError(t, err)
	return c
}

func restoreOrder(t *testing.T, name, phone string, personID *kernel.UUID, stages order.Stages) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), tenant, details("Aspirina"), contact(t, name, phone),
		personID, stages, false, orderDay, orderDay)
	require.NoError(t, err)
	return o
}

func newPerson(t *testing.T, name, phone, email string, prefs person.Preferences) *person.Person {
	t.Helper()
	p, err := person.NewPerson(kernel.NewUUID(), tenant, name, phone, email, prefs)
	require.NoError(t, err)
	return p
}
