package services_test

import (
	"testing"
	"time"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var tenant = kernel.MustTenantID("centro")

func newPerson(t *testing.T, name, phone, email string, prefs person.Preferences) *person.Person {
	t.Helper()
	p, err := person.NewPerson(kernel.NewUUID(), tenant, name, phone, email, prefs)
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T, name, phone string, personID *kernel.UUID) *order.Order {
	t.Helper()
	customer, err := kernel.NewContact(name, phone)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), tenant, order.Details{
		Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Product: "Aspirina",
		Amount:  decimal.Zero,
	}, customer, personID, order.NewStages(true, false, false), false, time.Now(), time.Now())
	require.NoError(t, err)
	return o
}
