package validation_test

import (
	"testing"
	"time"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/validation"
	"encargos/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestValidateEncargoForm(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		r := validation.ValidateEncargoForm(validation.EncargoForm{
			Date:     "2024-05-01",
			Product:  "Aspirina",
			Customer: "Ana",
			Amount:   "4,95",
		}, now)

		assert.True(t, r.IsValid())
		assert.NoError(t, r.Err())
	})

	t.Run("every field is checked independently", func(t *testing.T) {
		r := validation.ValidateEncargoForm(validation.EncargoForm{
			Date:   "mañana",
			Phone:  "abc",
			Amount: "-3",
		}, now)

		assert.False(t, r.IsValid())
		assert.Len(t, r.Errors, 5)
		for _, field := range []string{"date", "product", "customer", "phone", "amount"} {
			assert.Contains(t, r.Errors, field)
		}

		err := r.Err()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		fields, ok := validation.FieldMessages(err)
		require.True(t, ok)
		assert.Equal(t, r.Errors, map[string]string(fields))
	})

	t.Run("sanitize strips markup", func(t *testing.T) {
		f := validation.EncargoForm{Product: " <b>Aspirina</b> "}.Sanitize()
		assert.Equal(t, "bAspirina/b", f.Product)
	})
}

func TestEncargoForm_Conversions(t *testing.T) {
	f := validation.EncargoForm{
		Date:      "2024-05-01",
		Product:   " Aspirina ",
		Lab:       "Cinfa",
		Customer:  "Ana",
		Phone:     "600 111 222",
		Amount:    "4,50",
		Notes:     "pagado",
		Warehouse: "",
	}.Sanitize()

	t.Run("details", func(t *testing.T) {
		d, err := f.Details(now)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), d.Date.UTC())
		assert.Equal(t, "Aspirina", d.Product)
		assert.Equal(t, "Cinfa", d.Lab)
		assert.True(t, d.Amount.Equal(decimal.RequireFromString("4.5")))
		assert.Equal(t, "pagado", d.Notes)
	})

	t.Run("contact normalizes the phone", func(t *testing.T) {
		c, err := f.Contact()

		require.NoError(t, err)
		assert.Equal(t, "Ana", c.Name())
		assert.Equal(t, "600111222", c.Phone())
	})

	t.Run("details of an unchecked form fail", func(t *testing.T) {
		_, err := validation.EncargoForm{Date: "ayer", Product: "Aspirina"}.Details(now)
		assert.Error(t, err)
	})

	t.Run("details and contact are checked apart", func(t *testing.T) {
		bad := validation.EncargoForm{Date: "2024-05-01", Product: "Aspirina", Phone: "abc"}

		assert.True(t, validation.ValidateEncargoDetails(bad, now).IsValid())

		r := validation.ValidateEncargoContact(bad)
		assert.Len(t, r.Errors, 2)
		assert.Contains(t, r.Errors, "customer")
		assert.Contains(t, r.Errors, "phone")
	})
}

func TestValidatePersonaForm(t *testing.T) {
	r := validation.ValidatePersonaForm(validation.PersonaForm{Name: "Ana", Phone: "600111222"})
	assert.True(t, r.IsValid())

	r = validation.ValidatePersonaForm(validation.PersonaForm{
		Name:               "Ana",
		Phone:              "600111222",
		EmailNotifications: true,
	})
	assert.False(t, r.IsValid())
	assert.Contains(t, r.Errors, "email")

	r = validation.ValidatePersonaForm(validation.PersonaForm{Name: "A", Phone: "1", Email: "x"})
	assert.Len(t, r.Errors, 3)
}

func TestCheckPotentialDuplicate(t *testing.T) {
	tenant := kernel.MustTenantID("centro")
	newOrder := func(name, phone, product string, date time.Time) *order.Order {
		customer, err := kernel.NewContact(name, phone)
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), tenant, order.Details{
			Date:    date,
			Product: product,
			Amount:  decimal.Zero,
		}, customer)
		require.NoError(t, err)
		return o
	}

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	existing := []*order.Order{newOrder("Ana", "600111222", "Aspirina", day)}

	tests := []struct {
		name      string
		candidate *order.Order
		want      bool
	}{
		{"same phone product and date", newOrder("Otra", "600111222", "Aspirina", day.Add(9*time.Hour)), true},
		{"same name product and date", newOrder("ana", "", "aspirina", day), true},
		{"next day", newOrder("Otra", "600111222", "Aspirina", day.AddDate(0, 0, 1)), false},
		{"other product", newOrder("Ana", "600111222", "Ibuprofeno", day), false},
		{"other customer", newOrder("Luis", "611000000", "Aspirina", day), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.CheckPotentialDuplicate(tt.candidate, existing))
		})
	}

	assert.False(t, validation.CheckPotentialDuplicate(existing[0], existing), "an order is not its own duplicate")
}
