package validation_test

import (
	"strings"
	"testing"
	"time"

	"encargos/internal/core/domain/validation"
	"encargos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+34600111222", true},
		{"600 111 222", true},
		{"(600) 111-222", true},
		{"abc", false},
		{"123", false},
		{"", false},
		{"60011+1222", false},
		{strings.Repeat("1", 21), false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := validation.ValidatePhone(tt.phone)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, validation.ValidateName("María José O'Neill-Pérez"))
	assert.NoError(t, validation.ValidateName("Dr. Ruiz"))
	assert.Error(t, validation.ValidateName(""))
	assert.Error(t, validation.ValidateName("A"))
	assert.Error(t, validation.ValidateName("Ana <script>"))
	assert.Error(t, validation.ValidateName("R2D2"))
	assert.Error(t, validation.ValidateName(strings.Repeat("a", 101)))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validation.ValidateEmail(""))
	assert.NoError(t, validation.ValidateEmail("ana@farmacia.es"))
	assert.Error(t, validation.ValidateEmail("ana@farmacia"))
	assert.Error(t, validation.ValidateEmail("ana.farmacia.es"))
	assert.Error(t, validation.ValidateEmail("ana @farmacia.es"))
}

func TestValidateAmount(t *testing.T) {
	amount, err := validation.ValidateAmount("12,50")
	require.NoError(t, err)
	assert.Equal(t, "12.5", amount.String())

	amount, err = validation.ValidateAmount("")
	require.NoError(t, err)
	assert.True(t, amount.IsZero())

	_, err = validation.ValidateAmount("999999.99")
	require.NoError(t, err)

	for _, bad := range []string{"-1", "1000000", "doce", "1.234"} {
		_, err = validation.ValidateAmount(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	date, err := validation.ValidateDate("2024-05-01", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), date)

	_, err = validation.ValidateDate("2023-05-01", now)
	require.NoError(t, err)
	_, err = validation.ValidateDate("2025-05-01", now)
	require.NoError(t, err)

	for _, bad := range []string{"", "2023-04-30", "2025-05-02", "2024-02-30", "01/05/2024"} {
		_, err = validation.ValidateDate(bad, now)
		assert.Error(t, err, bad)
	}
}

func TestValidateText(t *testing.T) {
	assert.NoError(t, validation.ValidateText("", "notas", false, 10))
	assert.Error(t, validation.ValidateText("  ", "producto", true, 10))
	assert.Error(t, validation.ValidateText("once letras", "producto", true, 10))

	err := validation.ValidateText("", "producto", true, 10)
	var fe *validation.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "El campo producto es obligatorio", fe.Message)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", validation.SanitizeInput("  <script>alert(1)</script> "))
	assert.Equal(t, "Ana", validation.SanitizeInput("Ana"))
}
