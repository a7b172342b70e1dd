package kernel_test

import (
	"testing"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "600111222", kernel.NormalizePhone(" 600 11-12 22 "))
	assert.Equal(t, "+34600111222", kernel.NormalizePhone("+34 (600) 111-222"))
	assert.Empty(t, kernel.NormalizePhone("  "))
}

func TestNewContact(t *testing.T) {
	t.Run("should normalize name and phone", func(t *testing.T) {
		c, err := kernel.NewContact("  Ana   García ", "600-111-222")

		require.NoError(t, err)
		assert.Equal(t, "Ana García", c.Name())
		assert.Equal(t, "600111222", c.Phone())
		assert.True(t, c.HasPhone())
		assert.True(t, c.IsComplete())
	})

	t.Run("phone is optional", func(t *testing.T) {
		c, err := kernel.NewContact("Ana", "")

		require.NoError(t, err)
		assert.False(t, c.HasPhone())
		assert.False(t, c.IsComplete())
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := kernel.NewContact(" ", "600111222")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("with helpers return normalized copies", func(t *testing.T) {
		c, _ := kernel.NewContact("Ana", "600111222")

		renamed := c.WithName(" Ana  García")
		moved := c.WithPhone("611 222 333")

		assert.Equal(t, "Ana", c.Name())
		assert.Equal(t, "Ana García", renamed.Name())
		assert.Equal(t, "611222333", moved.Phone())
		assert.False(t, c.IsEqual(renamed))
		assert.True(t, c.IsEqual(c.WithName("Ana")))
	})
}
