package kernel_test

import (
	"testing"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	assert.NoError(t, a.Validate())
	assert.False(t, a.IsEqual(b))
	assert.True(t, a.IsEqual(a))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("accepts the forms used in urls and exports", func(t *testing.T) {
		for _, s := range []string{
			canonicalID,
			"{" + canonicalID + "}",
			"urn:uuid:" + canonicalID,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(s)
			require.NoError(t, err, s)
			assert.Equal(t, canonicalID, id.String())
		}
	})

	t.Run("rejects garbage as an invalid id", func(t *testing.T) {
		for _, s := range []string{"", "42", "not-a-uuid", canonicalID + "0"} {
			_, err := kernel.UUIDFromString(s)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})

	t.Run("rejects the nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round trips through the storage form", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("rejects a short slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects sixteen zero bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_ZeroValue(t *testing.T) {
	var id kernel.UUID

	assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	assert.Equal(t, uuid.Nil.String(), id.String())
}

func TestSameLink(t *testing.T) {
	a := kernel.NewUUID()
	sameAsA, err := kernel.UUIDFromString(a.String())
	require.NoError(t, err)
	b := kernel.NewUUID()

	tests := map[string]struct {
		x, y *kernel.UUID
		want bool
	}{
		"both unlinked":    {nil, nil, true},
		"one unlinked":     {&a, nil, false},
		"other unlinked":   {nil, &a, false},
		"same person":      {&a, &sameAsA, true},
		"different people": {&a, &b, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, kernel.SameLink(tt.x, tt.y))
		})
	}
}
