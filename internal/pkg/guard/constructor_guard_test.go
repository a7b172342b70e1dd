package guard_test

import (
	"errors"
	"testing"

	"encargos/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
)

var errQueryIsNotConstructed = errors.New("query must be created via newQuery")

type query struct {
	tenant string
	guard  guard.ConstructorGuard
}

func newQuery(tenant string) query {
	return query{tenant: tenant, guard: guard.NewConstructorGuard()}
}

func (q query) Validate() error {
	return q.guard.Validate(errQueryIsNotConstructed)
}

func TestConstructorGuard(t *testing.T) {
	t.Run("constructed value passes", func(t *testing.T) {
		assert.NoError(t, newQuery("centro").Validate())
	})

	t.Run("literal with fields set still fails", func(t *testing.T) {
		q := query{tenant: "centro"}
		assert.ErrorIs(t, q.Validate(), errQueryIsNotConstructed)
	})

	t.Run("zero value fails", func(t *testing.T) {
		var q query
		assert.ErrorIs(t, q.Validate(), errQueryIsNotConstructed)
	})

	t.Run("copies keep the mark", func(t *testing.T) {
		q := newQuery("norte")
		c := q
		assert.NoError(t, c.Validate())
	})
}

func TestConstructorGuard_DefaultError(t *testing.T) {
	var g guard.ConstructorGuard

	assert.ErrorIs(t, g.Validate(nil), guard.ErrDefaultConstructorGuard)
	assert.NoError(t, guard.NewConstructorGuard().Validate(nil))
}
