package services_test

import (
	"testing"

	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsistencyAuditor_Audit(t *testing.T) {
	ana := newPerson(t, "Ana García", "600111222", "", person.Preferences{})
	luis := newPerson(t, "Luis", "622000000", "", person.Preferences{})
	luisTwin := newPerson(t, "Luis Pérez", "622000000", "", person.Preferences{})
	persons := []*person.Person{ana, luis, luisTwin}

	anaID := ana.ID()
	consistent := newOrder(t, "Ana García", "600111222", nil)
	mismatch := newOrder(t, "Ana", "600111222", nil)
	linkedMismatch := newOrder(t, "Anita", "", &anaID)
	byNameOnly := newOrder(t, "Luis", "", nil)
	orphan := newOrder(t, "Marta", "633000000", nil)

	report := services.NewConsistencyAuditor().Audit(
		[]*order.Order{consistent, mismatch, linkedMismatch, byNameOnly, orphan}, persons)

	require.Equal(t, 1, report.OrphanedCount())
	assert.Equal(t, orphan.ID(), report.Orphaned[0])

	require.Equal(t, 2, report.InconsistentCount())
	assert.Equal(t, mismatch.ID(), report.Inconsistent[0].OrderID)
	assert.Equal(t, "Ana García", report.Inconsistent[0].PersonName)
	assert.Equal(t, "Ana", report.Inconsistent[0].OrderName)
	assert.Equal(t, linkedMismatch.ID(), report.Inconsistent[1].OrderID)

	require.Equal(t, 1, report.DuplicateCount())
	assert.Equal(t, "622000000", report.DuplicatePhones[0].Phone)
	assert.Len(t, report.DuplicatePhones[0].PersonIDs, 2)
	assert.False(t, report.IsClean())
}

func TestConsistencyAuditor_Clean(t *testing.T) {
	ana := newPerson(t, "Ana", "600111222", "", person.Preferences{})
	report := services.NewConsistencyAuditor().Audit(
		[]*order.Order{newOrder(t, "Ana", "600111222", nil)}, []*person.Person{ana})

	assert.True(t, report.IsClean())
}

func TestConsistencyAuditor_SharedPhonePrefersSameName(t *testing.T) {
	luis := newPerson(t, "Luis", "622000000", "", person.Preferences{})
	twin := newPerson(t, "Luis Pérez", "622000000", "", person.Preferences{})

	report := services.NewConsistencyAuditor().Audit(
		[]*order.Order{newOrder(t, "Luis Pérez", "622000000", nil)},
		[]*person.Person{luis, twin})

	assert.Zero(t, report.InconsistentCount())
	assert.Zero(t, report.OrphanedCount())
	assert.Equal(t, 1, report.DuplicateCount())
}
