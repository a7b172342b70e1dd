package commands_test

import (
	"errors"
	"testing"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRepairConsistencyCommandHandler(t *testing.T) {
	setup := func(t *testing.T) (*MockUoW, *order.Order, *person.Person) {
		ana := newPerson(t, "Ana García", "600111222", "", person.Preferences{})
		mismatch := restoreOrder(t, "Ana", "600111222", nil, order.NewStages(false, false, false))
		fine := restoreOrder(t, "Ana García", "600111222", nil, order.NewStages(false, false, false))
		uow := newMockUoW()
		uow.orders.On("ListAll", mock.Anything, tenant).Return([]*order.Order{mismatch, fine}, nil)
		uow.persons.On("List", mock.Anything, tenant).Return([]*person.Person{ana}, nil)
		return uow, mismatch, ana
	}

	t.Run("renames mismatched orders", func(t *testing.T) {
		uow, mismatch, ana := setup(t)
		uow.expectTx(true)
		uow.orders.On("Update", mock.Anything, mismatch).Return(nil).Once()

		cmd, err := commands.NewRepairConsistencyCommand(tenant)
		require.NoError(t, err)
		result, err := commands.NewRepairConsistencyCommandHandler(uowFactory{uow}, nil, nil).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Fixed)
		assert.Empty(t, result.Errors)
		assert.Equal(t, "Ana García", mismatch.Customer().Name())
		assert.Equal(t, ana.ID(), *mismatch.PersonID())
		uow.assertAll(t)
	})

	t.Run("a failure rolls back everything", func(t *testing.T) {
		uow, mismatch, _ := setup(t)
		uow.expectTx(false)
		uow.orders.On("Update", mock.Anything, mismatch).Return(errors.New("constraint violation")).Once()

		cmd, err := commands.NewRepairConsistencyCommand(tenant)
		require.NoError(t, err)
		result, err := commands.NewRepairConsistencyCommandHandler(uowFactory{uow}, nil, nil).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Fixed)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "constraint violation")
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("nothing to do", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectTx(false)
		uow.orders.On("ListAll", mock.Anything, tenant).Return([]*order.Order{}, nil)
		uow.persons.On("List", mock.Anything, tenant).Return([]*person.Person{}, nil)

		cmd, err := commands.NewRepairConsistencyCommand(tenant)
		require.NoError(t, err)
		result, err := commands.NewRepairConsistencyCommandHandler(uowFactory{uow}, nil, nil).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.RepairResult{}, result)
	})
}
