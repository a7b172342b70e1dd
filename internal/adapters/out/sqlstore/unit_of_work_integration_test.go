package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"encargos/internal/adapters/out/sqlstore"
	"encargos/internal/adapters/out/sqlstore/sqltest"
	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/ports"
	"encargos/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var centro = kernel.MustTenantID("centro")

type uowFactory struct{ ports.UnitOfWorkFactory }

func (f uowFactory) Create() commands.UoW { return f.UnitOfWorkFactory.Create() }

// UnitOfWorkIntegrationTestSuite checks transaction boundaries and the
// cascades end to end against Postgres.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *sqltest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := sqltest.StartPostgres(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = sqlstore.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) seedPerson(name, phone string) *person.Person {
	p, err := person.NewPerson(kernel.NewUUID(), centro, name, phone, "", person.Preferences{})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().PersonRepository().Add(context.Background(), p))
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) seedOrder(name, phone string) *order.Order {
	customer, err := kernel.NewContact(name, phone)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), centro, order.Details{
		Date:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Product: "Aspirina",
		Amount:  decimal.NewFromInt(3),
	}, customer)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.PersonRepository())
	suite.NotNil(uow1.CatalogRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().Error(uow.Commit(ctx), "nothing left to commit")
	suite.Require().Error(uow.Rollback(ctx), "nothing left to roll back")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEveryRepository() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	p, err := person.NewPerson(kernel.NewUUID(), centro, "Ana", "600111222", "", person.Preferences{})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.PersonRepository().Add(ctx, p))
	customer, err := kernel.NewContact("Ana", "600111222")
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), centro,
		order.Details{Date: time.Now(), Product: "Aspirina"}, customer)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.PersonRepository().Get(ctx, centro, p.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.OrderRepository().Get(ctx, centro, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPersonPhoneCascade_CommitsPersonAndOrders() {
	ctx := context.Background()
	ana := suite.seedPerson("Ana", "600111222")
	first := suite.seedOrder("Ana", "600111222")
	second := suite.seedOrder("Ana", "600111222")

	handler := commands.NewUpdatePersonCommandHandler(uowFactory{suite.factory}, nil, nil)
	cmd, err := commands.NewUpdatePersonCommand(centro, ana.ID(), "Ana García", "611 222 333", "", person.Preferences{})
	suite.Require().NoError(err)
	result, err := handler.Handle(ctx, cmd)

	suite.Require().NoError(err)
	suite.Equal(int64(2), result.OrdersRephoned)
	suite.Equal(int64(2), result.OrdersRenamed)
	reader := suite.factory.Create().OrderRepository()
	for _, id := range []kernel.UUID{first.ID(), second.ID()} {
		o, getErr := reader.Get(ctx, centro, id)
		suite.Require().NoError(getErr)
		suite.Equal("611222333", o.Customer().Phone())
		suite.Equal("Ana García", o.Customer().Name())
		suite.Equal(ana.ID(), *o.PersonID())
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPersonPhoneCascade_ConflictLeavesEverythingUnchanged() {
	ctx := context.Background()
	ana := suite.seedPerson("Ana", "600111222")
	suite.seedPerson("Luis", "611000000")
	o := suite.seedOrder("Ana", "600111222")

	handler := commands.NewUpdatePersonCommandHandler(uowFactory{suite.factory}, nil, nil)
	cmd, err := commands.NewUpdatePersonCommand(centro, ana.ID(), "Ana García", "611000000", "", person.Preferences{})
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, cmd)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	reader := suite.factory.Create()
	storedPerson, err := reader.PersonRepository().Get(ctx, centro, ana.ID())
	suite.Require().NoError(err)
	suite.Equal("600111222", storedPerson.Phone())
	suite.Equal("Ana", storedPerson.Name())
	storedOrder, err := reader.OrderRepository().Get(ctx, centro, o.ID())
	suite.Require().NoError(err)
	suite.Equal("600111222", storedOrder.Customer().Phone())
	suite.Nil(storedOrder.PersonID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeletePerson_GuardedByOrders() {
	ctx := context.Background()
	ana := suite.seedPerson("Ana", "600111222")
	suite.seedOrder("Ana", "")
	suite.seedOrder("Otra", "600111222")

	handler := commands.NewDeletePersonCommandHandler(uowFactory{suite.factory}, nil)
	cmd, err := commands.NewDeletePersonCommand(centro, ana.ID())
	suite.Require().NoError(err)
	err = handler.Handle(ctx, cmd)

	var referenced *errs.ObjectIsReferencedError
	suite.Require().ErrorAs(err, &referenced)
	suite.Equal(int64(2), referenced.Count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
