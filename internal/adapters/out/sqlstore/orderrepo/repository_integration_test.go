package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"encargos/internal/adapters/out/sqlstore/orderrepo"
	"encargos/internal/adapters/out/sqlstore/sqltest"
	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var (
	centro = kernel.MustTenantID("centro")
	norte  = kernel.MustTenantID("norte")
	day    = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a real Postgres.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *sqltest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := sqltest.StartPostgres(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(tenant kernel.TenantID, name, phone, product string) *order.Order {
	customer, err := kernel.NewContact(name, phone)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), tenant, order.Details{
		Date:    day,
		Product: product,
		Lab:     "Cinfa",
		Amount:  decimal.RequireFromString("12.50"),
		Notes:   "pagado",
	}, customer)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) add(o *order.Order) {
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsEveryField() {
	ctx := context.Background()
	o := suite.newOrder(centro, "Ana", "600111222", "Aspirina")
	personID := kernel.NewUUID()
	suite.Require().NoError(o.LinkPerson(&personID))
	suite.add(o)

	got, err := suite.repository.Get(ctx, centro, o.ID())

	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
	suite.Equal("Aspirina", got.Product())
	suite.Equal("Cinfa", got.Lab())
	suite.True(decimal.RequireFromString("12.5").Equal(got.Amount()))
	suite.Equal(day, got.Date().UTC())
	suite.Equal("600111222", got.Customer().Phone())
	suite.Require().NotNil(got.PersonID())
	suite.Equal(personID, *got.PersonID())
	suite.False(got.Stages().Ordered())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_OtherTenantIsNotFound() {
	o := suite.newOrder(centro, "Ana", "600111222", "Aspirina")
	suite.add(o)

	_, err := suite.repository.Get(context.Background(), norte, o.ID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesFalseFlagsAndNilLink() {
	ctx := context.Background()
	personID := kernel.NewUUID()
	customer, err := kernel.NewContact("Ana", "600111222")
	suite.Require().NoError(err)
	o, err := order.RestoreOrder(kernel.NewUUID(), centro, order.Details{Date: day, Product: "Aspirina"},
		customer, &personID, order.NewStages(true, true, false), true, day, day)
	suite.Require().NoError(err)
	suite.add(o)

	transition, err := o.RequestStage(order.Ordered, false)
	suite.Require().NoError(err)
	patch, err := transition.Resolve(order.ConfirmAll(), order.PolicyPartialAllowed)
	suite.Require().NoError(err)
	o.ApplyPatch(patch)
	suite.Require().NoError(o.LinkPerson(nil))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, centro, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.NewStages(false, false, false), got.Stages())
	suite.Nil(got.PersonID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	err := suite.repository.Update(context.Background(), suite.newOrder(centro, "Ana", "", "Aspirina"))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	o := suite.newOrder(centro, "Ana", "", "Aspirina")
	suite.add(o)

	suite.Require().ErrorIs(suite.repository.Delete(ctx, norte, o.ID()), errs.ErrObjectNotFound)
	suite.Require().NoError(suite.repository.Delete(ctx, centro, o.ID()))
	suite.Require().ErrorIs(suite.repository.Delete(ctx, centro, o.ID()), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindSameDay_IgnoresCase() {
	ctx := context.Background()
	suite.add(suite.newOrder(centro, "Ana", "", "Aspirina"))
	suite.add(suite.newOrder(centro, "Luis", "", "Ibuprofeno"))
	suite.add(suite.newOrder(norte, "Ana", "", "Aspirina"))

	found, err := suite.repository.FindSameDay(ctx, centro, day.Add(15*time.Hour), "ASPIRINA")

	suite.Require().NoError(err)
	suite.Len(found, 1)
	suite.Equal("Ana", found[0].Customer().Name())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRenameCustomer_LinkedAndUnlinkedRows() {
	ctx := context.Background()
	personID := kernel.NewUUID()
	linked := suite.newOrder(centro, "Ana M.", "600111222", "Aspirina")
	suite.Require().NoError(linked.LinkPerson(&personID))
	suite.add(linked)
	unlinked := suite.newOrder(centro, "Ana", "600111222", "Ibuprofeno")
	suite.add(unlinked)
	suite.add(suite.newOrder(centro, "Luis", "611000000", "Aspirina"))
	suite.add(suite.newOrder(norte, "Ana", "600111222", "Aspirina"))

	renamed, err := suite.repository.RenameCustomer(ctx, centro, personID, "Ana", "Ana García")

	suite.Require().NoError(err)
	suite.Equal(int64(2), renamed)

	got, err := suite.repository.Get(ctx, centro, linked.ID())
	suite.Require().NoError(err)
	suite.Equal("Ana García", got.Customer().Name())
	suite.Equal(personID, *got.PersonID())

	got, err = suite.repository.Get(ctx, centro, unlinked.ID())
	suite.Require().NoError(err)
	suite.Equal("Ana García", got.Customer().Name())
	suite.Nil(got.PersonID(), "a name match does not link the order")

	other, err := suite.repository.ListAll(ctx, norte)
	suite.Require().NoError(err)
	suite.Equal("Ana", other[0].Customer().Name())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRenameCustomer_SameNameOtherPersonKeepsOwnership() {
	ctx := context.Background()
	first, second := kernel.NewUUID(), kernel.NewUUID()
	mine := suite.newOrder(centro, "Ana", "600111111", "Aspirina")
	suite.Require().NoError(mine.LinkPerson(&first))
	suite.add(mine)
	theirs := suite.newOrder(centro, "Ana", "600222222", "Aspirina")
	suite.Require().NoError(theirs.LinkPerson(&second))
	suite.add(theirs)
	legacy := suite.newOrder(centro, "Ana", "600222222", "Ibuprofeno")
	suite.add(legacy)

	_, err := suite.repository.RenameCustomer(ctx, centro, first, "Ana", "Ana López")
	suite.Require().NoError(err)

	got, err := suite.repository.Get(ctx, centro, theirs.ID())
	suite.Require().NoError(err)
	suite.Equal("Ana", got.Customer().Name())
	suite.Equal(second, *got.PersonID())

	got, err = suite.repository.Get(ctx, centro, legacy.ID())
	suite.Require().NoError(err)
	suite.Nil(got.PersonID())
	suite.Equal("600222222", got.Customer().Phone())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestChangeCustomerPhone() {
	ctx := context.Background()
	personID := kernel.NewUUID()
	matching := suite.newOrder(centro, "Ana", "600111222", "Aspirina")
	suite.add(matching)
	suite.add(suite.newOrder(centro, "Ana", "699999999", "Aspirina"))

	changed, err := suite.repository.ChangeCustomerPhone(ctx, centro, personID, "600111222", "611222333")

	suite.Require().NoError(err)
	suite.Equal(int64(1), changed)
	got, err := suite.repository.Get(ctx, centro, matching.ID())
	suite.Require().NoError(err)
	suite.Equal("611222333", got.Customer().Phone())
	suite.Equal(personID, *got.PersonID(), "a phone match links the order")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountReferencing() {
	ctx := context.Background()
	personID := kernel.NewUUID()
	linked := suite.newOrder(centro, "Otro nombre", "", "Aspirina")
	suite.Require().NoError(linked.LinkPerson(&personID))
	suite.add(linked)
	suite.add(suite.newOrder(centro, "Ana", "", "Aspirina"))
	suite.add(suite.newOrder(centro, "Ana Otra", "600111222", "Aspirina"))
	suite.add(suite.newOrder(centro, "Luis", "611000000", "Aspirina"))

	count, err := suite.repository.CountReferencing(ctx, centro, personID, "Ana", "600111222")

	suite.Require().NoError(err)
	suite.Equal(int64(3), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRenameCatalogReference() {
	ctx := context.Background()
	suite.add(suite.newOrder(centro, "Ana", "", "Aspirina"))
	suite.add(suite.newOrder(centro, "Luis", "", "aspirina"))
	suite.add(suite.newOrder(centro, "Eva", "", "Ibuprofeno"))

	products, err := suite.repository.RenameCatalogReference(ctx, centro, catalog.Product, "Aspirina", "Aspirina 500")
	suite.Require().NoError(err)
	suite.Equal(int64(2), products)

	labs, err := suite.repository.RenameCatalogReference(ctx, centro, catalog.Laboratory, "Cinfa", "Cinfa SA")
	suite.Require().NoError(err)
	suite.Equal(int64(3), labs)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListAll_NewestDateFirst() {
	ctx := context.Background()
	older := suite.newOrder(centro, "Ana", "", "Aspirina")
	suite.add(older)
	newer, err := order.RestoreOrder(kernel.NewUUID(), centro,
		order.Details{Date: day.AddDate(0, 0, 3), Product: "Ibuprofeno"},
		older.Customer(), nil, order.Stages{}, false, day, day)
	suite.Require().NoError(err)
	suite.add(newer)

	all, err := suite.repository.ListAll(ctx, centro)

	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal(newer.ID(), all[0].ID())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
