package personrepo_test

import (
	"context"
	"testing"

	"encargos/internal/adapters/out/sqlstore/personrepo"
	"encargos/internal/adapters/out/sqlstore/sqltest"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var (
	centro = kernel.MustTenantID("centro")
	norte  = kernel.MustTenantID("norte")
)

type PersonRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *sqltest.Database
	repository *personrepo.GormPersonRepository
}

func (suite *PersonRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := sqltest.StartPostgres(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *PersonRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = personrepo.NewGormPersonRepository(suite.database.DB)
}

func (suite *PersonRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *PersonRepositoryIntegrationTestSuite) add(tenant kernel.TenantID, name, phone, email string) *person.Person {
	prefs := person.Preferences{Phone: true, Email: email != ""}
	p, err := person.NewPerson(kernel.NewUUID(), tenant, name, phone, email, prefs)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), p))
	return p
}

func (suite *PersonRepositoryIntegrationTestSuite) TestAddGetUpdate() {
	ctx := context.Background()
	p := suite.add(centro, "Ana", "600111222", "ana@example.com")

	got, err := suite.repository.Get(ctx, centro, p.ID())
	suite.Require().NoError(err)
	suite.Equal("ana@example.com", got.Email())
	suite.True(got.Preferences().Email)

	suite.Require().NoError(got.UpdateContactPreferences("", person.Preferences{}))
	suite.Require().NoError(got.Rename("Ana García"))
	suite.Require().NoError(suite.repository.Update(ctx, got))

	again, err := suite.repository.Get(ctx, centro, p.ID())
	suite.Require().NoError(err)
	suite.Equal("Ana García", again.Name())
	suite.Empty(again.Email())
	suite.False(again.Preferences().Phone)
	suite.False(again.Preferences().Email)
}

func (suite *PersonRepositoryIntegrationTestSuite) TestGet_TenantScoped() {
	p := suite.add(centro, "Ana", "600111222", "")

	_, err := suite.repository.Get(context.Background(), norte, p.ID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PersonRepositoryIntegrationTestSuite) TestList_OrderedByName() {
	suite.add(centro, "Luis", "611000000", "")
	suite.add(centro, "Ana", "600111222", "")
	suite.add(norte, "Berta", "622000000", "")

	persons, err := suite.repository.List(context.Background(), centro)

	suite.Require().NoError(err)
	suite.Require().Len(persons, 2)
	suite.Equal("Ana", persons[0].Name())
	suite.Equal("Luis", persons[1].Name())
}

func (suite *PersonRepositoryIntegrationTestSuite) TestFindByContact() {
	ctx := context.Background()
	ana := suite.add(centro, "Ana", "600111222", "")
	luis := suite.add(centro, "Luis", "611000000", "")
	suite.add(norte, "Ana", "600111222", "")

	byPhone, err := suite.repository.FindByContact(ctx, centro, "600 111 222", "")
	suite.Require().NoError(err)
	suite.Require().Len(byPhone, 1)
	suite.Equal(ana.ID(), byPhone[0].ID())

	either, err := suite.repository.FindByContact(ctx, centro, "600111222", "Luis")
	suite.Require().NoError(err)
	suite.Len(either, 2)

	byName, err := suite.repository.FindByContact(ctx, centro, "", "Luis")
	suite.Require().NoError(err)
	suite.Require().Len(byName, 1)
	suite.Equal(luis.ID(), byName[0].ID())

	none, err := suite.repository.FindByContact(ctx, centro, "", "")
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *PersonRepositoryIntegrationTestSuite) TestExistsPhoneForOther() {
	ctx := context.Background()
	ana := suite.add(centro, "Ana", "600111222", "")
	id := ana.ID()

	taken, err := suite.repository.ExistsPhoneForOther(ctx, centro, "600-111-222", nil)
	suite.Require().NoError(err)
	suite.True(taken)

	taken, err = suite.repository.ExistsPhoneForOther(ctx, centro, "600111222", &id)
	suite.Require().NoError(err)
	suite.False(taken, "own phone is not a conflict")

	taken, err = suite.repository.ExistsPhoneForOther(ctx, norte, "600111222", nil)
	suite.Require().NoError(err)
	suite.False(taken)
}

func (suite *PersonRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	p := suite.add(centro, "Ana", "600111222", "")

	suite.Require().NoError(suite.repository.Delete(ctx, centro, p.ID()))
	suite.Require().ErrorIs(suite.repository.Delete(ctx, centro, p.ID()), errs.ErrObjectNotFound)
}

func TestPersonRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PersonRepositoryIntegrationTestSuite))
}
