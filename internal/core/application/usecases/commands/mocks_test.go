package commands_test

import (
	"context"
	"time"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var tenant = kernel.MustTenantID("centro")

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, t kernel.TenantID, id kernel.UUID) error {
	return m.Called(ctx, t, id).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, t kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, t, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context, t kernel.TenantID) ([]*order.Order, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindSameDay(
	ctx context.Context, t kernel.TenantID, date time.Time, product string,
) ([]*order.Order, error) {
	args := m.Called(ctx, t, date, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) RenameCustomer(
	ctx context.Context, t kernel.TenantID, personID kernel.UUID, oldName, newName string,
) (int64, error) {
	args := m.Called(ctx, t, personID, oldName, newName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ChangeCustomerPhone(
	ctx context.Context, t kernel.TenantID, personID kernel.UUID, oldPhone, newPhone string,
) (int64, error) {
	args := m.Called(ctx, t, personID, oldPhone, newPhone)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountReferencing(
	ctx context.Context, t kernel.TenantID, personID kernel.UUID, name, phone string,
) (int64, error) {
	args := m.Called(ctx, t, personID, name, phone)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) RenameCatalogReference(
	ctx context.Context, t kernel.TenantID, kind catalog.Kind, oldName, newName string,
) (int64, error) {
	args := m.Called(ctx, t, kind, oldName, newName)
	return args.Get(0).(int64), args.Error(1)
}

type MockPersonRepository struct{ mock.Mock }

func (m *MockPersonRepository) Add(ctx context.Context, p *person.Person) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPersonRepository) Update(ctx context.Context, p *person.Person) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPersonRepository) Delete(ctx context.Context, t kernel.TenantID, id kernel.UUID) error {
	return m.Called(ctx, t, id).Error(0)
}

func (m *MockPersonRepository) Get(ctx context.Context, t kernel.TenantID, id kernel.UUID) (*person.Person, error) {
	args := m.Called(ctx, t, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*person.Person), args.Error(1)
}

func (m *MockPersonRepository) List(ctx context.Context, t kernel.TenantID) ([]*person.Person, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*person.Person), args.Error(1)
}

func (m *MockPersonRepository) FindByContact(
	ctx context.Context, t kernel.TenantID, phone, name string,
) ([]*person.Person, error) {
	args := m.Called(ctx, t, phone, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*person.Person), args.Error(1)
}

func (m *MockPersonRepository) ExistsPhoneForOther(
	ctx context.Context, t kernel.TenantID, phone string, exclude *kernel.UUID,
) (bool, error) {
	args := m.Called(ctx, t, phone, exclude)
	return args.Bool(0), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) Add(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockCatalogRepository) Update(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockCatalogRepository) Delete(ctx context.Context, t kernel.TenantID, kind catalog.Kind, id kernel.UUID) error {
	return m.Called(ctx, t, kind, id).Error(0)
}

func (m *MockCatalogRepository) Get(
	ctx context.Context, t kernel.TenantID, kind catalog.Kind, id kernel.UUID,
) (*catalog.Item, error) {
	args := m.Called(ctx, t, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockCatalogRepository) List(ctx context.Context, t kernel.TenantID, kind catalog.Kind) ([]*catalog.Item, error) {
	args := m.Called(ctx, t, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

func (m *MockCatalogRepository) FindByName(
	ctx context.Context, t kernel.TenantID, kind catalog.Kind, name string,
) (*catalog.Item, error) {
	args := m.Called(ctx, t, kind, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

// MockUoW implements every unit of work flavour used by the handlers.
type MockUoW struct {
	mock.Mock
	orders  *MockOrderRepository
	persons *MockPersonRepository
	items   *MockCatalogRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:  new(MockOrderRepository),
		persons: new(MockPersonRepository),
		items:   new(MockCatalogRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.orders
}

func (m *MockUoW) PersonRepository() ports.PersonRepository {
	return m.persons
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	return m.items
}

// expectTx sets up Begin and Rollback, and Commit when committed is true.
func (m *MockUoW) expectTx(committed bool) {
	m.On("Begin", mock.Anything).Return(nil)
	m.On("Rollback", mock.Anything).Return(nil)
	if committed {
		m.On("Commit", mock.Anything).Return(nil).Once()
	}
}

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.persons.AssertExpectations(t)
	m.items.AssertExpectations(t)
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) Create() commands.UoW { return f.uow }

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type catalogUoWFactory struct{ uow *MockUoW }

func (f catalogUoWFactory) Create() commands.CatalogUoW { return f.uow }

// MockEmailSender is enabled unless disabled is set.
type MockEmailSender struct {
	mock.Mock
	disabled bool
}

func (m *MockEmailSender) Enabled() bool { return !m.disabled }

func (m *MockEmailSender) SendEmailNotification(ctx context.Context, o *order.Order, p *person.Person) error {
	return m.Called(ctx, o, p).Error(0)
}

type MockWhatsAppLinker struct{ mock.Mock }

func (m *MockWhatsAppLinker) WhatsAppLink(o *order.Order, p *person.Person) (string, bool) {
	args := m.Called(o, p)
	return args.String(0), args.Bool(1)
}
