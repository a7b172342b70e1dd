package http

import (
	"context"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/application/usecases/queries"
	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/domain/services"
)

// The server depends on these narrow views of the use case handlers so that
// routes can be tested without a database.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, command commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderDetailsHandler interface {
		Handle(ctx context.Context, command commands.UpdateOrderDetailsCommand) (*order.Order, error)
	}
	UpdateOrderContactHandler interface {
		Handle(ctx context.Context, command commands.UpdateOrderContactCommand) (commands.UpdateOrderContactResult, error)
	}
	ChangeOrderStageHandler interface {
		Handle(ctx context.Context, command commands.ChangeOrderStageCommand) (commands.StageOutcome, error)
	}
	DeleteOrderHandler interface {
		Handle(ctx context.Context, command commands.DeleteOrderCommand) error
	}

	CreatePersonHandler interface {
		Handle(ctx context.Context, command commands.CreatePersonCommand) (*person.Person, error)
	}
	UpdatePersonHandler interface {
		Handle(ctx context.Context, command commands.UpdatePersonCommand) (commands.UpdatePersonResult, error)
	}
	DeletePersonHandler interface {
		Handle(ctx context.Context, command commands.DeletePersonCommand) error
	}

	CreateCatalogItemHandler interface {
		Handle(ctx context.Context, command commands.CreateCatalogItemCommand) (*catalog.Item, error)
	}
	RenameCatalogItemHandler interface {
		Handle(ctx context.Context, command commands.RenameCatalogItemCommand) (commands.RenameCatalogItemResult, error)
	}
	DeleteCatalogItemHandler interface {
		Handle(ctx context.Context, command commands.DeleteCatalogItemCommand) error
	}

	RepairConsistencyHandler interface {
		Handle(ctx context.Context, command commands.RepairConsistencyCommand) (commands.RepairResult, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.OrderPage, error)
	}
	SearchOrdersHandler interface {
		Handle(ctx context.Context, query queries.SearchOrdersQuery) ([]queries.OrderView, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	ListPersonsHandler interface {
		Handle(ctx context.Context, query queries.ListPersonsQuery) ([]queries.PersonView, error)
	}
	FindPersonByContactHandler interface {
		Handle(ctx context.Context, query queries.FindPersonByContactQuery) (*person.Person, error)
	}
	ListCatalogItemsHandler interface {
		Handle(ctx context.Context, query queries.ListCatalogItemsQuery) ([]queries.CatalogItemView, error)
	}
	CheckConsistencyHandler interface {
		Handle(ctx context.Context, query queries.CheckConsistencyQuery) (services.Report, error)
	}
	DashboardHandler interface {
		Handle(ctx context.Context, query queries.DashboardQuery) (queries.Dashboard, error)
	}
)

// Handlers groups every use case the API exposes.
type Handlers struct {
	CreateOrder        CreateOrderHandler
	UpdateOrderDetails UpdateOrderDetailsHandler
	UpdateOrderContact UpdateOrderContactHandler
	ChangeOrderStage   ChangeOrderStageHandler
	DeleteOrder        DeleteOrderHandler

	CreatePerson CreatePersonHandler
	UpdatePerson UpdatePersonHandler
	DeletePerson DeletePersonHandler

	CreateCatalogItem CreateCatalogItemHandler
	RenameCatalogItem RenameCatalogItemHandler
	DeleteCatalogItem DeleteCatalogItemHandler

	RepairConsistency RepairConsistencyHandler

	ListOrders          ListOrdersHandler
	SearchOrders        SearchOrdersHandler
	GetOrder            GetOrderHandler
	ListPersons         ListPersonsHandler
	FindPersonByContact FindPersonByContactHandler
	ListCatalogItems    ListCatalogItemsHandler
	CheckConsistency    CheckConsistencyHandler
	Dashboard           DashboardHandler
}
