package cmd

import (
	"context"
	"fmt"

	api "encargos/internal/adapters/in/http"
	"encargos/internal/adapters/in/http/openapi"
	"encargos/internal/adapters/out/notify"
	"encargos/internal/adapters/out/sqlstore"
	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/application/usecases/queries"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/metrics"
	"encargos/internal/pkg/retry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *sqlstore.GormUnitOfWorkFactory
	logger     *zap.Logger
	retrier    *retry.Retrier
	policy     order.CascadePolicy
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	email      *notify.EmailSender
	whatsapp   notify.WhatsAppLinker
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	policy, err := cfg.CascadePolicy()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	retrier := retry.New(cfg.Retry, logger)
	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: sqlstore.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		retrier:    retrier,
		policy:     policy,
		registry:   registry,
		metrics:    metrics.New(registry),
		email:      notify.NewEmailSender(cfg.SMTP, retrier, logger),
		whatsapp:   notify.NewWhatsAppLinker(cfg.WhatsApp),
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoW() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.retrier)
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	return commands.NewUpdateOrderDetailsCommandHandler(c.uow(), c.retrier)
}

func (c *CompositionRoot) CreateUpdateOrderContactCommandHandler() commands.UpdateOrderContactCommandHandler {
	return commands.NewUpdateOrderContactCommandHandler(c.uow(), c.metrics, c.retrier)
}

func (c *CompositionRoot) CreateChangeOrderStageCommandHandler() commands.ChangeOrderStageCommandHandler {
	return commands.NewChangeOrderStageCommandHandler(c.uow(), c.email, c.whatsapp, c.policy, c.metrics, c.retrier)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoW(), c.retrier)
}

func (c *CompositionRoot) CreateCreatePersonCommandHandler() commands.CreatePersonCommandHandler {
	return commands.NewCreatePersonCommandHandler(c.uow(), c.retrier)
}

func (c *CompositionRoot) CreateUpdatePersonCommandHandler() commands.UpdatePersonCommandHandler {
	return commands.NewUpdatePersonCommandHandler(c.uow(), c.metrics, c.retrier)
}

func (c *CompositionRoot) CreateDeletePersonCommandHandler() commands.DeletePersonCommandHandler {
	return commands.NewDeletePersonCommandHandler(c.uow(), c.retrier)
}

func (c *CompositionRoot) CreateCreateCatalogItemCommandHandler() commands.CreateCatalogItemCommandHandler {
	return commands.NewCreateCatalogItemCommandHandler(c.catalogUoW(), c.retrier)
}

func (c *CompositionRoot) CreateRenameCatalogItemCommandHandler() commands.RenameCatalogItemCommandHandler {
	return commands.NewRenameCatalogItemCommandHandler(c.catalogUoW(), c.metrics, c.retrier)
}

func (c *CompositionRoot) CreateDeleteCatalogItemCommandHandler() commands.DeleteCatalogItemCommandHandler {
	return commands.NewDeleteCatalogItemCommandHandler(c.catalogUoW(), c.retrier)
}

func (c *CompositionRoot) CreateRepairConsistencyCommandHandler() commands.RepairConsistencyCommandHandler {
	return commands.NewRepairConsistencyCommandHandler(c.uow(), c.metrics, c.retrier)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPersonsQueryHandler() queries.ListPersonsQueryHandler {
	return queries.NewListPersonsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFindPersonByContactQueryHandler() queries.FindPersonByContactQueryHandler {
	return queries.NewFindPersonByContactQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateListCatalogItemsQueryHandler() queries.ListCatalogItemsQueryHandler {
	return queries.NewListCatalogItemsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckConsistencyQueryHandler() queries.CheckConsistencyQueryHandler {
	return queries.NewCheckConsistencyQueryHandler(c.uowFactory, c.metrics)
}

func (c *CompositionRoot) CreateDashboardQueryHandler() queries.DashboardQueryHandler {
	return queries.NewDashboardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) Handlers() api.Handlers {
	return api.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		UpdateOrderDetails: c.CreateUpdateOrderDetailsCommandHandler(),
		UpdateOrderContact: c.CreateUpdateOrderContactCommandHandler(),
		ChangeOrderStage:   c.CreateChangeOrderStageCommandHandler(),
		DeleteOrder:        c.CreateDeleteOrderCommandHandler(),

		CreatePerson: c.CreateCreatePersonCommandHandler(),
		UpdatePerson: c.CreateUpdatePersonCommandHandler(),
		DeletePerson: c.CreateDeletePersonCommandHandler(),

		CreateCatalogItem: c.CreateCreateCatalogItemCommandHandler(),
		RenameCatalogItem: c.CreateRenameCatalogItemCommandHandler(),
		DeleteCatalogItem: c.CreateDeleteCatalogItemCommandHandler(),

		RepairConsistency: c.CreateRepairConsistencyCommandHandler(),

		ListOrders:          c.CreateListOrdersQueryHandler(),
		SearchOrders:        c.CreateSearchOrdersQueryHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListPersons:         c.CreateListPersonsQueryHandler(),
		FindPersonByContact: c.CreateFindPersonByContactQueryHandler(),
		ListCatalogItems:    c.CreateListCatalogItemsQueryHandler(),
		CheckConsistency:    c.CreateCheckConsistencyQueryHandler(),
		Dashboard:           c.CreateDashboardQueryHandler(),
	}
}

func (c *CompositionRoot) CreateServer(ctx context.Context) (*api.Server, error) {
	doc, err := openapi.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	return api.NewServer(c.cfg.HTTP, api.Deps{
		Handlers: c.Handlers(),
		Accounts: c.cfg.Accounts,
		Doc:      doc,
		Metrics:  c.metrics,
		Gatherer: c.registry,
		Health:   c.ping,
		Logger:   c.logger,
	})
}

func (c *CompositionRoot) ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}
