package cmd

import (
	"log/slog"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/catalogrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot builds use case handlers over one database pool.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
	idempotent ports.IdempotencyStore
	logger     *slog.Logger
}

// NewCompositionRoot wires the core to its adapters. idempotency may be nil.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	idempotency ports.IdempotencyStore,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     services.NewAccessPolicy(),
		publisher:  publisher,
		idempotent: idempotency,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, services.NewOrderPricer(c.policy))
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher)
}

// Queries read through a unit of work that never begins, so its
// repositories run on the pool.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository(), c.policy)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory.Create().OrderRepository(), c.policy)
}

func (c *CompositionRoot) CreateListRestaurantsQueryHandler() queries.ListRestaurantsQueryHandler {
	return queries.NewListRestaurantsQueryHandler(catalogrepo.NewGormCatalogRepository(c.gormDB), c.policy)
}

func (c *CompositionRoot) CreateGetRestaurantQueryHandler() queries.GetRestaurantQueryHandler {
	return queries.NewGetRestaurantQueryHandler(catalogrepo.NewGormCatalogRepository(c.gormDB), c.policy)
}

// CreateHTTPServer returns the REST adapter over every use case.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		PayOrder:          c.CreatePayOrderCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		ListRestaurants:   c.CreateListRestaurantsQueryHandler(),
		GetRestaurant:     c.CreateGetRestaurantQueryHandler(),
	}, c.idempotent, c.logger)
}

// CreateJobManager returns the background jobs, not yet started.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relay, err := jobs.NewOutboxRelayJob(
		c.CreateRelayOutboxCommandHandler(),
		c.config.OutboxRelaySchedule,
		c.config.OutboxBatchSize,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(relay), nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
