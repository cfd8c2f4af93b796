package cmd

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	ordershttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/in/http/auth"
	"orders/internal/adapters/observability"
	"orders/internal/adapters/out/kafka"
	"orders/internal/adapters/out/memory"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/outbox"
	"orders/internal/adapters/out/postgres/userrepo"
	"orders/internal/core/application/usecases"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/jobs"

	"gorm.io/gorm"
)

const instrumentationName = "orders"

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	uowFactory  ports.UnitOfWorkFactory
	reader      queries.OrderReader
	users       ports.UserDirectory
	guard       services.AuthorizationGuard
	instruments *observability.Instruments
	logger      *slog.Logger

	closers []func() error
}

// NewCompositionRoot wires the PostgreSQL adapters when gormDB is set and the
// in-memory ones otherwise.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	instruments *observability.Instruments,
	logger *slog.Logger,
) *CompositionRoot {
	root := &CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		guard:       services.NewAuthorizationGuard(),
		instruments: instruments,
		logger:      logger,
	}

	if gormDB != nil {
		factory := postgres.NewGormUnitOfWorkFactory(gormDB)
		root.uowFactory = factory
		root.reader = factory.Create().OrderRepository()
		root.users = userrepo.NewGormUserDirectory(gormDB)
		return root
	}

	store := memory.NewOrderStore()
	root.uowFactory = memory.NewUnitOfWorkFactory(store)
	root.reader = memory.NewOrderRepository(store)
	root.users = memory.NewUserDirectory()
	return root
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) clock() commands.Clock {
	return func() time.Time { return time.Now().UTC() }
}

func decorate[C any, R any](c *CompositionRoot, operation string, inner usecases.Handler[C, R]) usecases.Handler[C, R] {
	return observability.Decorate(operation, inner,
		observability.WithLogger(c.logger.With("component", "usecases")),
		observability.WithTracer(c.instruments.Tracer(instrumentationName)),
		observability.WithMeter(c.instruments.Meter(instrumentationName)),
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() usecases.Handler[commands.CreateOrderCommand, *order.Order] {
	return decorate[commands.CreateOrderCommand, *order.Order](c, "orders.create", commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock()))
}

func (c *CompositionRoot) CreateMarkOrderPaidCommandHandler() usecases.Handler[commands.MarkOrderPaidCommand, *order.Order] {
	return decorate[commands.MarkOrderPaidCommand, *order.Order](c, "orders.pay", commands.NewMarkOrderPaidCommandHandler(c.orderUoWFactory(), c.clock()))
}

func (c *CompositionRoot) CreateMarkOrderDeliveredCommandHandler() usecases.Handler[commands.MarkOrderDeliveredCommand, *order.Order] {
	return decorate[commands.MarkOrderDeliveredCommand, *order.Order](c, "orders.deliver", commands.NewMarkOrderDeliveredCommandHandler(c.orderUoWFactory(), c.clock()))
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() usecases.Handler[commands.CancelOrderCommand, *order.Order] {
	return decorate[commands.CancelOrderCommand, *order.Order](c, "orders.cancel", commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.guard, c.clock()))
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() usecases.Handler[queries.GetOrderQuery, *order.Order] {
	return decorate[queries.GetOrderQuery, *order.Order](c, "orders.get", queries.NewGetOrderQueryHandler(c.reader))
}

func (c *CompositionRoot) CreateListMyOrdersQueryHandler() usecases.Handler[queries.ListMyOrdersQuery, []*order.Order] {
	return decorate[queries.ListMyOrdersQuery, []*order.Order](c, "orders.list_mine", queries.NewListMyOrdersQueryHandler(c.reader))
}

func (c *CompositionRoot) CreateListAllOrdersQueryHandler() usecases.Handler[queries.ListAllOrdersQuery, []*order.Order] {
	return decorate[queries.ListAllOrdersQuery, []*order.Order](c, "orders.list_all", queries.NewListAllOrdersQueryHandler(c.reader, c.guard))
}

func (c *CompositionRoot) CreateHTTPServer() *ordershttp.Server {
	return ordershttp.NewServer(ordershttp.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		MarkOrderPaid:      c.CreateMarkOrderPaidCommandHandler(),
		MarkOrderDelivered: c.CreateMarkOrderDeliveredCommandHandler(),
		CancelOrder:        c.CreateCancelOrderCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListMyOrders:       c.CreateListMyOrdersQueryHandler(),
		ListAllOrders:      c.CreateListAllOrdersQueryHandler(),
	}, c.guard, c.users, c.logger)
}

func (c *CompositionRoot) CreateTokenService() *auth.TokenService {
	return auth.NewTokenService(c.configs.JWTSecret, c.configs.TokenTTL)
}

// CreateJobManager returns nil when there is no outbox to relay: in-memory mode or
// no broker configured.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if !c.configs.RelaysEvents() {
		return nil
	}

	producer := kafka.NewProducer(strings.Split(c.configs.KafkaHost, ","), c.configs.KafkaOrderEventsTopic)
	c.closers = append(c.closers, producer.Close)

	relay := outbox.NewRelay(c.gormDB, producer,
		outbox.WithBatchSize(c.configs.OutboxBatchSize),
		outbox.WithLogger(c.logger),
	)
	return jobs.NewJobManager(relay, relay, c.configs.OutboxRelaySchedule, c.instruments.Meter(instrumentationName), c.logger)
}

// Close releases the broker connection and the database pool.
func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
