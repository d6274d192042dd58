package cmd

import (
	"log/slog"

	"orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/catalogrepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	pipelines  order.Pipelines
	publisher  ports.EventPublisher
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	pipelines order.Pipelines,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		pipelines:  pipelines,
		publisher:  publisher,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, pipelines),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	initialOrderStatus, _ := c.config.InitialStatuses()
	catalog := catalogrepo.NewGormCatalogLookup(c.gormDB)
	return commands.NewPlaceOrderCommandHandler(
		c.orderUoWFactory(), c.pipelines, initialOrderStatus, catalog, catalog)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateChangeLineStatusCommandHandler() commands.ChangeLineStatusCommandHandler {
	return commands.NewChangeLineStatusCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRecordShippingEventCommandHandler() commands.RecordShippingEventCommandHandler {
	return commands.NewRecordShippingEventCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentEventCommandHandler() commands.RecordPaymentEventCommandHandler {
	return commands.NewRecordPaymentEventCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddOrderNoteCommandHandler() commands.AddOrderNoteCommandHandler {
	return commands.NewAddOrderNoteCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderNoteCommandHandler() commands.UpdateOrderNoteCommandHandler {
	return commands.NewUpdateOrderNoteCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordCommunicationEventCommandHandler() commands.RecordCommunicationEventCommandHandler {
	return commands.NewRecordCommunicationEventCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersPendingNotificationQueryHandler() queries.GetOrdersPendingNotificationQueryHandler {
	return queries.NewGetOrdersPendingNotificationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderVerifier() (*services.OrderVerifier, error) {
	return services.NewOrderVerifier(
		[]byte(c.config.VerificationSigningKey), c.config.VerificationLegacyKey)
}

func (c *CompositionRoot) CreateHTTPServer() (*http.Server, error) {
	verifier, err := c.CreateOrderVerifier()
	if err != nil {
		return nil, err
	}

	_, initialLineStatus := c.config.InitialStatuses()
	return http.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateChangeLineStatusCommandHandler(),
		c.CreateRecordShippingEventCommandHandler(),
		c.CreateRecordPaymentEventCommandHandler(),
		c.CreateAddOrderNoteCommandHandler(),
		c.CreateUpdateOrderNoteCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		verifier,
		initialLineStatus,
	), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetOrdersPendingNotificationQueryHandler(),
		c.CreateRecordCommunicationEventCommandHandler(),
		c.publisher,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
