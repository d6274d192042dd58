package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.LinePriceDTO{},
		&orderrepo.LineAttributeDTO{},
		&orderrepo.ShippingEventDTO{},
		&orderrepo.ShippingEventQuantityDTO{},
		&orderrepo.PaymentEventDTO{},
		&orderrepo.PaymentEventQuantityDTO{},
		&orderrepo.DiscountDTO{},
		&orderrepo.NoteDTO{},
		&orderrepo.StatusChangeDTO{},
		&orderrepo.CommunicationEventDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, suitePipelines(suite.T()))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE
		orders, order_lines, order_line_prices, order_line_attributes,
		shipping_events, shipping_event_quantities,
		payment_events, payment_event_quantities,
		order_discounts, order_notes, order_status_changes,
		order_communication_events`).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommittedChangesAreVisible() {
	ctx := context.Background()
	uow := suite.factory.Create()
	testOrder := suiteTestOrder(suite.T(), "100042")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	retrieved, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())

	suite.Require().NoError(uow.Commit(ctx))

	// Visible outside the transaction after commit.
	outside := suite.factory.Create()
	retrieved, err = outside.OrderRepository().GetByNumber(ctx, "100042")
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	testOrder := suiteTestOrder(suite.T(), "100042")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	outside := suite.factory.Create()
	_, err := outside.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Rolled back order should not exist")

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func suitePipelines(t *testing.T) order.Pipelines {
	t.Helper()

	orderPipeline, err := order.NewPipeline(map[order.Status][]order.Status{
		"Pending":   {"Shipped", "Cancelled"},
		"Shipped":   {},
		"Cancelled": {},
	})
	if err != nil {
		t.Fatal(err)
	}
	linePipeline, err := order.NewPipeline(map[order.Status][]order.Status{
		"Pending":   {"Shipped", "Cancelled"},
		"Shipped":   {},
		"Cancelled": {},
	})
	if err != nil {
		t.Fatal(err)
	}

	pipelines, err := order.NewPipelines(orderPipeline, nil, linePipeline)
	if err != nil {
		t.Fatal(err)
	}
	return pipelines
}

func suiteTestOrder(t *testing.T, number string) *order.Order {
	t.Helper()

	money := func(amount string) kernel.Money {
		m, err := kernel.MoneyFromString(amount, "USD")
		if err != nil {
			t.Fatal(err)
		}
		return m
	}

	prices, err := order.NewLinePrices(order.LinePricesParams{
		UnitInclTax:                money("50.00"),
		UnitExclTax:                money("50.00"),
		UnitBeforeDiscountsInclTax: money("50.00"),
		UnitBeforeDiscountsExclTax: money("50.00"),
		LineInclTax:                money("100.00"),
		LineExclTax:                money("100.00"),
		LineBeforeDiscountsInclTax: money("100.00"),
		LineBeforeDiscountsExclTax: money("100.00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	line, err := order.NewLine(kernel.NewUUID(), nil, "Teapot", "POT-001", 2, prices, "Pending")
	if err != nil {
		t.Fatal(err)
	}
	totals, err := order.NewTotals(money("110.00"), money("100.00"), money("10.00"), money("8.00"))
	if err != nil {
		t.Fatal(err)
	}

	testOrder, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		Number:        number,
		GuestEmail:    "guest@example.com",
		Totals:        totals,
		InitialStatus: "Pending",
		DatePlaced:    time.Now().UTC().Truncate(time.Millisecond),
		Pipelines:     suitePipelines(t),
		Lines:         []*order.Line{line},
	})
	if err != nil {
		t.Fatal(err)
	}
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
