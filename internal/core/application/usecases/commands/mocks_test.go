package commands_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumberForUpdate(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderStatusChanged(ctx context.Context, event order.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishLineStatusChanged(ctx context.Context, event order.LineStatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error { return nil }

type MockOfferLookup struct{ mock.Mock }

func (m *MockOfferLookup) OfferName(ctx context.Context, offerID kernel.UUID) (string, bool, error) {
	args := m.Called(ctx, offerID)
	return args.String(0), args.Bool(1), args.Error(2)
}

type MockVoucherLookup struct{ mock.Mock }

func (m *MockVoucherLookup) VoucherCode(ctx context.Context, voucherID kernel.UUID) (string, bool, error) {
	args := m.Called(ctx, voucherID)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Domain fixtures shared by the handler tests.

func testPipelines(t *testing.T) order.Pipelines {
	t.Helper()

	orderPipeline, err := order.NewPipeline(map[order.Status][]order.Status{
		"Pending":         {"Being processed", "Cancelled"},
		"Being processed": {"Shipped", "Cancelled"},
		"Shipped":         {},
		"Cancelled":       {},
	})
	require.NoError(t, err)

	linePipeline, err := order.NewPipeline(map[order.Status][]order.Status{
		"Pending":   {"Shipped", "Cancelled"},
		"Shipped":   {},
		"Cancelled": {},
	})
	require.NoError(t, err)

	pipelines, err := order.NewPipelines(orderPipeline, map[order.Status]order.Status{
		"Shipped":   "Shipped",
		"Cancelled": "Cancelled",
	}, linePipeline)
	require.NoError(t, err)
	return pipelines
}

func testMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount, "USD")
	require.NoError(t, err)
	return m
}

func testTotals(t *testing.T) order.Totals {
	t.Helper()
	totals, err := order.NewTotals(
		testMoney(t, "110.00"), testMoney(t, "100.00"),
		testMoney(t, "10.00"), testMoney(t, "8.00"),
	)
	require.NoError(t, err)
	return totals
}

func testLine(t *testing.T, quantity int) *order.Line {
	t.Helper()

	price := testMoney(t, "10.00")
	prices, err := order.NewLinePrices(order.LinePricesParams{
		UnitInclTax: price, UnitExclTax: price,
		UnitBeforeDiscountsInclTax: price, UnitBeforeDiscountsExclTax: price,
		LineInclTax: price, LineExclTax: price,
		LineBeforeDiscountsInclTax: price, LineBeforeDiscountsExclTax: price,
	})
	require.NoError(t, err)

	line, err := order.NewLine(kernel.NewUUID(), nil, "Widget", "", quantity, prices, "Pending")
	require.NoError(t, err)
	return line
}

func testAggregate(t *testing.T, number string, lines ...*order.Line) *order.Order {
	t.Helper()

	if len(lines) == 0 {
		lines = []*order.Line{testLine(t, 2)}
	}
	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		Number:        number,
		Totals:        testTotals(t),
		InitialStatus: "Pending",
		DatePlaced:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Pipelines:     testPipelines(t),
		Lines:         lines,
	})
	require.NoError(t, err)
	return aggregate
}
