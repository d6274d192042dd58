package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

const testCurrency = "USD"

func money(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount, testCurrency)
	require.NoError(t, err)
	return m
}

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

func testLinePrices(t *testing.T, lineInclTax, lineBeforeDiscountsInclTax string) order.LinePrices {
	t.Helper()

	prices, err := order.NewLinePrices(order.LinePricesParams{
		UnitInclTax:                money(t, lineInclTax),
		UnitExclTax:                money(t, lineInclTax),
		UnitBeforeDiscountsInclTax: money(t, lineBeforeDiscountsInclTax),
		UnitBeforeDiscountsExclTax: money(t, lineBeforeDiscountsInclTax),
		LineInclTax:                money(t, lineInclTax),
		LineExclTax:                money(t, lineInclTax),
		LineBeforeDiscountsInclTax: money(t, lineBeforeDiscountsInclTax),
		LineBeforeDiscountsExclTax: money(t, lineBeforeDiscountsInclTax),
	})
	require.NoError(t, err)
	return prices
}

func testLine(t *testing.T, title string, quantity int) *order.Line {
	t.Helper()

	productID := kernel.NewUUID()
	line, err := order.NewLine(
		kernel.NewUUID(), &productID, title, "",
		quantity, testLinePrices(t, "10.00", "10.00"), "Pending",
	)
	require.NoError(t, err)
	return line
}

func testTotals(t *testing.T) order.Totals {
	t.Helper()

	totals, err := order.NewTotals(
		money(t, "110.00"), money(t, "100.00"),
		money(t, "10.00"), money(t, "8.00"),
	)
	require.NoError(t, err)
	return totals
}

func testOrder(t *testing.T, lines ...*order.Line) *order.Order {
	t.Helper()

	if len(lines) == 0 {
		lines = []*order.Line{testLine(t, "Widget", 2)}
	}

	o, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		Number:        "100042",
		Totals:        testTotals(t),
		InitialStatus: "Pending",
		DatePlaced:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Pipelines:     testPipelines(t),
		Lines:         lines,
	})
	require.NoError(t, err)
	return o
}

func eventType(t *testing.T, name string) order.EventType {
	t.Helper()
	et, err := order.NewEventType(name)
	require.NoError(t, err)
	return et
}
