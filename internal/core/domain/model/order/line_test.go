package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	t.Run("should create line with valid params", func(t *testing.T) {
		productID := kernel.NewUUID()
		line, err := order.NewLine(kernel.NewUUID(), &productID, "Mug", "4006381333931",
			3, testLinePrices(t, "30.00", "30.00"), "Pending")

		require.NoError(t, err)
		assert.Equal(t, "Mug", line.Title())
		assert.Equal(t, "4006381333931", line.UPC())
		assert.Equal(t, 3, line.Quantity())
		assert.False(t, line.IsProductDeleted())
		assert.NoError(t, line.Validate())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), nil, "Mug", "",
			0, testLinePrices(t, "10.00", "10.00"), "Pending")
		assert.Error(t, err)
	})

	t.Run("should reject empty title", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), nil, "", "",
			1, testLinePrices(t, "10.00", "10.00"), "Pending")
		assert.Error(t, err)
	})

	t.Run("should survive product deletion through the snapshot", func(t *testing.T) {
		line, err := order.NewLine(kernel.NewUUID(), nil, "Deleted thing", "",
			1, testLinePrices(t, "10.00", "10.00"), "Pending")

		require.NoError(t, err)
		assert.True(t, line.IsProductDeleted())
		assert.Nil(t, line.ProductID())
		assert.Equal(t, "Deleted thing", line.Title())
	})

	t.Run("should fail validation for zero value line", func(t *testing.T) {
		var line order.Line
		assert.ErrorIs(t, line.Validate(), order.ErrLineIsNotConstructed)
	})
}

func TestNewLinePrices(t *testing.T) {
	t.Run("should reject prices in mixed currencies", func(t *testing.T) {
		usd := money(t, "10.00")
		eur, err := kernel.MoneyFromString("10.00", "EUR")
		require.NoError(t, err)

		_, err = order.NewLinePrices(order.LinePricesParams{
			UnitInclTax: usd, UnitExclTax: usd,
			UnitBeforeDiscountsInclTax: usd, UnitBeforeDiscountsExclTax: usd,
			LineInclTax: usd, LineExclTax: usd,
			LineBeforeDiscountsInclTax: eur, LineBeforeDiscountsExclTax: usd,
		})

		assert.Error(t, err)
	})

	t.Run("should reject a negative discount", func(t *testing.T) {
		_, err := order.NewLinePrices(order.LinePricesParams{
			UnitInclTax: money(t, "12.00"), UnitExclTax: money(t, "12.00"),
			UnitBeforeDiscountsInclTax: money(t, "10.00"), UnitBeforeDiscountsExclTax: money(t, "12.00"),
			LineInclTax: money(t, "12.00"), LineExclTax: money(t, "12.00"),
			LineBeforeDiscountsInclTax: money(t, "12.00"), LineBeforeDiscountsExclTax: money(t, "12.00"),
		})

		assert.Error(t, err)
	})
}

func TestLineDerivedAmounts(t *testing.T) {
	t.Run("should expose discount and tax portions", func(t *testing.T) {
		prices, err := order.NewLinePrices(order.LinePricesParams{
			UnitInclTax:                money(t, "6.00"),
			UnitExclTax:                money(t, "5.00"),
			UnitBeforeDiscountsInclTax: money(t, "7.50"),
			UnitBeforeDiscountsExclTax: money(t, "6.25"),
			LineInclTax:                money(t, "12.00"),
			LineExclTax:                money(t, "10.00"),
			LineBeforeDiscountsInclTax: money(t, "15.00"),
			LineBeforeDiscountsExclTax: money(t, "12.50"),
		})
		require.NoError(t, err)
		line, err := order.NewLine(kernel.NewUUID(), nil, "Mug", "", 2, prices, "Pending")
		require.NoError(t, err)

		assert.True(t, line.DiscountInclTax().IsEqual(money(t, "3.00")))
		assert.True(t, line.DiscountExclTax().IsEqual(money(t, "2.50")))
		assert.True(t, line.LinePriceTax().IsEqual(money(t, "2.00")))
		assert.True(t, line.UnitPriceTax().IsEqual(money(t, "1.00")))
	})
}

func TestLineDescription(t *testing.T) {
	t.Run("should be the title without attributes", func(t *testing.T) {
		line := testLine(t, "Mug", 1)
		assert.Equal(t, "Mug", line.Description())
	})

	t.Run("should render attributes after the title", func(t *testing.T) {
		line := testLine(t, "Mug", 1)
		color, err := order.NewAttribute(nil, "Color", "Red")
		require.NoError(t, err)
		size, err := order.NewAttribute(nil, "Size", "L")
		require.NoError(t, err)
		line.AddAttribute(color)
		line.AddAttribute(size)

		assert.Equal(t, "Mug (Color = 'Red', Size = 'L')", line.Description())
	})
}

func TestLineShippingStatus(t *testing.T) {
	t.Run("should be empty without events", func(t *testing.T) {
		line := testLine(t, "Mug", 4)
		testOrder(t, line)

		assert.Equal(t, "", line.ShippingStatus())
	})

	t.Run("should name a single complete event type alone", func(t *testing.T) {
		line := testLine(t, "Mug", 4)
		o := testOrder(t, line)
		_, err := o.RecordShippingEvent(eventType(t, "Shipped"),
			[]order.LineQuantity{{LineID: line.ID()}}, "", time.Time{})
		require.NoError(t, err)

		assert.Equal(t, "Shipped", line.ShippingStatus())
	})

	t.Run("should render a partial event type with its progress", func(t *testing.T) {
		line := testLine(t, "Mug", 4)
		o := testOrder(t, line)
		_, err := o.RecordShippingEvent(eventType(t, "Shipped"),
			[]order.LineQuantity{{LineID: line.ID(), Quantity: 1}}, "", time.Time{})
		require.NoError(t, err)

		assert.Equal(t, "Shipped (1/4 items)", line.ShippingStatus())
	})

	t.Run("should list the complete base before later partial progress", func(t *testing.T) {
		line := testLine(t, "Mug", 4)
		o := testOrder(t, line)
		_, err := o.RecordShippingEvent(eventType(t, "Shipped"),
			[]order.LineQuantity{{LineID: line.ID()}}, "", time.Time{})
		require.NoError(t, err)
		_, err = o.RecordShippingEvent(eventType(t, "Returned"),
			[]order.LineQuantity{{LineID: line.ID(), Quantity: 1}}, "", time.Time{})
		require.NoError(t, err)

		assert.Equal(t, "Shipped, Returned (1/4 items)", line.ShippingStatus())
	})

	t.Run("should collapse to the latest complete event type", func(t *testing.T) {
		line := testLine(t, "Mug", 2)
		o := testOrder(t, line)
		_, err := o.RecordShippingEvent(eventType(t, "Shipped"),
			[]order.LineQuantity{{LineID: line.ID()}}, "", time.Time{})
		require.NoError(t, err)
		_, err = o.RecordShippingEvent(eventType(t, "Returned"),
			[]order.LineQuantity{{LineID: line.ID()}}, "", time.Time{})
		require.NoError(t, err)

		assert.Equal(t, "Returned", line.ShippingStatus())
	})
}

func TestLineShippingEventBreakdown(t *testing.T) {
	t.Run("should accumulate quantities per event type in first-occurrence order", func(t *testing.T) {
		line := testLine(t, "Mug", 4)
		o := testOrder(t, line)
		_, err := o.RecordShippingEvent(eventType(t, "Shipped"),
			[]order.LineQuantity{{LineID: line.ID(), Quantity: 1}}, "", time.Time{})
		require.NoError(t, err)
		_, err = o.RecordShippingEvent(eventType(t, "Returned"),
			[]order.LineQuantity{{LineID: line.ID(), Quantity: 1}}, "", time.Time{})
		require.NoError(t, err)
		_, err = o.RecordShippingEvent(eventType(t, "Shipped"),
			[]order.LineQuantity{{LineID: line.ID(), Quantity: 2}}, "", time.Time{})
		require.NoError(t, err)

		breakdown := line.ShippingEventBreakdown()

		require.Len(t, breakdown, 2)
		assert.Equal(t, "Shipped", breakdown[0].EventType.Name())
		assert.Equal(t, 3, breakdown[0].Quantity)
		assert.Equal(t, "Returned", breakdown[1].EventType.Name())
		assert.Equal(t, 1, breakdown[1].Quantity)
	})
}

func TestLineEventPermissions(t *testing.T) {
	t.Run("should permit events up to the line quantity", func(t *testing.T) {
		line := testLine(t, "Mug", 3)
		o := testOrder(t, line)
		shipped := eventType(t, "Shipped")
		_, err := o.RecordShippingEvent(shipped,
			[]order.LineQuantity{{LineID: line.ID(), Quantity: 2}}, "", time.Time{})
		require.NoError(t, err)

		assert.True(t, line.IsShippingEventPermitted(shipped, 1))
		assert.False(t, line.IsShippingEventPermitted(shipped, 2))
	})

	t.Run("should report occurrence against an explicit target quantity", func(t *testing.T) {
		line := testLine(t, "Mug", 3)
		o := testOrder(t, line)
		shipped := eventType(t, "Shipped")
		_, err := o.RecordShippingEvent(shipped,
			[]order.LineQuantity{{LineID: line.ID(), Quantity: 2}}, "", time.Time{})
		require.NoError(t, err)

		assert.True(t, line.HasShippingEventOccurred(shipped, 2))
		assert.False(t, line.HasShippingEventOccurred(shipped, 0))
	})
}
