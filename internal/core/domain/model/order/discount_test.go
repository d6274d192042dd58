package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscount(t *testing.T) {
	t.Run("should create discount with valid params", func(t *testing.T) {
		discount, err := order.NewDiscount(kernel.NewUUID(),
			order.DiscountCategoryBasket, money(t, "5.00"), 1, "summer promo")

		require.NoError(t, err)
		assert.Equal(t, order.DiscountCategoryBasket, discount.Category())
		assert.True(t, discount.Amount().IsEqual(money(t, "5.00")))
		assert.Equal(t, 1, discount.Frequency())
		assert.Equal(t, "summer promo", discount.Message())
		assert.NoError(t, discount.Validate())
	})

	t.Run("should reject an unknown category", func(t *testing.T) {
		_, err := order.NewDiscount(kernel.NewUUID(),
			order.DiscountCategory("Mystery"), money(t, "5.00"), 1, "")
		assert.Error(t, err)
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		_, err := order.NewDiscount(kernel.NewUUID(),
			order.DiscountCategoryBasket, money(t, "-5.00"), 1, "")
		assert.Error(t, err)
	})

	t.Run("should fail validation for zero value discount", func(t *testing.T) {
		var discount order.Discount
		assert.ErrorIs(t, discount.Validate(), order.ErrDiscountIsNotConstructed)
	})
}

func TestDiscountSnapshots(t *testing.T) {
	t.Run("should snapshot the offer name on attach", func(t *testing.T) {
		discount, err := order.NewDiscount(kernel.NewUUID(),
			order.DiscountCategoryBasket, money(t, "5.00"), 1, "")
		require.NoError(t, err)

		require.NoError(t, discount.AttachOffer(kernel.NewUUID(), "Summer sale"))

		assert.Equal(t, "Summer sale", discount.OfferName())
		assert.Equal(t, "Summer sale", discount.Description())
	})

	t.Run("should keep an existing offer name", func(t *testing.T) {
		discount, err := order.NewDiscount(kernel.NewUUID(),
			order.DiscountCategoryBasket, money(t, "5.00"), 1, "")
		require.NoError(t, err)
		require.NoError(t, discount.AttachOffer(kernel.NewUUID(), "Summer sale"))

		require.NoError(t, discount.AttachOffer(kernel.NewUUID(), "Renamed sale"))

		assert.Equal(t, "Summer sale", discount.OfferName())
	})

	t.Run("should snapshot the voucher code and prefer it in the description", func(t *testing.T) {
		discount, err := order.NewDiscount(kernel.NewUUID(),
			order.DiscountCategoryBasket, money(t, "5.00"), 1, "")
		require.NoError(t, err)
		require.NoError(t, discount.AttachOffer(kernel.NewUUID(), "Summer sale"))

		require.NoError(t, discount.AttachVoucher(kernel.NewUUID(), "SUMMER10"))

		assert.Equal(t, "SUMMER10", discount.VoucherCode())
		assert.Equal(t, "SUMMER10", discount.Description())
	})

	t.Run("should keep the snapshots after restore without the source records", func(t *testing.T) {
		restored, err := order.RestoreDiscount(order.RestoreDiscountParams{
			ID:          kernel.NewUUID(),
			Category:    order.DiscountCategoryBasket,
			Amount:      money(t, "5.00"),
			Frequency:   2,
			OfferName:   "Summer sale",
			VoucherCode: "SUMMER10",
		})

		require.NoError(t, err)
		assert.Nil(t, restored.OfferID())
		assert.Nil(t, restored.VoucherID())
		assert.Equal(t, "Summer sale", restored.OfferName())
		assert.Equal(t, "SUMMER10", restored.Description())
	})
}
