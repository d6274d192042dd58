package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Builds the aggregate from the priced snapshot, records discounts with their
// offer/voucher name snapshots, and persists it in the initial status.
type PlaceOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	pipelines     order.Pipelines
	initialStatus order.Status
	offers        ports.OfferLookup
	vouchers      ports.VoucherLookup
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence, the configured
// status pipelines and the lookups used to snapshot discount sources.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pipelines order.Pipelines,
	initialStatus order.Status,
	offers ports.OfferLookup,
	vouchers ports.VoucherLookup,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:    uowFactory,
		pipelines:     pipelines,
		initialStatus: initialStatus,
		offers:        offers,
		vouchers:      vouchers,
	}
}

// Handle processes the order placement command.
// Uses a transaction to ensure the order and its discounts are persisted
// atomically or rolled back on error.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:                cmd.OrderID(),
		Number:            cmd.Number(),
		UserID:            cmd.UserID(),
		GuestEmail:        cmd.GuestEmail(),
		BillingAddressID:  cmd.BillingAddressID(),
		ShippingAddressID: cmd.ShippingAddressID(),
		ShippingMethod:    cmd.ShippingMethod(),
		ShippingCode:      cmd.ShippingCode(),
		Totals:            cmd.Totals(),
		InitialStatus:     h.initialStatus,
		DatePlaced:        cmd.DatePlaced(),
		Pipelines:         h.pipelines,
		Lines:             cmd.Lines(),
	})
	if err != nil {
		return err
	}

	for _, d := range cmd.Discounts() {
		if err = h.recordDiscount(ctx, aggregate, d); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// recordDiscount creates one discount record, snapshotting the offer name and
// voucher code while their source records still exist.
func (h *PlaceOrderCommandHandler) recordDiscount(
	ctx context.Context, aggregate *order.Order, d PlaceOrderDiscount,
) error {
	discount, err := order.NewDiscount(d.DiscountID, d.Category, d.Amount, d.Frequency, d.Message)
	if err != nil {
		return err
	}

	if d.OfferID != nil {
		name, _, err := h.offers.OfferName(ctx, *d.OfferID)
		if err != nil {
			return err
		}
		if err = discount.AttachOffer(*d.OfferID, name); err != nil {
			return err
		}
	}

	if d.VoucherID != nil {
		code, _, err := h.vouchers.VoucherCode(ctx, *d.VoucherID)
		if err != nil {
			return err
		}
		if err = discount.AttachVoucher(*d.VoucherID, code); err != nil {
			return err
		}
	}

	return aggregate.AddDiscount(discount)
}
