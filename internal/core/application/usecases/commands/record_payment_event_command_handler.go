package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// RecordPaymentEventCommandHandler handles appending payment events to an
// order's payment ledger, with the same locking discipline as shipping
// events.
type RecordPaymentEventCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordPaymentEventCommandHandler creates a handler for payment events.
func NewRecordPaymentEventCommandHandler(uowFactory OrderUoWFactory) RecordPaymentEventCommandHandler {
	return RecordPaymentEventCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment event command.
func (h *RecordPaymentEventCommandHandler) Handle(ctx context.Context, cmd RecordPaymentEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	eventType, err := order.NewEventType(cmd.EventTypeName())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByNumberForUpdate(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	if _, err = aggregate.RecordPaymentEvent(
		eventType, cmd.Amount(), cmd.Reference(),
		cmd.LineQuantities(), cmd.ShippingEventID(), time.Now().UTC(),
	); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
