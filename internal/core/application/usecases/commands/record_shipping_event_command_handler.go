package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// RecordShippingEventCommandHandler handles appending fulfilment events to an
// order's shipping ledger. The order is loaded under a row lock so two
// concurrent events cannot both pass quantity validation.
type RecordShippingEventCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordShippingEventCommandHandler creates a handler for shipping events.
func NewRecordShippingEventCommandHandler(uowFactory OrderUoWFactory) RecordShippingEventCommandHandler {
	return RecordShippingEventCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shipping event command.
func (h *RecordShippingEventCommandHandler) Handle(ctx context.Context, cmd RecordShippingEventCommand) error {
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

	if _, err = aggregate.RecordShippingEvent(
		eventType, cmd.LineQuantities(), cmd.Notes(), time.Now().UTC(),
	); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
