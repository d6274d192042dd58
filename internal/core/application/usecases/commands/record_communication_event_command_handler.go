package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// RecordCommunicationEventCommandHandler handles recording sent messages on
// orders.
type RecordCommunicationEventCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordCommunicationEventCommandHandler creates a handler for
// communication event records.
func NewRecordCommunicationEventCommandHandler(uowFactory OrderUoWFactory) RecordCommunicationEventCommandHandler {
	return RecordCommunicationEventCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the communication event command.
func (h *RecordCommunicationEventCommandHandler) Handle(
	ctx context.Context, cmd RecordCommunicationEventCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	event, err := order.NewCommunicationEvent(cmd.EventID(), cmd.Code(), cmd.Name(), time.Now().UTC())
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
	aggregate, err := orderRepo.GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	if err = aggregate.AddCommunicationEvent(event); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
