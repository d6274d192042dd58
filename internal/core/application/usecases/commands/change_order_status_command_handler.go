package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/ports"
)

// ChangeOrderStatusCommandHandler handles order status transitions.
// Loads the order under a row lock, applies the transition through the domain
// and publishes the resulting event after the transaction commits.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status change command. Setting the current status
// again commits nothing and publishes nothing. A publish failure after commit
// is logged, not returned: the state change already happened.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	event, err := aggregate.SetStatus(cmd.NewStatus(), time.Now().UTC())
	if err != nil {
		return err
	}
	if event == nil {
		return nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishOrderStatusChanged(ctx, *event); err != nil {
		slog.Error("failed to publish order status change",
			"order", event.OrderNumber, "new_status", string(event.NewStatus), "error", err)
	}

	return nil
}
