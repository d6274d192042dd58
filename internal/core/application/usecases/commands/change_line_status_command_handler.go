package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/ports"
)

// ChangeLineStatusCommandHandler handles line status transitions, mirroring
// ChangeOrderStatusCommandHandler at line granularity.
type ChangeLineStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewChangeLineStatusCommandHandler creates a handler for line status transitions.
func NewChangeLineStatusCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) ChangeLineStatusCommandHandler {
	return ChangeLineStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the line status change command.
func (h *ChangeLineStatusCommandHandler) Handle(ctx context.Context, cmd ChangeLineStatusCommand) error {
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

	event, err := aggregate.SetLineStatus(cmd.LineID(), cmd.NewStatus(), time.Now().UTC())
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

	if err = h.publisher.PublishLineStatusChanged(ctx, *event); err != nil {
		slog.Error("failed to publish line status change",
			"order", event.OrderNumber, "line", event.LineID.String(),
			"new_status", string(event.NewStatus), "error", err)
	}

	return nil
}
