package commands

import (
	"context"
	"time"
)

// UpdateOrderNoteCommandHandler handles note edits. The editable window and
// the system-note freeze are enforced by the domain.
type UpdateOrderNoteCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderNoteCommandHandler creates a handler for note edits.
func NewUpdateOrderNoteCommandHandler(uowFactory OrderUoWFactory) UpdateOrderNoteCommandHandler {
	return UpdateOrderNoteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the note edit command.
func (h *UpdateOrderNoteCommandHandler) Handle(ctx context.Context, cmd UpdateOrderNoteCommand) error {
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
	aggregate, err := orderRepo.GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	note, err := aggregate.Note(cmd.NoteID())
	if err != nil {
		return err
	}

	if err = note.Edit(cmd.Message(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
