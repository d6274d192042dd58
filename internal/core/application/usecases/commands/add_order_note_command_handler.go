package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// AddOrderNoteCommandHandler handles attaching notes to orders.
type AddOrderNoteCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddOrderNoteCommandHandler creates a handler for adding order notes.
func NewAddOrderNoteCommandHandler(uowFactory OrderUoWFactory) AddOrderNoteCommandHandler {
	return AddOrderNoteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add note command.
func (h *AddOrderNoteCommandHandler) Handle(ctx context.Context, cmd AddOrderNoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	note, err := order.NewNote(cmd.NoteID(), cmd.NoteType(), cmd.Message(), cmd.AuthorID(), time.Now().UTC())
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

	if err = aggregate.AddNote(note); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
