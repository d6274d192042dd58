package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrUpdateOrderNoteCommandIsNotConstructed = errors.New(
	"UpdateOrderNoteCommand must be created via NewUpdateOrderNoteCommand constructor",
)

// UpdateOrderNoteCommand represents a request to edit an existing order note.
// The domain only allows edits within a short window after the last update
// and never for system notes.
type UpdateOrderNoteCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	noteID      kernel.UUID
	message     string

	guard guard.ConstructorGuard
}

// NewUpdateOrderNoteCommand creates a command to edit an order note.
func NewUpdateOrderNoteCommand(orderNumber string, noteID kernel.UUID, message string) (UpdateOrderNoteCommand, error) {
	cmd := UpdateOrderNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setNoteID(noteID),
		cmd.setMessage(message),
	); err != nil {
		return UpdateOrderNoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderNoteCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderNoteCommandIsNotConstructed)
}

// OrderNumber returns the business number of the order.
func (c UpdateOrderNoteCommand) OrderNumber() string {
	return c.orderNumber
}

// NoteID returns the note to edit.
func (c UpdateOrderNoteCommand) NoteID() kernel.UUID {
	return c.noteID
}

// Message returns the replacement note text.
func (c UpdateOrderNoteCommand) Message() string {
	return c.message
}

func (c *UpdateOrderNoteCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *UpdateOrderNoteCommand) setNoteID(noteID kernel.UUID) error {
	if err := noteID.Validate(); err != nil {
		return err
	}

	c.noteID = noteID
	return nil
}

func (c *UpdateOrderNoteCommand) setMessage(message string) error {
	if message == "" {
		return ErrNoteMessageIsRequired
	}

	c.message = message
	return nil
}
