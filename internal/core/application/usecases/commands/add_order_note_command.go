package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrAddOrderNoteCommandIsNotConstructed = errors.New(
		"AddOrderNoteCommand must be created via NewAddOrderNoteCommand constructor",
	)
	ErrNoteMessageIsRequired = errors.New("note message is required")
)

// AddOrderNoteCommand represents a request to attach a note to an order.
type AddOrderNoteCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	noteID      kernel.UUID
	noteType    order.NoteType
	message     string
	authorID    *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddOrderNoteCommand creates a command to attach a note to an order.
func NewAddOrderNoteCommand(
	orderNumber string, noteID kernel.UUID, noteType order.NoteType,
	message string, authorID *kernel.UUID,
) (AddOrderNoteCommand, error) {
	cmd := AddOrderNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setNoteID(noteID),
		cmd.setMessage(message),
	); err != nil {
		return AddOrderNoteCommand{}, err
	}

	cmd.noteType = noteType
	cmd.authorID = authorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderNoteCommandIsNotConstructed)
}

// OrderNumber returns the business number of the order.
func (c AddOrderNoteCommand) OrderNumber() string {
	return c.orderNumber
}

// NoteID returns the identifier for the new note.
func (c AddOrderNoteCommand) NoteID() kernel.UUID {
	return c.noteID
}

// NoteType returns the note classification.
func (c AddOrderNoteCommand) NoteType() order.NoteType {
	return c.noteType
}

// Message returns the note text.
func (c AddOrderNoteCommand) Message() string {
	return c.message
}

// AuthorID returns the note author, or nil for anonymous and system notes.
func (c AddOrderNoteCommand) AuthorID() *kernel.UUID {
	return c.authorID
}

func (c *AddOrderNoteCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *AddOrderNoteCommand) setNoteID(noteID kernel.UUID) error {
	if err := noteID.Validate(); err != nil {
		return err
	}

	c.noteID = noteID
	return nil
}

func (c *AddOrderNoteCommand) setMessage(message string) error {
	if message == "" {
		return ErrNoteMessageIsRequired
	}

	c.message = message
	return nil
}
