package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrChangeLineStatusCommandIsNotConstructed = errors.New(
	"ChangeLineStatusCommand must be created via NewChangeLineStatusCommand constructor",
)

// ChangeLineStatusCommand represents a request to move a single order line to
// a new status along the line pipeline.
type ChangeLineStatusCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	lineID      kernel.UUID
	newStatus   order.Status

	guard guard.ConstructorGuard
}

// NewChangeLineStatusCommand creates a command to change a line's status.
func NewChangeLineStatusCommand(
	orderNumber string, lineID kernel.UUID, newStatus order.Status,
) (ChangeLineStatusCommand, error) {
	cmd := ChangeLineStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setLineID(lineID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return ChangeLineStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeLineStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeLineStatusCommandIsNotConstructed)
}

// OrderNumber returns the business number of the order.
func (c ChangeLineStatusCommand) OrderNumber() string {
	return c.orderNumber
}

// LineID returns the line to change.
func (c ChangeLineStatusCommand) LineID() kernel.UUID {
	return c.lineID
}

// NewStatus returns the requested status.
func (c ChangeLineStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

func (c *ChangeLineStatusCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *ChangeLineStatusCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *ChangeLineStatusCommand) setNewStatus(newStatus order.Status) error {
	if newStatus == "" {
		return ErrNewStatusIsRequired
	}

	c.newStatus = newStatus
	return nil
}
