package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrRecordCommunicationEventCommandIsNotConstructed = errors.New(
		"RecordCommunicationEventCommand must be created via NewRecordCommunicationEventCommand constructor",
	)
	ErrEventCodeIsRequired = errors.New("event code is required")
)

// RecordCommunicationEventCommand represents a request to record that a
// message of a given type was sent to the customer about an order. Used by
// the communication relay job after dispatching a notification.
type RecordCommunicationEventCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	eventID     kernel.UUID
	code        string
	name        string

	guard guard.ConstructorGuard
}

// NewRecordCommunicationEventCommand creates a command to record a sent
// message.
func NewRecordCommunicationEventCommand(
	orderNumber string, eventID kernel.UUID, code, name string,
) (RecordCommunicationEventCommand, error) {
	cmd := RecordCommunicationEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setEventID(eventID),
		cmd.setCode(code),
	); err != nil {
		return RecordCommunicationEventCommand{}, err
	}

	cmd.name = name
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordCommunicationEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordCommunicationEventCommandIsNotConstructed)
}

// OrderNumber returns the business number of the order.
func (c RecordCommunicationEventCommand) OrderNumber() string {
	return c.orderNumber
}

// EventID returns the identifier for the new record.
func (c RecordCommunicationEventCommand) EventID() kernel.UUID {
	return c.eventID
}

// Code returns the message type code.
func (c RecordCommunicationEventCommand) Code() string {
	return c.code
}

// Name returns the message type name.
func (c RecordCommunicationEventCommand) Name() string {
	return c.name
}

func (c *RecordCommunicationEventCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *RecordCommunicationEventCommand) setEventID(eventID kernel.UUID) error {
	if err := eventID.Validate(); err != nil {
		return err
	}

	c.eventID = eventID
	return nil
}

func (c *RecordCommunicationEventCommand) setCode(code string) error {
	if code == "" {
		return ErrEventCodeIsRequired
	}

	c.code = code
	return nil
}
