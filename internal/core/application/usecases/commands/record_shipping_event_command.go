package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrRecordShippingEventCommandIsNotConstructed = errors.New(
		"RecordShippingEventCommand must be created via NewRecordShippingEventCommand constructor",
	)
	ErrEventTypeNameIsRequired = errors.New("event type name is required")
	ErrLineQuantitiesAreRequired = errors.New("at least one line quantity is required")
)

// RecordShippingEventCommand represents a request to append a fulfilment
// event to an order's shipping ledger.
type RecordShippingEventCommand struct { //nolint:recvcheck //using for validation
	orderNumber   string
	eventTypeName string
	lineQuantities []order.LineQuantity
	notes         string

	guard guard.ConstructorGuard
}

// NewRecordShippingEventCommand creates a command to record a shipping event.
// A zero quantity in an allocation means the line's remaining quantity for
// the event type.
func NewRecordShippingEventCommand(
	orderNumber, eventTypeName string, lineQuantities []order.LineQuantity, notes string,
) (RecordShippingEventCommand, error) {
	cmd := RecordShippingEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setEventTypeName(eventTypeName),
		cmd.setLineQuantities(lineQuantities),
	); err != nil {
		return RecordShippingEventCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordShippingEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordShippingEventCommandIsNotConstructed)
}

// OrderNumber returns the business number of the order.
func (c RecordShippingEventCommand) OrderNumber() string {
	return c.orderNumber
}

// EventTypeName returns the fulfilment event type name, e.g. "Shipped".
func (c RecordShippingEventCommand) EventTypeName() string {
	return c.eventTypeName
}

// LineQuantities returns the per-line allocations.
func (c RecordShippingEventCommand) LineQuantities() []order.LineQuantity {
	return c.lineQuantities
}

// Notes returns the free-form event notes.
func (c RecordShippingEventCommand) Notes() string {
	return c.notes
}

func (c *RecordShippingEventCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *RecordShippingEventCommand) setEventTypeName(eventTypeName string) error {
	if eventTypeName == "" {
		return ErrEventTypeNameIsRequired
	}

	c.eventTypeName = eventTypeName
	return nil
}

func (c *RecordShippingEventCommand) setLineQuantities(lineQuantities []order.LineQuantity) error {
	if len(lineQuantities) == 0 {
		return ErrLineQuantitiesAreRequired
	}
	for _, lq := range lineQuantities {
		if err := lq.LineID.Validate(); err != nil {
			return err
		}
	}

	c.lineQuantities = lineQuantities
	return nil
}
