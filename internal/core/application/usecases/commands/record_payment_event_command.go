package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrRecordPaymentEventCommandIsNotConstructed = errors.New(
	"RecordPaymentEventCommand must be created via NewRecordPaymentEventCommand constructor",
)

// RecordPaymentEventCommand represents a request to append a payment event to
// an order's payment ledger. The amount and gateway reference come from the
// payment layer and are stored verbatim.
type RecordPaymentEventCommand struct { //nolint:recvcheck //using for validation
	orderNumber     string
	eventTypeName   string
	amount          kernel.Money
	reference       string
	lineQuantities  []order.LineQuantity
	shippingEventID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecordPaymentEventCommand creates a command to record a payment event.
func NewRecordPaymentEventCommand(
	orderNumber, eventTypeName string, amount kernel.Money,
	lineQuantities []order.LineQuantity,
) (RecordPaymentEventCommand, error) {
	cmd := RecordPaymentEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setEventTypeName(eventTypeName),
		cmd.setAmount(amount),
		cmd.setLineQuantities(lineQuantities),
	); err != nil {
		return RecordPaymentEventCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentEventCommandIsNotConstructed)
}

// WithReference sets the payment gateway transaction reference.
func (c RecordPaymentEventCommand) WithReference(reference string) RecordPaymentEventCommand {
	c.reference = reference
	return c
}

// WithShippingEvent links the payment event to the shipping event that
// triggered it.
func (c RecordPaymentEventCommand) WithShippingEvent(shippingEventID kernel.UUID) RecordPaymentEventCommand {
	c.shippingEventID = &shippingEventID
	return c
}

// OrderNumber returns the business number of the order.
func (c RecordPaymentEventCommand) OrderNumber() string {
	return c.orderNumber
}

// EventTypeName returns the payment event type name, e.g. "Settled".
func (c RecordPaymentEventCommand) EventTypeName() string {
	return c.eventTypeName
}

// Amount returns the monetary amount of the payment action.
func (c RecordPaymentEventCommand) Amount() kernel.Money {
	return c.amount
}

// Reference returns the gateway transaction reference.
func (c RecordPaymentEventCommand) Reference() string {
	return c.reference
}

// LineQuantities returns the per-line allocations.
func (c RecordPaymentEventCommand) LineQuantities() []order.LineQuantity {
	return c.lineQuantities
}

// ShippingEventID returns the linked shipping event, if any.
func (c RecordPaymentEventCommand) ShippingEventID() *kernel.UUID {
	return c.shippingEventID
}

func (c *RecordPaymentEventCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *RecordPaymentEventCommand) setEventTypeName(eventTypeName string) error {
	if eventTypeName == "" {
		return ErrEventTypeNameIsRequired
	}

	c.eventTypeName = eventTypeName
	return nil
}

func (c *RecordPaymentEventCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	c.amount = amount
	return nil
}

func (c *RecordPaymentEventCommand) setLineQuantities(lineQuantities []order.LineQuantity) error {
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
