package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
)

// Sentinel errors for classifying domain violations with errors.Is. The
// typed errors below wrap these and carry the details a caller needs to turn
// the rejection into user feedback.
var (
	ErrInvalidOrderStatus   = errors.New("invalid order status transition")
	ErrInvalidLineStatus    = errors.New("invalid line status transition")
	ErrInvalidShippingEvent = errors.New("invalid shipping event")
	ErrInvalidPaymentEvent  = errors.New("invalid payment event")

	// ErrNoteNotEditable is returned when editing a note outside its
	// editable window, or a system-generated note.
	ErrNoteNotEditable = errors.New("note is no longer editable")
)

// InvalidOrderStatusError indicates an attempted order status transition that
// the pipeline does not permit.
type InvalidOrderStatusError struct {
	OrderNumber   string
	CurrentStatus Status
	NewStatus     Status
}

// NewInvalidOrderStatusError creates an InvalidOrderStatusError.
func NewInvalidOrderStatusError(orderNumber string, currentStatus, newStatus Status) *InvalidOrderStatusError {
	return &InvalidOrderStatusError{
		OrderNumber:   orderNumber,
		CurrentStatus: currentStatus,
		NewStatus:     newStatus,
	}
}

func (e *InvalidOrderStatusError) Error() string {
	return fmt.Sprintf("'%s' is not a valid status for order %s (current status: '%s')",
		e.NewStatus, e.OrderNumber, e.CurrentStatus)
}

func (e *InvalidOrderStatusError) Unwrap() error {
	return ErrInvalidOrderStatus
}

// InvalidLineStatusError indicates an attempted line status transition that
// the line pipeline does not permit.
type InvalidLineStatusError struct {
	LineID        kernel.UUID
	CurrentStatus Status
	NewStatus     Status
}

// NewInvalidLineStatusError creates an InvalidLineStatusError.
func NewInvalidLineStatusError(lineID kernel.UUID, currentStatus, newStatus Status) *InvalidLineStatusError {
	return &InvalidLineStatusError{
		LineID:        lineID,
		CurrentStatus: currentStatus,
		NewStatus:     newStatus,
	}
}

func (e *InvalidLineStatusError) Error() string {
	return fmt.Sprintf("'%s' is not a valid status (current status: '%s')",
		e.NewStatus, e.CurrentStatus)
}

func (e *InvalidLineStatusError) Unwrap() error {
	return ErrInvalidLineStatus
}

// InvalidShippingEventError indicates a shipping event quantity that would
// take a line past its total quantity for one event type.
type InvalidShippingEventError struct {
	OrderNumber  string
	LineID       kernel.UUID
	EventType    string
	Quantity     int
	Recorded     int
	LineQuantity int
}

// NewInvalidShippingEventError creates an InvalidShippingEventError.
func NewInvalidShippingEventError(
	orderNumber string, lineID kernel.UUID, eventType string,
	quantity, recorded, lineQuantity int,
) *InvalidShippingEventError {
	return &InvalidShippingEventError{
		OrderNumber:  orderNumber,
		LineID:       lineID,
		EventType:    eventType,
		Quantity:     quantity,
		Recorded:     recorded,
		LineQuantity: lineQuantity,
	}
}

func (e *InvalidShippingEventError) Error() string {
	return fmt.Sprintf(
		"shipping event '%s' with quantity %d is not permitted for order %s: %d of %d already recorded",
		e.EventType, e.Quantity, e.OrderNumber, e.Recorded, e.LineQuantity)
}

func (e *InvalidShippingEventError) Unwrap() error {
	return ErrInvalidShippingEvent
}

// InvalidPaymentEventError indicates a payment event quantity that would take
// a line past its total quantity for one event type.
type InvalidPaymentEventError struct {
	OrderNumber  string
	LineID       kernel.UUID
	EventType    string
	Quantity     int
	Recorded     int
	LineQuantity int
}

// NewInvalidPaymentEventError creates an InvalidPaymentEventError.
func NewInvalidPaymentEventError(
	orderNumber string, lineID kernel.UUID, eventType string,
	quantity, recorded, lineQuantity int,
) *InvalidPaymentEventError {
	return &InvalidPaymentEventError{
		OrderNumber:  orderNumber,
		LineID:       lineID,
		EventType:    eventType,
		Quantity:     quantity,
		Recorded:     recorded,
		LineQuantity: lineQuantity,
	}
}

func (e *InvalidPaymentEventError) Error() string {
	return fmt.Sprintf(
		"payment event '%s' with quantity %d is not permitted for order %s: %d of %d already recorded",
		e.EventType, e.Quantity, e.OrderNumber, e.Recorded, e.LineQuantity)
}

func (e *InvalidPaymentEventError) Unwrap() error {
	return ErrInvalidPaymentEvent
}
