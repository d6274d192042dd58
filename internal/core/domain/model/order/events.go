package order

import (
	"strings"
	"time"
	"unicode"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// EventType identifies a kind of fulfilment or payment action, such as
// "Shipped", "Returned" or "Paid". The code is a slug of the name used for
// programmatic lookups and stable persistence.
type EventType struct {
	name          string
	code          string
	isConstructed bool
}

// NewEventType creates an EventType, deriving the code from the name.
func NewEventType(name string) (EventType, error) {
	return RestoreEventType(name, slugify(name))
}

// RestoreEventType rehydrates an EventType with an explicit code.
func RestoreEventType(name, code string) (EventType, error) {
	if name == "" {
		return EventType{}, errs.NewValueIsRequiredError("event type name")
	}
	if code == "" {
		return EventType{}, errs.NewValueIsRequiredError("event type code")
	}

	return EventType{name: name, code: code, isConstructed: true}, nil
}

// Validate ensures the EventType was created via a constructor.
func (t EventType) Validate() error {
	if !t.isConstructed {
		return errs.NewValueIsRequiredError("event type must be created via NewEventType")
	}
	return nil
}

// Name returns the human-readable event type name.
func (t EventType) Name() string {
	return t.name
}

// Code returns the slug code of the event type.
func (t EventType) Code() string {
	return t.code
}

// IsEqual compares event types by code.
func (t EventType) IsEqual(other EventType) bool {
	return t.code == other.code
}

// slugify lowercases a name and replaces runs of non-alphanumeric characters
// with single underscores, e.g. "Partially Shipped" -> "partially_shipped".
func slugify(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// EventQuantity is the per-line quantity allocation of one event: the ledger
// entry saying "this event covered N units of this line". At most one entry
// exists per (event, line) pair.
type EventQuantity struct {
	lineID   kernel.UUID
	quantity int
}

// LineID returns the line the allocation belongs to.
func (q EventQuantity) LineID() kernel.UUID {
	return q.lineID
}

// Quantity returns the number of units covered.
func (q EventQuantity) Quantity() int {
	return q.quantity
}

// ShippingEvent records one fulfilment action (a dispatch, a return) across
// one or more lines of an order. Events and their quantities are append-only:
// created through Order.RecordShippingEvent and never mutated afterwards.
type ShippingEvent struct {
	id          kernel.UUID
	eventType   EventType
	notes       string
	seq         int64
	dateCreated time.Time
	quantities  []EventQuantity
}

// ID returns the event identifier.
func (e *ShippingEvent) ID() kernel.UUID {
	return e.id
}

// EventType returns the kind of fulfilment action recorded.
func (e *ShippingEvent) EventType() EventType {
	return e.eventType
}

// Notes returns the free-form event notes, such as a tracking number.
func (e *ShippingEvent) Notes() string {
	return e.notes
}

// Seq returns the per-order insertion sequence, used as a stable tie-break
// when events share a timestamp.
func (e *ShippingEvent) Seq() int64 {
	return e.seq
}

// DateCreated returns when the event was recorded.
func (e *ShippingEvent) DateCreated() time.Time {
	return e.dateCreated
}

// Quantities returns the per-line allocations of this event.
func (e *ShippingEvent) Quantities() []EventQuantity {
	return append([]EventQuantity(nil), e.quantities...)
}

// NumAffectedLines returns how many lines this event touched.
func (e *ShippingEvent) NumAffectedLines() int {
	return len(e.quantities)
}

// PaymentEvent records one payment action (a settlement, a refund) across one
// or more lines of an order. The amount and gateway reference come from the
// payment layer and are stored verbatim. A payment event may link back to the
// shipping event that triggered it.
type PaymentEvent struct {
	id              kernel.UUID
	eventType       EventType
	amount          kernel.Money
	reference       string
	shippingEventID *kernel.UUID
	seq             int64
	dateCreated     time.Time
	quantities      []EventQuantity
}

// ID returns the event identifier.
func (e *PaymentEvent) ID() kernel.UUID {
	return e.id
}

// EventType returns the kind of payment action recorded.
func (e *PaymentEvent) EventType() EventType {
	return e.eventType
}

// Amount returns the monetary amount of the payment action.
func (e *PaymentEvent) Amount() kernel.Money {
	return e.amount
}

// Reference returns the payment gateway transaction reference.
func (e *PaymentEvent) Reference() string {
	return e.reference
}

// ShippingEventID returns the shipping event this payment was triggered by,
// if any.
func (e *PaymentEvent) ShippingEventID() *kernel.UUID {
	return e.shippingEventID
}

// Seq returns the per-order insertion sequence.
func (e *PaymentEvent) Seq() int64 {
	return e.seq
}

// DateCreated returns when the event was recorded.
func (e *PaymentEvent) DateCreated() time.Time {
	return e.dateCreated
}

// Quantities returns the per-line allocations of this event.
func (e *PaymentEvent) Quantities() []EventQuantity {
	return append([]EventQuantity(nil), e.quantities...)
}

// NumAffectedLines returns how many lines this event touched.
func (e *PaymentEvent) NumAffectedLines() int {
	return len(e.quantities)
}

// RestoreShippingEvent rehydrates a persisted shipping event.
func RestoreShippingEvent(
	id kernel.UUID, eventType EventType, notes string, seq int64,
	dateCreated time.Time, quantities []EventQuantity,
) (*ShippingEvent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := eventType.Validate(); err != nil {
		return nil, err
	}

	return &ShippingEvent{
		id:          id,
		eventType:   eventType,
		notes:       notes,
		seq:         seq,
		dateCreated: dateCreated,
		quantities:  append([]EventQuantity(nil), quantities...),
	}, nil
}

// RestorePaymentEvent rehydrates a persisted payment event.
func RestorePaymentEvent(
	id kernel.UUID, eventType EventType, amount kernel.Money, reference string,
	shippingEventID *kernel.UUID, seq int64, dateCreated time.Time, quantities []EventQuantity,
) (*PaymentEvent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := eventType.Validate(); err != nil {
		return nil, err
	}
	if err := amount.Validate(); err != nil {
		return nil, err
	}

	return &PaymentEvent{
		id:              id,
		eventType:       eventType,
		amount:          amount,
		reference:       reference,
		shippingEventID: shippingEventID,
		seq:             seq,
		dateCreated:     dateCreated,
		quantities:      append([]EventQuantity(nil), quantities...),
	}, nil
}

// RestoreEventQuantity rehydrates a persisted per-line allocation.
func RestoreEventQuantity(lineID kernel.UUID, quantity int) (EventQuantity, error) {
	if err := lineID.Validate(); err != nil {
		return EventQuantity{}, err
	}
	if quantity <= 0 {
		return EventQuantity{}, errs.NewValueIsInvalidError("event quantity")
	}
	return EventQuantity{lineID: lineID, quantity: quantity}, nil
}
