package order

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// ErrLineNotFound is returned when an order does not contain the requested
// line.
var ErrLineNotFound = errors.New("line not found in order")

// OrderShippingStatusInProgress is the order fulfilment summary when events
// exist but no event type covers every affected line in full.
const OrderShippingStatusInProgress = "In progress"

// Totals is the monetary summary of an order, captured at placement from the
// priced basket. Totals are trusted as given and never recomputed from lines.
type Totals struct {
	totalInclTax    kernel.Money
	totalExclTax    kernel.Money
	shippingInclTax kernel.Money
	shippingExclTax kernel.Money
	isConstructed   bool
}

// NewTotals creates an order totals summary. All four amounts must share one
// currency.
func NewTotals(totalInclTax, totalExclTax, shippingInclTax, shippingExclTax kernel.Money) (Totals, error) {
	amounts := []kernel.Money{totalInclTax, totalExclTax, shippingInclTax, shippingExclTax}
	for _, amount := range amounts {
		if err := amount.Validate(); err != nil {
			return Totals{}, err
		}
		if amount.Currency() != totalInclTax.Currency() {
			return Totals{}, errs.NewValueIsInvalidErrorWithCause(
				"totals",
				fmt.Errorf("mixed currencies %s and %s", amount.Currency(), totalInclTax.Currency()),
			)
		}
	}

	return Totals{
		totalInclTax:    totalInclTax,
		totalExclTax:    totalExclTax,
		shippingInclTax: shippingInclTax,
		shippingExclTax: shippingExclTax,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Totals value was created via NewTotals.
func (t Totals) Validate() error {
	if !t.isConstructed {
		return errs.NewValueIsRequiredError("totals must be created via NewTotals")
	}
	return nil
}

// Currency returns the currency shared by the totals.
func (t Totals) Currency() string {
	return t.totalInclTax.Currency()
}

// TotalInclTax returns the order total including tax.
func (t Totals) TotalInclTax() kernel.Money { return t.totalInclTax }

// TotalExclTax returns the order total excluding tax.
func (t Totals) TotalExclTax() kernel.Money { return t.totalExclTax }

// ShippingInclTax returns the shipping charge including tax.
func (t Totals) ShippingInclTax() kernel.Money { return t.shippingInclTax }

// ShippingExclTax returns the shipping charge excluding tax.
func (t Totals) ShippingExclTax() kernel.Money { return t.shippingExclTax }

// BasketInclTax returns the basket portion of the total including tax.
func (t Totals) BasketInclTax() kernel.Money {
	return mustSub(t.totalInclTax, t.shippingInclTax)
}

// BasketExclTax returns the basket portion of the total excluding tax.
func (t Totals) BasketExclTax() kernel.Money {
	return mustSub(t.totalExclTax, t.shippingExclTax)
}

// TotalTax returns the tax portion of the order total.
func (t Totals) TotalTax() kernel.Money {
	return mustSub(t.totalInclTax, t.totalExclTax)
}

// ShippingTax returns the tax portion of the shipping charge.
func (t Totals) ShippingTax() kernel.Money {
	return mustSub(t.shippingInclTax, t.shippingExclTax)
}

// StatusChanged is emitted when an order moves to a new status. Handlers
// publish it after the transaction commits.
type StatusChanged struct {
	OrderID     kernel.UUID
	OrderNumber string
	OldStatus   Status
	NewStatus   Status
	At          time.Time
}

// LineStatusChanged is emitted when a single line moves to a new status.
type LineStatusChanged struct {
	OrderID     kernel.UUID
	OrderNumber string
	LineID      kernel.UUID
	OldStatus   Status
	NewStatus   Status
	At          time.Time
}

// LineQuantity is a caller-supplied per-line allocation for a new event. A
// zero quantity means the line's remaining quantity for the event type.
type LineQuantity struct {
	LineID   kernel.UUID
	Quantity int
}

// Order is the aggregate root of the order lifecycle. It owns its lines, the
// shipping and payment event ledgers, discounts, notes and the status audit
// trail, and enforces the pipeline and quantity invariants across them.
//
// The order number is the external business identifier and never changes.
// Pipelines are injected at construction so each deployment can run its own
// workflow.
type Order struct {
	id                kernel.UUID
	number            string
	userID            *kernel.UUID
	guestEmail        string
	billingAddressID  *kernel.UUID
	shippingAddressID *kernel.UUID
	shippingMethod    string
	shippingCode      string
	totals            Totals
	status            Status
	datePlaced        time.Time
	pipelines         Pipelines

	lines               []*Line
	statusChanges       []StatusChange
	shippingEvents      []*ShippingEvent
	paymentEvents       []*PaymentEvent
	discounts           []*Discount
	notes               []*Note
	communicationEvents []*CommunicationEvent

	// eventSeq is the last insertion sequence handed out to an event; it is
	// the tie-break when events share a timestamp.
	eventSeq int64

	isConstructed bool
}

// NewOrderParams carries the inputs for placing a new order.
type NewOrderParams struct {
	ID                kernel.UUID
	Number            string
	UserID            *kernel.UUID
	GuestEmail        string
	BillingAddressID  *kernel.UUID
	ShippingAddressID *kernel.UUID
	ShippingMethod    string
	ShippingCode      string
	Totals            Totals
	InitialStatus     Status
	DatePlaced        time.Time
	Pipelines         Pipelines
	Lines             []*Line
}

// NewOrder places a new order. The order must have at least one line, every
// line must be priced in the totals currency, and the initial status must be
// a member of the order pipeline. A zero DatePlaced means now.
func NewOrder(params NewOrderParams) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(params.ID),
		o.setNumber(params.Number),
		o.setParties(params.UserID, params.GuestEmail),
		o.setAddresses(params.BillingAddressID, params.ShippingAddressID),
		o.setTotals(params.Totals),
		o.setPipelines(params.Pipelines),
	); err != nil {
		return nil, err
	}

	if !o.pipelines.Order().Contains(params.InitialStatus) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"initial status",
			fmt.Errorf("%q is not an order status", params.InitialStatus),
		)
	}
	o.status = params.InitialStatus

	if err := o.attachLines(params.Lines); err != nil {
		return nil, err
	}

	o.shippingMethod = params.ShippingMethod
	o.shippingCode = params.ShippingCode

	o.datePlaced = params.DatePlaced
	if o.datePlaced.IsZero() {
		o.datePlaced = time.Now().UTC()
	}

	return o, nil
}

// RestoreOrderParams carries the persisted state of an order.
type RestoreOrderParams struct {
	ID                  kernel.UUID
	Number              string
	UserID              *kernel.UUID
	GuestEmail          string
	BillingAddressID    *kernel.UUID
	ShippingAddressID   *kernel.UUID
	ShippingMethod      string
	ShippingCode        string
	Totals              Totals
	Status              Status
	DatePlaced          time.Time
	Pipelines           Pipelines
	Lines               []*Line
	StatusChanges       []StatusChange
	ShippingEvents      []*ShippingEvent
	PaymentEvents       []*PaymentEvent
	Discounts           []*Discount
	Notes               []*Note
	CommunicationEvents []*CommunicationEvent
}

// RestoreOrder rehydrates a persisted order. The stored status is accepted as
// is: it was valid when written, and pipeline configuration may have changed
// since.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(params.ID),
		o.setNumber(params.Number),
		o.setParties(params.UserID, params.GuestEmail),
		o.setAddresses(params.BillingAddressID, params.ShippingAddressID),
		o.setTotals(params.Totals),
		o.setPipelines(params.Pipelines),
	); err != nil {
		return nil, err
	}

	if params.Status == "" {
		return nil, errs.NewValueIsRequiredError("status")
	}
	o.status = params.Status

	if err := o.attachLines(params.Lines); err != nil {
		return nil, err
	}

	o.shippingMethod = params.ShippingMethod
	o.shippingCode = params.ShippingCode
	o.datePlaced = params.DatePlaced

	o.statusChanges = append([]StatusChange(nil), params.StatusChanges...)
	o.shippingEvents = append([]*ShippingEvent(nil), params.ShippingEvents...)
	o.paymentEvents = append([]*PaymentEvent(nil), params.PaymentEvents...)
	o.discounts = append([]*Discount(nil), params.Discounts...)
	o.notes = append([]*Note(nil), params.Notes...)
	o.communicationEvents = append([]*CommunicationEvent(nil), params.CommunicationEvents...)

	for _, event := range o.shippingEvents {
		if event.seq > o.eventSeq {
			o.eventSeq = event.seq
		}
	}
	for _, event := range o.paymentEvents {
		if event.seq > o.eventSeq {
			o.eventSeq = event.seq
		}
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the immutable business order number.
func (o *Order) Number() string { return o.number }

// UserID returns the customer who placed the order, or nil for guest
// checkouts.
func (o *Order) UserID() *kernel.UUID { return o.userID }

// GuestEmail returns the contact email of a guest checkout.
func (o *Order) GuestEmail() string { return o.guestEmail }

// BillingAddressID returns the billing address reference, if any.
func (o *Order) BillingAddressID() *kernel.UUID { return o.billingAddressID }

// ShippingAddressID returns the shipping address reference, if any.
func (o *Order) ShippingAddressID() *kernel.UUID { return o.shippingAddressID }

// ShippingMethod returns the shipping method name chosen at checkout.
func (o *Order) ShippingMethod() string { return o.shippingMethod }

// ShippingCode returns the shipping method code chosen at checkout.
func (o *Order) ShippingCode() string { return o.shippingCode }

// Totals returns the monetary summary captured at placement.
func (o *Order) Totals() Totals { return o.totals }

// Currency returns the order currency.
func (o *Order) Currency() string { return o.totals.Currency() }

// Status returns the current order status.
func (o *Order) Status() Status { return o.status }

// DatePlaced returns when the order was placed.
func (o *Order) DatePlaced() time.Time { return o.datePlaced }

// Pipelines returns the status configuration of the order.
func (o *Order) Pipelines() Pipelines { return o.pipelines }

// Lines returns the order lines.
func (o *Order) Lines() []*Line {
	return append([]*Line(nil), o.lines...)
}

// Line returns the line with the given id, or ErrLineNotFound.
func (o *Order) Line(lineID kernel.UUID) (*Line, error) {
	for _, line := range o.lines {
		if line.id.IsEqual(lineID) {
			return line, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in order %s", ErrLineNotFound, lineID, o.number)
}

// StatusChanges returns the status audit trail, oldest first.
func (o *Order) StatusChanges() []StatusChange {
	return append([]StatusChange(nil), o.statusChanges...)
}

// ShippingEvents returns the shipping event ledger, oldest first.
func (o *Order) ShippingEvents() []*ShippingEvent {
	return append([]*ShippingEvent(nil), o.shippingEvents...)
}

// PaymentEvents returns the payment event ledger, oldest first.
func (o *Order) PaymentEvents() []*PaymentEvent {
	return append([]*PaymentEvent(nil), o.paymentEvents...)
}

// Discounts returns the discounts recorded against the order.
func (o *Order) Discounts() []*Discount {
	return append([]*Discount(nil), o.discounts...)
}

// Notes returns the notes attached to the order.
func (o *Order) Notes() []*Note {
	return append([]*Note(nil), o.notes...)
}

// CommunicationEvents returns the messages sent about the order.
func (o *Order) CommunicationEvents() []*CommunicationEvent {
	return append([]*CommunicationEvent(nil), o.communicationEvents...)
}

// AvailableStatuses returns the statuses the order may move to from its
// current status.
func (o *Order) AvailableStatuses() []Status {
	return o.pipelines.Order().AvailableFrom(o.status)
}

// SetStatus moves the order to a new status. Setting the current status again
// is a no-op and returns no event. An illegal transition is rejected with
// InvalidOrderStatusError. A legal transition cascades the mapped line status
// to every line, appends a StatusChange record and returns the StatusChanged
// event for the caller to publish. A zero timestamp means now.
func (o *Order) SetStatus(newStatus Status, at time.Time) (*StatusChanged, error) {
	if newStatus == o.status {
		return nil, nil
	}
	if !o.pipelines.Order().Allows(o.status, newStatus) {
		return nil, NewInvalidOrderStatusError(o.number, o.status, newStatus)
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}

	oldStatus := o.status
	o.status = newStatus

	if target, ok := o.pipelines.CascadeTarget(newStatus); ok {
		for _, line := range o.lines {
			line.status = target
		}
	}

	o.statusChanges = append(o.statusChanges, StatusChange{
		oldStatus: oldStatus,
		newStatus: newStatus,
		at:        at,
	})

	return &StatusChanged{
		OrderID:     o.id,
		OrderNumber: o.number,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		At:          at,
	}, nil
}

// SetLineStatus moves a single line to a new status through the line
// pipeline. Setting the current status again is a no-op and returns no event.
// A zero timestamp means now.
func (o *Order) SetLineStatus(lineID kernel.UUID, newStatus Status, at time.Time) (*LineStatusChanged, error) {
	line, err := o.Line(lineID)
	if err != nil {
		return nil, err
	}

	if newStatus == line.status {
		return nil, nil
	}
	if !o.pipelines.Line().Allows(line.status, newStatus) {
		return nil, NewInvalidLineStatusError(line.id, line.status, newStatus)
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}

	oldStatus := line.status
	line.status = newStatus

	return &LineStatusChanged{
		OrderID:     o.id,
		OrderNumber: o.number,
		LineID:      line.id,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		At:          at,
	}, nil
}

// RecordShippingEvent appends a fulfilment event to the ledger. A zero
// quantity in an allocation defaults to the line's remaining quantity for the
// event type. Every allocation is validated before anything is recorded, so a
// rejected event leaves the ledger untouched. A zero timestamp means now.
func (o *Order) RecordShippingEvent(
	eventType EventType, lineQuantities []LineQuantity, notes string, at time.Time,
) (*ShippingEvent, error) {
	if err := eventType.Validate(); err != nil {
		return nil, err
	}

	quantities, err := o.resolveQuantities(eventType, lineQuantities, func(line *Line) int {
		return line.ShippingEventQuantity(eventType)
	}, func(line *Line, quantity, recorded int) error {
		return NewInvalidShippingEventError(o.number, line.id, eventType.name, quantity, recorded, line.quantity)
	})
	if err != nil {
		return nil, err
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}

	event := &ShippingEvent{
		id:          kernel.NewUUID(),
		eventType:   eventType,
		notes:       notes,
		seq:         o.nextEventSeq(),
		dateCreated: at,
		quantities:  quantities,
	}
	o.shippingEvents = append(o.shippingEvents, event)
	return event, nil
}

// RecordPaymentEvent appends a payment event to the ledger, with the same
// quantity defaulting and validation as shipping events. The amount must be
// in the order currency. A payment event may reference the shipping event
// that triggered it.
func (o *Order) RecordPaymentEvent(
	eventType EventType, amount kernel.Money, reference string,
	lineQuantities []LineQuantity, shippingEventID *kernel.UUID, at time.Time,
) (*PaymentEvent, error) {
	if err := eventType.Validate(); err != nil {
		return nil, err
	}
	if err := amount.Validate(); err != nil {
		return nil, err
	}
	if amount.Currency() != o.Currency() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("currency %s does not match order currency %s", amount.Currency(), o.Currency()),
		)
	}
	if shippingEventID != nil {
		if err := o.assertShippingEventExists(*shippingEventID); err != nil {
			return nil, err
		}
	}

	quantities, err := o.resolveQuantities(eventType, lineQuantities, func(line *Line) int {
		return line.PaymentEventQuantity(eventType)
	}, func(line *Line, quantity, recorded int) error {
		return NewInvalidPaymentEventError(o.number, line.id, eventType.name, quantity, recorded, line.quantity)
	})
	if err != nil {
		return nil, err
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}

	event := &PaymentEvent{
		id:              kernel.NewUUID(),
		eventType:       eventType,
		amount:          amount,
		reference:       reference,
		shippingEventID: shippingEventID,
		seq:             o.nextEventSeq(),
		dateCreated:     at,
		quantities:      quantities,
	}
	o.paymentEvents = append(o.paymentEvents, event)
	return event, nil
}

// AddDiscount records a discount against the order. The amount must be in the
// order currency.
func (o *Order) AddDiscount(discount *Discount) error {
	if err := discount.Validate(); err != nil {
		return err
	}
	if discount.amount.Currency() != o.Currency() {
		return errs.NewValueIsInvalidErrorWithCause(
			"discount",
			fmt.Errorf("currency %s does not match order currency %s", discount.amount.Currency(), o.Currency()),
		)
	}
	o.discounts = append(o.discounts, discount)
	return nil
}

// AddNote attaches a note to the order.
func (o *Order) AddNote(note *Note) error {
	if err := note.Validate(); err != nil {
		return err
	}
	o.notes = append(o.notes, note)
	return nil
}

// Note returns the note with the given id, or an object-not-found error.
func (o *Order) Note(noteID kernel.UUID) (*Note, error) {
	for _, note := range o.notes {
		if note.id.IsEqual(noteID) {
			return note, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("note", noteID)
}

// AddCommunicationEvent records that a message was sent about the order.
func (o *Order) AddCommunicationEvent(event *CommunicationEvent) error {
	if event == nil {
		return errs.NewValueIsRequiredError("communication event")
	}
	o.communicationEvents = append(o.communicationEvents, event)
	return nil
}

// BasketDiscounts returns the recorded discounts that applied to the basket.
func (o *Order) BasketDiscounts() []*Discount {
	return o.discountsByCategory(DiscountCategoryBasket)
}

// ShippingDiscounts returns the recorded discounts that applied to shipping.
func (o *Order) ShippingDiscounts() []*Discount {
	return o.discountsByCategory(DiscountCategoryShipping)
}

// TotalDiscountInclTax returns the discount received across all lines,
// including tax.
func (o *Order) TotalDiscountInclTax() kernel.Money {
	total := o.zero()
	for _, line := range o.lines {
		total = mustAdd(total, line.DiscountInclTax())
	}
	return total
}

// TotalDiscountExclTax returns the discount received across all lines,
// excluding tax.
func (o *Order) TotalDiscountExclTax() kernel.Money {
	total := o.zero()
	for _, line := range o.lines {
		total = mustAdd(total, line.DiscountExclTax())
	}
	return total
}

// BasketBeforeDiscountsInclTax returns the basket total before discounts,
// including tax.
func (o *Order) BasketBeforeDiscountsInclTax() kernel.Money {
	total := o.zero()
	for _, line := range o.lines {
		total = mustAdd(total, line.prices.lineBeforeDiscountsInclTax)
	}
	return total
}

// BasketBeforeDiscountsExclTax returns the basket total before discounts,
// excluding tax.
func (o *Order) BasketBeforeDiscountsExclTax() kernel.Money {
	total := o.zero()
	for _, line := range o.lines {
		total = mustAdd(total, line.prices.lineBeforeDiscountsExclTax)
	}
	return total
}

// TotalBeforeDiscountsInclTax returns the order total before discounts,
// including tax.
func (o *Order) TotalBeforeDiscountsInclTax() kernel.Money {
	return mustAdd(o.totals.totalInclTax, o.TotalDiscountInclTax())
}

// TotalBeforeDiscountsExclTax returns the order total before discounts,
// excluding tax.
func (o *Order) TotalBeforeDiscountsExclTax() kernel.Money {
	return mustAdd(o.totals.totalExclTax, o.TotalDiscountExclTax())
}

// ShippingBeforeDiscountsInclTax returns the shipping charge before shipping
// discounts, including tax.
func (o *Order) ShippingBeforeDiscountsInclTax() kernel.Money {
	total := o.totals.shippingInclTax
	for _, discount := range o.ShippingDiscounts() {
		total = mustAdd(total, discount.amount)
	}
	return total
}

// TotalTax returns the tax portion of the order total.
func (o *Order) TotalTax() kernel.Money {
	return o.totals.TotalTax()
}

// ShippingTax returns the tax portion of the shipping charge.
func (o *Order) ShippingTax() kernel.Money {
	return o.totals.ShippingTax()
}

// NumLines returns the number of lines on the order.
func (o *Order) NumLines() int {
	return len(o.lines)
}

// NumItems returns the total number of units across all lines.
func (o *Order) NumItems() int {
	total := 0
	for _, line := range o.lines {
		total += line.quantity
	}
	return total
}

// ShippingStatus renders a fulfilment summary of the whole order. Event types
// are inspected newest first, grouped by name; the first type whose recorded
// quantities cover every line of the order in full names the status. Partial
// coverage yields "In progress"; no events yield an empty string.
func (o *Order) ShippingStatus() string {
	if len(o.shippingEvents) == 0 {
		return ""
	}

	// Group per-line sums by event type, preserving newest-first encounter
	// order.
	type group struct {
		eventType EventType
		perLine   map[kernel.UUID]int
	}
	groups := make([]*group, 0)
	index := make(map[string]*group)
	for _, event := range o.shippingEventsNewestFirst() {
		g, ok := index[event.eventType.code]
		if !ok {
			g = &group{eventType: event.eventType, perLine: make(map[kernel.UUID]int)}
			index[event.eventType.code] = g
			groups = append(groups, g)
		}
		for _, q := range event.quantities {
			g.perLine[q.lineID] += q.quantity
		}
	}

	for _, g := range groups {
		complete := true
		for _, line := range o.lines {
			if g.perLine[line.id] != line.quantity {
				complete = false
				break
			}
		}
		if complete {
			return g.eventType.name
		}
	}
	return OrderShippingStatusInProgress
}

// shippingEventsNewestFirst returns the ledger sorted newest first, breaking
// identical timestamps by insertion sequence.
func (o *Order) shippingEventsNewestFirst() []*ShippingEvent {
	events := append([]*ShippingEvent(nil), o.shippingEvents...)
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].dateCreated.Equal(events[j].dateCreated) {
			return events[i].dateCreated.After(events[j].dateCreated)
		}
		return events[i].seq > events[j].seq
	})
	return events
}

func (o *Order) resolveQuantities(
	eventType EventType,
	lineQuantities []LineQuantity,
	recordedFor func(*Line) int,
	rejection func(line *Line, quantity, recorded int) error,
) ([]EventQuantity, error) {
	if len(lineQuantities) == 0 {
		return nil, errs.NewValueIsRequiredError("line quantities")
	}

	resolved := make([]EventQuantity, 0, len(lineQuantities))
	seen := make(map[kernel.UUID]bool, len(lineQuantities))
	for _, lq := range lineQuantities {
		line, err := o.Line(lq.LineID)
		if err != nil {
			return nil, err
		}
		if seen[lq.LineID] {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"line quantities", fmt.Errorf("line %s allocated twice", lq.LineID))
		}
		seen[lq.LineID] = true

		if lq.Quantity < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"line quantities", fmt.Errorf("quantity %d is negative", lq.Quantity))
		}

		recorded := recordedFor(line)
		quantity := lq.Quantity
		if quantity == 0 {
			quantity = line.quantity - recorded
		}
		if quantity <= 0 || recorded+quantity > line.quantity {
			return nil, rejection(line, quantity, recorded)
		}

		resolved = append(resolved, EventQuantity{lineID: line.id, quantity: quantity})
	}
	return resolved, nil
}

func (o *Order) assertShippingEventExists(id kernel.UUID) error {
	for _, event := range o.shippingEvents {
		if event.id.IsEqual(id) {
			return nil
		}
	}
	return errs.NewObjectNotFoundError("shipping event", id)
}

func (o *Order) discountsByCategory(category DiscountCategory) []*Discount {
	var matched []*Discount
	for _, discount := range o.discounts {
		if discount.category == category {
			matched = append(matched, discount)
		}
	}
	return matched
}

func (o *Order) nextEventSeq() int64 {
	o.eventSeq++
	return o.eventSeq
}

func (o *Order) zero() kernel.Money {
	m, _ := kernel.ZeroMoney(o.Currency())
	return m
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setParties(userID *kernel.UUID, guestEmail string) error {
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return err
		}
	}
	o.userID = userID
	o.guestEmail = guestEmail
	return nil
}

func (o *Order) setAddresses(billingAddressID, shippingAddressID *kernel.UUID) error {
	for _, addressID := range []*kernel.UUID{billingAddressID, shippingAddressID} {
		if addressID != nil {
			if err := addressID.Validate(); err != nil {
				return err
			}
		}
	}
	o.billingAddressID = billingAddressID
	o.shippingAddressID = shippingAddressID
	return nil
}

func (o *Order) setTotals(totals Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}
	o.totals = totals
	return nil
}

func (o *Order) setPipelines(pipelines Pipelines) error {
	if err := pipelines.Validate(); err != nil {
		return err
	}
	o.pipelines = pipelines
	return nil
}

func (o *Order) attachLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	attached := make([]*Line, 0, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		if line.prices.Currency() != o.Currency() {
			return errs.NewValueIsInvalidErrorWithCause(
				"lines",
				fmt.Errorf("line %s is priced in %s, order currency is %s",
					line.id, line.prices.Currency(), o.Currency()),
			)
		}
		line.owner = o
		attached = append(attached, line)
	}
	o.lines = attached
	return nil
}

// mustAdd adds two amounts whose currencies were checked at construction
// time.
func mustAdd(a, b kernel.Money) kernel.Money {
	m, _ := a.Add(b)
	return m
}
