package order

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through the NewLine factory method.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// LinePrices is the immutable price snapshot of a line, captured at
// placement: unit and line level, before and after discounts, each on both
// tax bases. Discounts (before minus after) must never be negative.
type LinePrices struct {
	unitInclTax                kernel.Money
	unitExclTax                kernel.Money
	unitBeforeDiscountsInclTax kernel.Money
	unitBeforeDiscountsExclTax kernel.Money
	lineInclTax                kernel.Money
	lineExclTax                kernel.Money
	lineBeforeDiscountsInclTax kernel.Money
	lineBeforeDiscountsExclTax kernel.Money
	isConstructed              bool
}

// LinePricesParams carries the eight price fields of a line snapshot.
type LinePricesParams struct {
	UnitInclTax                kernel.Money
	UnitExclTax                kernel.Money
	UnitBeforeDiscountsInclTax kernel.Money
	UnitBeforeDiscountsExclTax kernel.Money
	LineInclTax                kernel.Money
	LineExclTax                kernel.Money
	LineBeforeDiscountsInclTax kernel.Money
	LineBeforeDiscountsExclTax kernel.Money
}

// NewLinePrices creates a validated price snapshot. All amounts must share
// one currency, and the pre-discount amounts may not be below the
// post-discount ones.
func NewLinePrices(p LinePricesParams) (LinePrices, error) {
	amounts := []kernel.Money{
		p.UnitInclTax, p.UnitExclTax,
		p.UnitBeforeDiscountsInclTax, p.UnitBeforeDiscountsExclTax,
		p.LineInclTax, p.LineExclTax,
		p.LineBeforeDiscountsInclTax, p.LineBeforeDiscountsExclTax,
	}
	for _, amount := range amounts {
		if err := amount.Validate(); err != nil {
			return LinePrices{}, err
		}
		if amount.Currency() != p.LineInclTax.Currency() {
			return LinePrices{}, errs.NewValueIsInvalidErrorWithCause(
				"line prices",
				fmt.Errorf("mixed currencies %s and %s", amount.Currency(), p.LineInclTax.Currency()),
			)
		}
		if amount.IsNegative() {
			return LinePrices{}, errs.NewValueIsInvalidErrorWithCause(
				"line prices", fmt.Errorf("%s is negative", amount))
		}
	}

	discountPairs := [][2]kernel.Money{
		{p.LineBeforeDiscountsInclTax, p.LineInclTax},
		{p.LineBeforeDiscountsExclTax, p.LineExclTax},
		{p.UnitBeforeDiscountsInclTax, p.UnitInclTax},
		{p.UnitBeforeDiscountsExclTax, p.UnitExclTax},
	}
	for _, pair := range discountPairs {
		discount, err := pair[0].Sub(pair[1])
		if err != nil {
			return LinePrices{}, err
		}
		if discount.IsNegative() {
			return LinePrices{}, errs.NewValueIsInvalidErrorWithCause(
				"line prices",
				fmt.Errorf("price before discounts %s is below price %s", pair[0], pair[1]),
			)
		}
	}

	return LinePrices{
		unitInclTax:                p.UnitInclTax,
		unitExclTax:                p.UnitExclTax,
		unitBeforeDiscountsInclTax: p.UnitBeforeDiscountsInclTax,
		unitBeforeDiscountsExclTax: p.UnitBeforeDiscountsExclTax,
		lineInclTax:                p.LineInclTax,
		lineExclTax:                p.LineExclTax,
		lineBeforeDiscountsInclTax: p.LineBeforeDiscountsInclTax,
		lineBeforeDiscountsExclTax: p.LineBeforeDiscountsExclTax,
		isConstructed:              true,
	}, nil
}

// Validate ensures the snapshot was created via NewLinePrices.
func (p LinePrices) Validate() error {
	if !p.isConstructed {
		return errs.NewValueIsRequiredError("line prices must be created via NewLinePrices")
	}
	return nil
}

// Currency returns the currency shared by all amounts in the snapshot.
func (p LinePrices) Currency() string {
	return p.lineInclTax.Currency()
}

// UnitInclTax returns the per-unit price including tax, after discounts.
func (p LinePrices) UnitInclTax() kernel.Money { return p.unitInclTax }

// UnitExclTax returns the per-unit price excluding tax, after discounts.
func (p LinePrices) UnitExclTax() kernel.Money { return p.unitExclTax }

// UnitBeforeDiscountsInclTax returns the per-unit price including tax, before discounts.
func (p LinePrices) UnitBeforeDiscountsInclTax() kernel.Money { return p.unitBeforeDiscountsInclTax }

// UnitBeforeDiscountsExclTax returns the per-unit price excluding tax, before discounts.
func (p LinePrices) UnitBeforeDiscountsExclTax() kernel.Money { return p.unitBeforeDiscountsExclTax }

// LineInclTax returns the line price including tax, after discounts.
func (p LinePrices) LineInclTax() kernel.Money { return p.lineInclTax }

// LineExclTax returns the line price excluding tax, after discounts.
func (p LinePrices) LineExclTax() kernel.Money { return p.lineExclTax }

// LineBeforeDiscountsInclTax returns the line price including tax, before discounts.
func (p LinePrices) LineBeforeDiscountsInclTax() kernel.Money { return p.lineBeforeDiscountsInclTax }

// LineBeforeDiscountsExclTax returns the line price excluding tax, before discounts.
func (p LinePrices) LineBeforeDiscountsExclTax() kernel.Money { return p.lineBeforeDiscountsExclTax }

// LinePrice is a per-unit price breakdown row: offers can make units within
// one line carry different prices, so the line total is decomposed into rows
// of (quantity, price).
type LinePrice struct {
	quantity        int
	priceInclTax    kernel.Money
	priceExclTax    kernel.Money
	shippingInclTax kernel.Money
	shippingExclTax kernel.Money
}

// NewLinePrice creates a price breakdown row.
func NewLinePrice(quantity int, priceInclTax, priceExclTax, shippingInclTax, shippingExclTax kernel.Money) (LinePrice, error) {
	if quantity <= 0 {
		return LinePrice{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	for _, m := range []kernel.Money{priceInclTax, priceExclTax, shippingInclTax, shippingExclTax} {
		if err := m.Validate(); err != nil {
			return LinePrice{}, err
		}
	}

	return LinePrice{
		quantity:        quantity,
		priceInclTax:    priceInclTax,
		priceExclTax:    priceExclTax,
		shippingInclTax: shippingInclTax,
		shippingExclTax: shippingExclTax,
	}, nil
}

// Quantity returns the number of units priced by this row.
func (p LinePrice) Quantity() int { return p.quantity }

// PriceInclTax returns the row price including tax.
func (p LinePrice) PriceInclTax() kernel.Money { return p.priceInclTax }

// PriceExclTax returns the row price excluding tax.
func (p LinePrice) PriceExclTax() kernel.Money { return p.priceExclTax }

// ShippingInclTax returns the shipping charge attributed to the row, including tax.
func (p LinePrice) ShippingInclTax() kernel.Money { return p.shippingInclTax }

// ShippingExclTax returns the shipping charge attributed to the row, excluding tax.
func (p LinePrice) ShippingExclTax() kernel.Money { return p.shippingExclTax }

// Attribute is a named option chosen for a line, such as a personalisation
// message or a size.
type Attribute struct {
	optionID *kernel.UUID
	attrType string
	value    string
}

// NewAttribute creates a line attribute. The option reference is optional:
// the type/value snapshot survives deletion of the option itself.
func NewAttribute(optionID *kernel.UUID, attrType, value string) (Attribute, error) {
	if attrType == "" {
		return Attribute{}, errs.NewValueIsRequiredError("attribute type")
	}
	return Attribute{optionID: optionID, attrType: attrType, value: value}, nil
}

// OptionID returns the referenced option, if it still exists.
func (a Attribute) OptionID() *kernel.UUID { return a.optionID }

// Type returns the attribute name.
func (a Attribute) Type() string { return a.attrType }

// Value returns the attribute value.
func (a Attribute) Value() string { return a.value }

// Line is one product line of an order. The product reference is soft: the
// title and UPC are denormalized at placement so the line survives deletion
// of the product. Quantity and prices are fixed at creation; only the status
// changes afterwards, through the order's line pipeline.
type Line struct {
	id         kernel.UUID
	productID  *kernel.UUID
	title      string
	upc        string
	quantity   int
	prices     LinePrices
	status     Status
	attributes []Attribute
	breakdown  []LinePrice

	// owner is set when the line is attached to its order; ledger queries
	// read the order's event collections through it.
	owner         *Order
	isConstructed bool
}

// NewLine creates an order line. The initial status is validated against the
// line pipeline when the line is attached to an order.
func NewLine(
	id kernel.UUID, productID *kernel.UUID, title, upc string,
	quantity int, prices LinePrices, status Status,
) (*Line, error) {
	line := &Line{isConstructed: true}

	if err := errors.Join(
		line.setID(id),
		line.setProduct(productID, title, upc),
		line.setQuantity(quantity),
		line.setPrices(prices),
	); err != nil {
		return nil, err
	}

	line.status = status
	return line, nil
}

// Validate ensures the Line instance was properly constructed through NewLine.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// ProductID returns the referenced product, or nil if the product has been
// deleted since the order was placed.
func (l *Line) ProductID() *kernel.UUID {
	return l.productID
}

// Title returns the product title snapshotted at placement.
func (l *Line) Title() string {
	return l.title
}

// UPC returns the product UPC snapshotted at placement.
func (l *Line) UPC() string {
	return l.upc
}

// Quantity returns the number of units on the line.
func (l *Line) Quantity() int {
	return l.quantity
}

// Prices returns the price snapshot of the line.
func (l *Line) Prices() LinePrices {
	return l.prices
}

// Status returns the current line status.
func (l *Line) Status() Status {
	return l.status
}

// Attributes returns the attributes chosen for the line.
func (l *Line) Attributes() []Attribute {
	return append([]Attribute(nil), l.attributes...)
}

// AddAttribute records an attribute on the line.
func (l *Line) AddAttribute(attribute Attribute) {
	l.attributes = append(l.attributes, attribute)
}

// PriceBreakdown returns the per-unit price rows of the line.
func (l *Line) PriceBreakdown() []LinePrice {
	return append([]LinePrice(nil), l.breakdown...)
}

// AddPriceBreakdown records a per-unit price row on the line.
func (l *Line) AddPriceBreakdown(price LinePrice) {
	l.breakdown = append(l.breakdown, price)
}

// IsProductDeleted reports whether the referenced product no longer exists.
func (l *Line) IsProductDeleted() bool {
	return l.productID == nil
}

// Description renders the line title with its attributes, e.g.
// "Mug (Color = 'Red', Size = 'L')".
func (l *Line) Description() string {
	if len(l.attributes) == 0 {
		return l.title
	}

	ops := make([]string, 0, len(l.attributes))
	for _, attribute := range l.attributes {
		ops = append(ops, fmt.Sprintf("%s = '%s'", attribute.attrType, attribute.value))
	}
	return fmt.Sprintf("%s (%s)", l.title, strings.Join(ops, ", "))
}

// DiscountInclTax returns the discount received by the line including tax.
func (l *Line) DiscountInclTax() kernel.Money {
	return mustSub(l.prices.lineBeforeDiscountsInclTax, l.prices.lineInclTax)
}

// DiscountExclTax returns the discount received by the line excluding tax.
func (l *Line) DiscountExclTax() kernel.Money {
	return mustSub(l.prices.lineBeforeDiscountsExclTax, l.prices.lineExclTax)
}

// LinePriceTax returns the tax portion of the line price.
func (l *Line) LinePriceTax() kernel.Money {
	return mustSub(l.prices.lineInclTax, l.prices.lineExclTax)
}

// UnitPriceTax returns the tax portion of the unit price.
func (l *Line) UnitPriceTax() kernel.Money {
	return mustSub(l.prices.unitInclTax, l.prices.unitExclTax)
}

// IsShippingEventPermitted reports whether a shipping event of the given type
// and quantity would keep the cumulative per-type sum within the line
// quantity.
func (l *Line) IsShippingEventPermitted(eventType EventType, quantity int) bool {
	return l.ShippingEventQuantity(eventType)+quantity <= l.quantity
}

// ShippingEventQuantity returns the quantity of this line recorded across all
// shipping events of the given type. Zero if none.
func (l *Line) ShippingEventQuantity(eventType EventType) int {
	total := 0
	if l.owner == nil {
		return 0
	}
	for _, event := range l.owner.shippingEvents {
		if !event.eventType.IsEqual(eventType) {
			continue
		}
		for _, q := range event.quantities {
			if q.lineID.IsEqual(l.id) {
				total += q.quantity
			}
		}
	}
	return total
}

// HasShippingEventOccurred reports whether the recorded quantity for the
// event type equals the target quantity. A zero target means the full line
// quantity.
func (l *Line) HasShippingEventOccurred(eventType EventType, quantity int) bool {
	if quantity == 0 {
		quantity = l.quantity
	}
	return l.ShippingEventQuantity(eventType) == quantity
}

// IsPaymentEventPermitted reports whether a payment event of the given type
// and quantity would keep the cumulative per-type sum within the line
// quantity.
func (l *Line) IsPaymentEventPermitted(eventType EventType, quantity int) bool {
	return l.PaymentEventQuantity(eventType)+quantity <= l.quantity
}

// PaymentEventQuantity returns the quantity of this line recorded across all
// payment events of the given type. Zero if none.
func (l *Line) PaymentEventQuantity(eventType EventType) int {
	total := 0
	if l.owner == nil {
		return 0
	}
	for _, event := range l.owner.paymentEvents {
		if !event.eventType.IsEqual(eventType) {
			continue
		}
		for _, q := range event.quantities {
			if q.lineID.IsEqual(l.id) {
				total += q.quantity
			}
		}
	}
	return total
}

// HasPaymentEventOccurred reports whether the recorded quantity for the
// payment event type equals the target quantity. A zero target means the
// full line quantity.
func (l *Line) HasPaymentEventOccurred(eventType EventType, quantity int) bool {
	if quantity == 0 {
		quantity = l.quantity
	}
	return l.PaymentEventQuantity(eventType) == quantity
}

// BreakdownEntry is one row of a line's event breakdown: the cumulative
// quantity recorded under one event type.
type BreakdownEntry struct {
	EventType EventType
	Quantity  int
}

// ShippingEventBreakdown returns the shipping event types this line has been
// through with their cumulative quantities. Types are ordered by their most
// recent event, newest first.
func (l *Line) ShippingEventBreakdown() []BreakdownEntry {
	if l.owner == nil {
		return nil
	}

	entries := make([]BreakdownEntry, 0)
	index := make(map[string]int)
	for _, event := range l.owner.shippingEventsNewestFirst() {
		for _, q := range event.quantities {
			if !q.lineID.IsEqual(l.id) {
				continue
			}
			if i, ok := index[event.eventType.code]; ok {
				entries[i].Quantity += q.quantity
			} else {
				index[event.eventType.code] = len(entries)
				entries = append(entries, BreakdownEntry{EventType: event.eventType, Quantity: q.quantity})
			}
		}
	}
	return entries
}

// ShippingStatus renders a summary of the line's fulfilment progress, oldest
// event type first. Complete event types appear by name alone, partial ones
// as "name (x/y items)". When the most recent event type is complete, its
// name stands in for the whole history.
func (l *Line) ShippingStatus() string {
	entries := l.ShippingEventBreakdown()
	if len(entries) == 0 {
		return ""
	}

	var parts []string
	lastComplete := ""
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if entry.Quantity == l.quantity {
			parts = append(parts, entry.EventType.name)
			lastComplete = entry.EventType.name
		} else {
			parts = append(parts, fmt.Sprintf("%s (%d/%d items)",
				entry.EventType.name, entry.Quantity, l.quantity))
		}
	}

	if lastComplete == entries[0].EventType.name {
		return lastComplete
	}
	return strings.Join(parts, ", ")
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setProduct(productID *kernel.UUID, title, upc string) error {
	if productID != nil {
		if err := productID.Validate(); err != nil {
			return err
		}
	}
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	l.productID = productID
	l.title = title
	l.upc = upc
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setPrices(prices LinePrices) error {
	if err := prices.Validate(); err != nil {
		return err
	}
	l.prices = prices
	return nil
}

// mustSub subtracts two amounts whose currencies were checked at
// construction time.
func mustSub(a, b kernel.Money) kernel.Money {
	m, _ := a.Sub(b)
	return m
}
