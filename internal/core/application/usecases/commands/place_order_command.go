package commands

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
	ErrOrderLinesAreRequired = errors.New("at least one line is required")
)

// PlaceOrderDiscount is one discount to record against the order being
// placed. Offer and voucher references are resolved to name snapshots during
// handling.
type PlaceOrderDiscount struct {
	DiscountID kernel.UUID
	Category   order.DiscountCategory
	Amount     kernel.Money
	Frequency  int
	Message    string
	OfferID    *kernel.UUID
	VoucherID  *kernel.UUID
}

// PlaceOrderCommand represents a request to place a new order from a priced
// basket snapshot. The checkout layer computed the prices; placement records
// them as given.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), "100042", totals, lines)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, pipelines, "Pending", offers, vouchers)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	number            string
	userID            *kernel.UUID
	guestEmail        string
	billingAddressID  *kernel.UUID
	shippingAddressID *kernel.UUID
	shippingMethod    string
	shippingCode      string
	totals            order.Totals
	datePlaced        time.Time
	lines             []*order.Line
	discounts         []PlaceOrderDiscount

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that the order ID is valid, the number is not empty, the totals
// are constructed and at least one line is present.
func NewPlaceOrderCommand(
	orderID kernel.UUID, number string, totals order.Totals, lines []*order.Line,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNumber(number),
		cmd.setTotals(totals),
		cmd.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// WithCustomer sets the customer reference or guest email.
func (c PlaceOrderCommand) WithCustomer(userID *kernel.UUID, guestEmail string) PlaceOrderCommand {
	c.userID = userID
	c.guestEmail = guestEmail
	return c
}

// WithAddresses sets the billing and shipping address references.
func (c PlaceOrderCommand) WithAddresses(billingAddressID, shippingAddressID *kernel.UUID) PlaceOrderCommand {
	c.billingAddressID = billingAddressID
	c.shippingAddressID = shippingAddressID
	return c
}

// WithShipping sets the shipping method chosen at checkout.
func (c PlaceOrderCommand) WithShipping(method, code string) PlaceOrderCommand {
	c.shippingMethod = method
	c.shippingCode = code
	return c
}

// WithDatePlaced overrides the placement timestamp, e.g. when importing
// orders from another system.
func (c PlaceOrderCommand) WithDatePlaced(at time.Time) PlaceOrderCommand {
	c.datePlaced = at
	return c
}

// WithDiscounts sets the discounts to record against the order.
func (c PlaceOrderCommand) WithDiscounts(discounts []PlaceOrderDiscount) PlaceOrderCommand {
	c.discounts = discounts
	return c
}

// OrderID returns the unique identifier for the order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the business order number.
func (c PlaceOrderCommand) Number() string {
	return c.number
}

// UserID returns the customer reference, or nil for guest checkouts.
func (c PlaceOrderCommand) UserID() *kernel.UUID {
	return c.userID
}

// GuestEmail returns the guest contact email.
func (c PlaceOrderCommand) GuestEmail() string {
	return c.guestEmail
}

// BillingAddressID returns the billing address reference, if any.
func (c PlaceOrderCommand) BillingAddressID() *kernel.UUID {
	return c.billingAddressID
}

// ShippingAddressID returns the shipping address reference, if any.
func (c PlaceOrderCommand) ShippingAddressID() *kernel.UUID {
	return c.shippingAddressID
}

// ShippingMethod returns the shipping method name.
func (c PlaceOrderCommand) ShippingMethod() string {
	return c.shippingMethod
}

// ShippingCode returns the shipping method code.
func (c PlaceOrderCommand) ShippingCode() string {
	return c.shippingCode
}

// Totals returns the priced totals snapshot.
func (c PlaceOrderCommand) Totals() order.Totals {
	return c.totals
}

// DatePlaced returns the explicit placement timestamp, zero when defaulted.
func (c PlaceOrderCommand) DatePlaced() time.Time {
	return c.datePlaced
}

// Lines returns the order lines to place.
func (c PlaceOrderCommand) Lines() []*order.Line {
	return c.lines
}

// Discounts returns the discounts to record.
func (c PlaceOrderCommand) Discounts() []PlaceOrderDiscount {
	return c.discounts
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setNumber(number string) error {
	if number == "" {
		return ErrOrderNumberIsRequired
	}

	c.number = number
	return nil
}

func (c *PlaceOrderCommand) setTotals(totals order.Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}

	c.totals = totals
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []*order.Line) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	c.lines = lines
	return nil
}
