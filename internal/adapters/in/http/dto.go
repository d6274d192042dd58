package http

import "time"

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders. Prices arrive as
// decimal strings in the order currency; the checkout layer computed them and
// placement records them as given.
type PlaceOrderRequest struct {
	Number            string               `json:"number"`
	Currency          string               `json:"currency"`
	UserID            *string              `json:"user_id,omitempty"`
	GuestEmail        string               `json:"guest_email,omitempty"`
	BillingAddressID  *string              `json:"billing_address_id,omitempty"`
	ShippingAddressID *string              `json:"shipping_address_id,omitempty"`
	ShippingMethod    string               `json:"shipping_method,omitempty"`
	ShippingCode      string               `json:"shipping_code,omitempty"`
	TotalInclTax      string               `json:"total_incl_tax"`
	TotalExclTax      string               `json:"total_excl_tax"`
	ShippingInclTax   string               `json:"shipping_incl_tax"`
	ShippingExclTax   string               `json:"shipping_excl_tax"`
	DatePlaced        *time.Time           `json:"date_placed,omitempty"`
	Lines             []PlaceOrderLine     `json:"lines"`
	Discounts         []PlaceOrderDiscount `json:"discounts,omitempty"`
}

// PlaceOrderLine is one basket line of an order placement request.
type PlaceOrderLine struct {
	ProductID                  *string              `json:"product_id,omitempty"`
	Title                      string               `json:"title"`
	UPC                        string               `json:"upc,omitempty"`
	Quantity                   int                  `json:"quantity"`
	UnitInclTax                string               `json:"unit_incl_tax"`
	UnitExclTax                string               `json:"unit_excl_tax"`
	UnitBeforeDiscountsInclTax string               `json:"unit_before_discounts_incl_tax"`
	UnitBeforeDiscountsExclTax string               `json:"unit_before_discounts_excl_tax"`
	LineInclTax                string               `json:"line_incl_tax"`
	LineExclTax                string               `json:"line_excl_tax"`
	LineBeforeDiscountsInclTax string               `json:"line_before_discounts_incl_tax"`
	LineBeforeDiscountsExclTax string               `json:"line_before_discounts_excl_tax"`
	Attributes                 []PlaceOrderLineAttr `json:"attributes,omitempty"`
}

// PlaceOrderLineAttr is one option chosen for a line.
type PlaceOrderLineAttr struct {
	OptionID *string `json:"option_id,omitempty"`
	Type     string  `json:"type"`
	Value    string  `json:"value"`
}

// PlaceOrderDiscount is one discount applied to the basket at checkout.
type PlaceOrderDiscount struct {
	Category  string  `json:"category"`
	Amount    string  `json:"amount"`
	Frequency int     `json:"frequency"`
	Message   string  `json:"message,omitempty"`
	OfferID   *string `json:"offer_id,omitempty"`
	VoucherID *string `json:"voucher_id,omitempty"`
}

// ChangeStatusRequest is the body of the order and line status endpoints.
type ChangeStatusRequest struct {
	NewStatus string `json:"new_status"`
}

// LineQuantityRequest is one per-line allocation of an event. A zero or
// omitted quantity means the line's remaining quantity for the event type.
type LineQuantityRequest struct {
	LineID   string `json:"line_id"`
	Quantity int    `json:"quantity,omitempty"`
}

// RecordShippingEventRequest is the body of the shipping event endpoint.
type RecordShippingEventRequest struct {
	EventType string                `json:"event_type"`
	Lines     []LineQuantityRequest `json:"lines"`
	Notes     string                `json:"notes,omitempty"`
}

// RecordPaymentEventRequest is the body of the payment event endpoint.
type RecordPaymentEventRequest struct {
	EventType       string                `json:"event_type"`
	Amount          string                `json:"amount"`
	Reference       string                `json:"reference,omitempty"`
	ShippingEventID *string               `json:"shipping_event_id,omitempty"`
	Lines           []LineQuantityRequest `json:"lines"`
}

// AddNoteRequest is the body of the note creation endpoint.
type AddNoteRequest struct {
	NoteType string  `json:"note_type"`
	Message  string  `json:"message"`
	AuthorID *string `json:"author_id,omitempty"`
}

// UpdateNoteRequest is the body of the note edit endpoint.
type UpdateNoteRequest struct {
	Message string `json:"message"`
}

// VerificationTokenResponse carries an issued verification token.
type VerificationTokenResponse struct {
	Token string `json:"token"`
}

// CheckVerificationTokenRequest is the body of the token check endpoint.
type CheckVerificationTokenRequest struct {
	Token string `json:"token"`
}

// CheckVerificationTokenResponse reports whether a token matched.
type CheckVerificationTokenResponse struct {
	Valid bool `json:"valid"`
}

// OrderResponse is the order read model returned by GET endpoints.
type OrderResponse struct {
	ID              string                  `json:"id"`
	Number          string                  `json:"number"`
	Status          string                  `json:"status"`
	Currency        string                  `json:"currency"`
	GuestEmail      string                  `json:"guest_email,omitempty"`
	ShippingMethod  string                  `json:"shipping_method,omitempty"`
	DatePlaced      time.Time               `json:"date_placed"`
	TotalInclTax    string                  `json:"total_incl_tax"`
	TotalExclTax    string                  `json:"total_excl_tax"`
	ShippingInclTax string                  `json:"shipping_incl_tax"`
	ShippingExclTax string                  `json:"shipping_excl_tax"`
	ShippingStatus  string                  `json:"shipping_status"`
	Lines           []OrderLineResponse     `json:"lines"`
	Discounts       []OrderDiscountResponse `json:"discounts"`
}

// OrderLineResponse is one line of the order read model.
type OrderLineResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	UPC         string `json:"upc,omitempty"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
	LineInclTax string `json:"line_incl_tax"`
}

// OrderDiscountResponse is one discount of the order read model.
type OrderDiscountResponse struct {
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Frequency   int    `json:"frequency"`
	Description string `json:"description,omitempty"`
	Message     string `json:"message,omitempty"`
}
