// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read directly from the database, bypassing the domain model,
// and return flat response structures shaped for presentation.
package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrQueryOrderNumberIsRequired = errors.New("order number is required")
)

// GetOrderQuery retrieves the full read model of one order: header, totals,
// lines, discounts and the fulfilment summary.
//
// Example:
//
//	query, _ := NewGetOrderQuery("100042")
//	handler := NewGetOrderQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", view.Number, view.Status)
type GetOrderQuery struct {
	number string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order by its business number.
func NewGetOrderQuery(number string) (GetOrderQuery, error) {
	if number == "" {
		return GetOrderQuery{}, ErrQueryOrderNumberIsRequired
	}

	return GetOrderQuery{
		number: number,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Number returns the business order number to look up.
func (q GetOrderQuery) Number() string {
	return q.number
}

// GetOrderLineResponse is one line of the order read model.
type GetOrderLineResponse struct {
	ID          kernel.UUID
	Title       string
	UPC         string
	Quantity    int
	Status      string
	LineInclTax string
}

// GetOrderDiscountResponse is one discount of the order read model. The
// description is the voucher code when one was snapshotted, otherwise the
// offer name.
type GetOrderDiscountResponse struct {
	Category    string
	Amount      string
	Frequency   int
	Description string
	Message     string
}

// GetOrderQueryResponse is the order read model.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	Number          string
	Status          string
	Currency        string
	GuestEmail      string
	ShippingMethod  string
	DatePlaced      time.Time
	TotalInclTax    string
	TotalExclTax    string
	ShippingInclTax string
	ShippingExclTax string
	ShippingStatus  string
	Lines           []GetOrderLineResponse
	Discounts       []GetOrderDiscountResponse
}
