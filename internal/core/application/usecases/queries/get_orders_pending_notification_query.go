package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrdersPendingNotificationQueryIsNotConstructed = errors.New(
	"GetOrdersPendingNotificationQuery must be created via NewGetOrdersPendingNotificationQuery constructor",
)

// GetOrdersPendingNotificationQuery retrieves orders whose latest status
// change has not yet been communicated to the customer. Used by the
// communication relay job.
//
// Example:
//
//	query := NewGetOrdersPendingNotificationQuery("ORDER_STATUS_CHANGED")
//	handler := NewGetOrdersPendingNotificationQueryHandler(db)
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending notifications: %w", err)
//	}
type GetOrdersPendingNotificationQuery struct {
	communicationCode string

	guard guard.ConstructorGuard
}

// NewGetOrdersPendingNotificationQuery creates a query for orders pending a
// notification of the given communication code.
func NewGetOrdersPendingNotificationQuery(communicationCode string) (GetOrdersPendingNotificationQuery, error) {
	if communicationCode == "" {
		return GetOrdersPendingNotificationQuery{}, ErrEventCodeIsRequired
	}

	return GetOrdersPendingNotificationQuery{
		communicationCode: communicationCode,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersPendingNotificationQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersPendingNotificationQueryIsNotConstructed)
}

// CommunicationCode returns the message type code being relayed.
func (q GetOrdersPendingNotificationQuery) CommunicationCode() string {
	return q.communicationCode
}

// GetOrdersPendingNotificationQueryResponse is one order awaiting a status
// notification.
type GetOrdersPendingNotificationQueryResponse struct {
	OrderID     kernel.UUID
	Number      string
	GuestEmail  string
	OldStatus   string
	NewStatus   string
	LastChanged time.Time
}

// ErrEventCodeIsRequired indicates a query constructed without the
// communication code.
var ErrEventCodeIsRequired = errors.New("communication code is required")
