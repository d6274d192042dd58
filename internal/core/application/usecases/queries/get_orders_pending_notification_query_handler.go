package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersPendingNotificationQueryHandler finds orders whose latest status
// change postdates their latest notification of the given code. Orders never
// notified count as pending.
type GetOrdersPendingNotificationQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersPendingNotificationQueryHandler creates a handler for the
// pending notification query.
func NewGetOrdersPendingNotificationQueryHandler(db *gorm.DB) GetOrdersPendingNotificationQueryHandler {
	return GetOrdersPendingNotificationQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by order number for
// deterministic relay batches.
func (h GetOrdersPendingNotificationQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersPendingNotificationQuery,
) ([]GetOrdersPendingNotificationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetOrdersPendingNotificationQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.guest_email,
			sc.old_status,
			sc.new_status,
			sc.changed_at
		FROM orders o
		JOIN (
			SELECT DISTINCT ON (order_id)
				order_id,
				old_status,
				new_status,
				changed_at
			FROM order_status_changes
			ORDER BY order_id, changed_at DESC, id DESC
		) sc ON sc.order_id = o.id
		LEFT JOIN (
			SELECT order_id, MAX(date_created) AS last_notified
			FROM order_communication_events
			WHERE code = ?
			GROUP BY order_id
		) ce ON ce.order_id = o.id
		WHERE ce.last_notified IS NULL OR sc.changed_at > ce.last_notified
		ORDER BY o.number
	`, query.CommunicationCode()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrdersPendingNotificationQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &resp.Number, &resp.GuestEmail, &resp.OldStatus, &resp.NewStatus, &resp.LastChanged); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = orderID
		pending = append(pending, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
