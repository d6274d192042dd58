package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderShippingStatusInProgress mirrors the aggregate's summary for partially
// fulfilled orders.
const orderShippingStatusInProgress = "In progress"

// GetOrderQueryHandler retrieves the order read model from the database with
// raw SQL, bypassing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the order lookup. Returns an object-not-found error when no
// order carries the number.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.loadHeader(ctx, query.Number())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.Lines, err = h.loadLines(ctx, resp.ID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Discounts, err = h.loadDiscounts(ctx, resp.ID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ShippingStatus, err = h.loadShippingStatus(ctx, resp.ID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadHeader(ctx context.Context, number string) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var id uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			currency,
			guest_email,
			shipping_method,
			date_placed,
			total_incl_tax,
			total_excl_tax,
			shipping_incl_tax,
			shipping_excl_tax
		FROM orders
		WHERE number = ?
	`, number).Row()

	err := row.Scan(
		&id,
		&resp.Number,
		&resp.Status,
		&resp.Currency,
		&resp.GuestEmail,
		&resp.ShippingMethod,
		&resp.DatePlaced,
		&resp.TotalInclTax,
		&resp.TotalExclTax,
		&resp.ShippingInclTax,
		&resp.ShippingExclTax,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("number", number)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID
	return resp, nil
}

func (h GetOrderQueryHandler) loadLines(ctx context.Context, orderID kernel.UUID) ([]GetOrderLineResponse, error) {
	lines := make([]GetOrderLineResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			title,
			upc,
			quantity,
			status,
			line_incl_tax
		FROM order_lines
		WHERE order_id = ?
		ORDER BY created_seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line GetOrderLineResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &line.Title, &line.UPC, &line.Quantity, &line.Status, &line.LineInclTax); err != nil {
			return nil, err
		}

		lineID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		line.ID = lineID
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (h GetOrderQueryHandler) loadDiscounts(ctx context.Context, orderID kernel.UUID) ([]GetOrderDiscountResponse, error) {
	discounts := make([]GetOrderDiscountResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			category,
			amount,
			frequency,
			offer_name,
			voucher_code,
			message
		FROM order_discounts
		WHERE order_id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var discount GetOrderDiscountResponse
		var offerName, voucherCode string

		if err = rows.Scan(
			&discount.Category, &discount.Amount, &discount.Frequency,
			&offerName, &voucherCode, &discount.Message,
		); err != nil {
			return nil, err
		}

		discount.Description = voucherCode
		if discount.Description == "" {
			discount.Description = offerName
		}
		discounts = append(discounts, discount)
	}

	return discounts, rows.Err()
}

// loadShippingStatus reproduces the aggregate's fulfilment summary from the
// ledger tables: event types newest first, the first one whose quantities
// cover every line in full names the status.
func (h GetOrderQueryHandler) loadShippingStatus(ctx context.Context, orderID kernel.UUID) (string, error) {
	lineQuantities := make(map[uuid.UUID]int)

	lineRows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, quantity FROM order_lines WHERE order_id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return "", err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var id uuid.UUID
		var quantity int
		if err = lineRows.Scan(&id, &quantity); err != nil {
			return "", err
		}
		lineQuantities[id] = quantity
	}
	if err = lineRows.Err(); err != nil {
		return "", err
	}

	eventRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			e.event_type_name,
			q.line_id,
			q.quantity
		FROM shipping_events e
		JOIN shipping_event_quantities q ON q.event_id = e.id
		WHERE e.order_id = ?
		ORDER BY e.date_created DESC, e.seq DESC
	`, orderID.Bytes()).Rows()
	if err != nil {
		return "", err
	}
	defer eventRows.Close()

	type group struct {
		name    string
		perLine map[uuid.UUID]int
	}
	groups := make([]*group, 0)
	index := make(map[string]*group)
	for eventRows.Next() {
		var name string
		var lineID uuid.UUID
		var quantity int
		if err = eventRows.Scan(&name, &lineID, &quantity); err != nil {
			return "", err
		}

		g, ok := index[name]
		if !ok {
			g = &group{name: name, perLine: make(map[uuid.UUID]int)}
			index[name] = g
			groups = append(groups, g)
		}
		g.perLine[lineID] += quantity
	}
	if err = eventRows.Err(); err != nil {
		return "", err
	}

	if len(groups) == 0 {
		return "", nil
	}

	for _, g := range groups {
		complete := true
		for lineID, quantity := range lineQuantities {
			if g.perLine[lineID] != quantity {
				complete = false
				break
			}
		}
		if complete {
			return g.name, nil
		}
	}
	return orderShippingStatusInProgress, nil
}
