// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate spans several tables: the order row,
// its lines with price snapshots and attributes, the shipping and payment
// event ledgers with per-line quantities, discounts, notes and the status
// audit trail.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database row of an order aggregate root. Monetary
// amounts are stored as decimals in the order currency.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number            string     `gorm:"uniqueIndex"`
	UserID            *uuid.UUID `gorm:"type:uuid;index"`
	GuestEmail        string
	BillingAddressID  *uuid.UUID `gorm:"type:uuid"`
	ShippingAddressID *uuid.UUID `gorm:"type:uuid"`
	ShippingMethod    string
	ShippingCode      string
	Currency          string
	TotalInclTax      decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalExclTax      decimal.Decimal `gorm:"type:decimal(12,2)"`
	ShippingInclTax   decimal.Decimal `gorm:"type:decimal(12,2)"`
	ShippingExclTax   decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status            string          `gorm:"index"`
	DatePlaced        time.Time
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents one order line with its denormalized product snapshot
// and the eight price columns of the pricing snapshot. CreatedSeq preserves
// the basket order of the lines.
type LineDTO struct {
	ID                         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID                    uuid.UUID  `gorm:"type:uuid;index"`
	ProductID                  *uuid.UUID `gorm:"type:uuid"`
	Title                      string
	UPC                        string `gorm:"column:upc"`
	Quantity                   int
	Status                     string
	CreatedSeq                 int
	UnitInclTax                decimal.Decimal `gorm:"type:decimal(12,2)"`
	UnitExclTax                decimal.Decimal `gorm:"type:decimal(12,2)"`
	UnitBeforeDiscountsInclTax decimal.Decimal `gorm:"type:decimal(12,2)"`
	UnitBeforeDiscountsExclTax decimal.Decimal `gorm:"type:decimal(12,2)"`
	LineInclTax                decimal.Decimal `gorm:"type:decimal(12,2)"`
	LineExclTax                decimal.Decimal `gorm:"type:decimal(12,2)"`
	LineBeforeDiscountsInclTax decimal.Decimal `gorm:"type:decimal(12,2)"`
	LineBeforeDiscountsExclTax decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName overrides GORM's default naming convention.
func (LineDTO) TableName() string {
	return "order_lines"
}

// LinePriceDTO is one row of a line's per-unit price breakdown. Rows are
// keyed by (line_id, seq) so re-persisting the aggregate never duplicates
// them.
type LinePriceDTO struct {
	LineID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Seq             int             `gorm:"primaryKey"`
	Quantity        int
	PriceInclTax    decimal.Decimal `gorm:"type:decimal(12,2)"`
	PriceExclTax    decimal.Decimal `gorm:"type:decimal(12,2)"`
	ShippingInclTax decimal.Decimal `gorm:"type:decimal(12,2)"`
	ShippingExclTax decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName overrides GORM's default naming convention.
func (LinePriceDTO) TableName() string {
	return "order_line_prices"
}

// LineAttributeDTO is one option chosen for a line, keyed by (line_id, seq).
type LineAttributeDTO struct {
	LineID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq      int        `gorm:"primaryKey"`
	OptionID *uuid.UUID `gorm:"type:uuid"`
	AttrType string
	Value    string
}

// TableName overrides GORM's default naming convention.
func (LineAttributeDTO) TableName() string {
	return "order_line_attributes"
}

// ShippingEventDTO is one fulfilment event of the ledger. Seq is the
// per-order insertion sequence used as a tie-break for equal timestamps.
type ShippingEventDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	EventTypeName string
	EventTypeCode string
	Notes         string
	Seq           int64
	DateCreated   time.Time
}

// TableName overrides GORM's default naming convention.
func (ShippingEventDTO) TableName() string {
	return "shipping_events"
}

// ShippingEventQuantityDTO is the per-line allocation of one shipping event.
// The composite key enforces at most one row per (event, line) pair.
type ShippingEventQuantityDTO struct {
	EventID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity int
}

// TableName overrides GORM's default naming convention.
func (ShippingEventQuantityDTO) TableName() string {
	return "shipping_event_quantities"
}

// PaymentEventDTO is one payment event of the ledger. The amount is in the
// order currency; the shipping event reference is optional.
type PaymentEventDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	EventTypeName   string
	EventTypeCode   string
	Amount          decimal.Decimal `gorm:"type:decimal(12,2)"`
	Reference       string
	ShippingEventID *uuid.UUID `gorm:"type:uuid"`
	Seq             int64
	DateCreated     time.Time
}

// TableName overrides GORM's default naming convention.
func (PaymentEventDTO) TableName() string {
	return "payment_events"
}

// PaymentEventQuantityDTO is the per-line allocation of one payment event.
type PaymentEventQuantityDTO struct {
	EventID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity int
}

// TableName overrides GORM's default naming convention.
func (PaymentEventQuantityDTO) TableName() string {
	return "payment_event_quantities"
}

// DiscountDTO is one discount recorded against an order, with the offer name
// and voucher code denormalized at recording time.
type DiscountDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Category    string
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)"`
	Frequency   int
	Message     string
	OfferID     *uuid.UUID `gorm:"type:uuid"`
	OfferName   string
	VoucherID   *uuid.UUID `gorm:"type:uuid"`
	VoucherCode string
}

// TableName overrides GORM's default naming convention.
func (DiscountDTO) TableName() string {
	return "order_discounts"
}

// NoteDTO is one note attached to an order. Notes are the only child rows
// that may be rewritten after creation, within the editable window.
type NoteDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	NoteType    string
	Message     string
	AuthorID    *uuid.UUID `gorm:"type:uuid"`
	DateCreated time.Time
	DateUpdated time.Time
}

// TableName overrides GORM's default naming convention.
func (NoteDTO) TableName() string {
	return "order_notes"
}

// StatusChangeDTO is one entry of the order status audit trail. Seq is the
// position in the trail; together with the order id it makes re-persisting
// the aggregate idempotent.
type StatusChangeDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_order_status_changes_order_seq"`
	Seq       int       `gorm:"uniqueIndex:idx_order_status_changes_order_seq"`
	OldStatus string
	NewStatus string
	ChangedAt time.Time
}

// TableName overrides GORM's default naming convention.
func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

// CommunicationEventDTO records one message sent to the customer about an
// order.
type CommunicationEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Code        string    `gorm:"index"`
	Name        string
	DateCreated time.Time
}

// TableName overrides GORM's default naming convention.
func (CommunicationEventDTO) TableName() string {
	return "order_communication_events"
}

// orderRows is the flattened relational form of an order aggregate.
type orderRows struct {
	order               OrderDTO
	lines               []LineDTO
	linePrices          []LinePriceDTO
	lineAttributes      []LineAttributeDTO
	shippingEvents      []ShippingEventDTO
	shippingQuantities  []ShippingEventQuantityDTO
	paymentEvents       []PaymentEventDTO
	paymentQuantities   []PaymentEventQuantityDTO
	discounts           []DiscountDTO
	notes               []NoteDTO
	statusChanges       []StatusChangeDTO
	communicationEvents []CommunicationEventDTO
}

// fromDomain flattens an order aggregate into its relational rows.
func fromDomain(aggregate *order.Order) orderRows {
	orderID := aggregate.ID().Bytes()

	rows := orderRows{
		order: OrderDTO{
			ID:                orderID,
			Number:            aggregate.Number(),
			UserID:            rawUUIDPtr(aggregate.UserID()),
			GuestEmail:        aggregate.GuestEmail(),
			BillingAddressID:  rawUUIDPtr(aggregate.BillingAddressID()),
			ShippingAddressID: rawUUIDPtr(aggregate.ShippingAddressID()),
			ShippingMethod:    aggregate.ShippingMethod(),
			ShippingCode:      aggregate.ShippingCode(),
			Currency:          aggregate.Currency(),
			TotalInclTax:      aggregate.Totals().TotalInclTax().Amount(),
			TotalExclTax:      aggregate.Totals().TotalExclTax().Amount(),
			ShippingInclTax:   aggregate.Totals().ShippingInclTax().Amount(),
			ShippingExclTax:   aggregate.Totals().ShippingExclTax().Amount(),
			Status:            string(aggregate.Status()),
			DatePlaced:        aggregate.DatePlaced(),
		},
	}

	for i, line := range aggregate.Lines() {
		lineID := line.ID().Bytes()
		prices := line.Prices()

		rows.lines = append(rows.lines, LineDTO{
			ID:                         lineID,
			OrderID:                    orderID,
			ProductID:                  rawUUIDPtr(line.ProductID()),
			Title:                      line.Title(),
			UPC:                        line.UPC(),
			Quantity:                   line.Quantity(),
			Status:                     string(line.Status()),
			CreatedSeq:                 i,
			UnitInclTax:                prices.UnitInclTax().Amount(),
			UnitExclTax:                prices.UnitExclTax().Amount(),
			UnitBeforeDiscountsInclTax: prices.UnitBeforeDiscountsInclTax().Amount(),
			UnitBeforeDiscountsExclTax: prices.UnitBeforeDiscountsExclTax().Amount(),
			LineInclTax:                prices.LineInclTax().Amount(),
			LineExclTax:                prices.LineExclTax().Amount(),
			LineBeforeDiscountsInclTax: prices.LineBeforeDiscountsInclTax().Amount(),
			LineBeforeDiscountsExclTax: prices.LineBeforeDiscountsExclTax().Amount(),
		})

		for j, price := range line.PriceBreakdown() {
			rows.linePrices = append(rows.linePrices, LinePriceDTO{
				LineID:          lineID,
				Seq:             j,
				Quantity:        price.Quantity(),
				PriceInclTax:    price.PriceInclTax().Amount(),
				PriceExclTax:    price.PriceExclTax().Amount(),
				ShippingInclTax: price.ShippingInclTax().Amount(),
				ShippingExclTax: price.ShippingExclTax().Amount(),
			})
		}
		for j, attribute := range line.Attributes() {
			rows.lineAttributes = append(rows.lineAttributes, LineAttributeDTO{
				LineID:   lineID,
				Seq:      j,
				OptionID: rawUUIDPtr(attribute.OptionID()),
				AttrType: attribute.Type(),
				Value:    attribute.Value(),
			})
		}
	}

	for _, event := range aggregate.ShippingEvents() {
		eventID := event.ID().Bytes()
		rows.shippingEvents = append(rows.shippingEvents, ShippingEventDTO{
			ID:            eventID,
			OrderID:       orderID,
			EventTypeName: event.EventType().Name(),
			EventTypeCode: event.EventType().Code(),
			Notes:         event.Notes(),
			Seq:           event.Seq(),
			DateCreated:   event.DateCreated(),
		})
		for _, q := range event.Quantities() {
			rows.shippingQuantities = append(rows.shippingQuantities, ShippingEventQuantityDTO{
				EventID:  eventID,
				LineID:   q.LineID().Bytes(),
				Quantity: q.Quantity(),
			})
		}
	}

	for _, event := range aggregate.PaymentEvents() {
		eventID := event.ID().Bytes()
		rows.paymentEvents = append(rows.paymentEvents, PaymentEventDTO{
			ID:              eventID,
			OrderID:         orderID,
			EventTypeName:   event.EventType().Name(),
			EventTypeCode:   event.EventType().Code(),
			Amount:          event.Amount().Amount(),
			Reference:       event.Reference(),
			ShippingEventID: rawUUIDPtr(event.ShippingEventID()),
			Seq:             event.Seq(),
			DateCreated:     event.DateCreated(),
		})
		for _, q := range event.Quantities() {
			rows.paymentQuantities = append(rows.paymentQuantities, PaymentEventQuantityDTO{
				EventID:  eventID,
				LineID:   q.LineID().Bytes(),
				Quantity: q.Quantity(),
			})
		}
	}

	for _, discount := range aggregate.Discounts() {
		rows.discounts = append(rows.discounts, DiscountDTO{
			ID:          discount.ID().Bytes(),
			OrderID:     orderID,
			Category:    string(discount.Category()),
			Amount:      discount.Amount().Amount(),
			Frequency:   discount.Frequency(),
			Message:     discount.Message(),
			OfferID:     rawUUIDPtr(discount.OfferID()),
			OfferName:   discount.OfferName(),
			VoucherID:   rawUUIDPtr(discount.VoucherID()),
			VoucherCode: discount.VoucherCode(),
		})
	}

	for _, note := range aggregate.Notes() {
		rows.notes = append(rows.notes, NoteDTO{
			ID:          note.ID().Bytes(),
			OrderID:     orderID,
			NoteType:    string(note.Type()),
			Message:     note.Message(),
			AuthorID:    rawUUIDPtr(note.AuthorID()),
			DateCreated: note.DateCreated(),
			DateUpdated: note.DateUpdated(),
		})
	}

	for i, change := range aggregate.StatusChanges() {
		rows.statusChanges = append(rows.statusChanges, StatusChangeDTO{
			OrderID:   orderID,
			Seq:       i,
			OldStatus: string(change.OldStatus()),
			NewStatus: string(change.NewStatus()),
			ChangedAt: change.At(),
		})
	}

	for _, event := range aggregate.CommunicationEvents() {
		rows.communicationEvents = append(rows.communicationEvents, CommunicationEventDTO{
			ID:          event.ID().Bytes(),
			OrderID:     orderID,
			Code:        event.Code(),
			Name:        event.Name(),
			DateCreated: event.DateCreated(),
		})
	}

	return rows
}

// toDomain reconstructs the order aggregate from its relational rows. The
// status pipelines are injected because they are configuration, not state.
func toDomain(rows orderRows, pipelines order.Pipelines) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(rows.order.ID[:])
	if err != nil {
		return nil, err
	}

	currency := rows.order.Currency
	totals, err := order.NewTotals(
		restoreMoney(rows.order.TotalInclTax, currency),
		restoreMoney(rows.order.TotalExclTax, currency),
		restoreMoney(rows.order.ShippingInclTax, currency),
		restoreMoney(rows.order.ShippingExclTax, currency),
	)
	if err != nil {
		return nil, err
	}

	lines, err := linesToDomain(rows, currency)
	if err != nil {
		return nil, err
	}
	shippingEvents, err := shippingEventsToDomain(rows)
	if err != nil {
		return nil, err
	}
	paymentEvents, err := paymentEventsToDomain(rows, currency)
	if err != nil {
		return nil, err
	}
	discounts, err := discountsToDomain(rows, currency)
	if err != nil {
		return nil, err
	}
	notes, err := notesToDomain(rows)
	if err != nil {
		return nil, err
	}
	communicationEvents, err := communicationEventsToDomain(rows)
	if err != nil {
		return nil, err
	}

	statusChanges := make([]order.StatusChange, 0, len(rows.statusChanges))
	for _, dto := range rows.statusChanges {
		statusChanges = append(statusChanges, order.RestoreStatusChange(
			order.Status(dto.OldStatus), order.Status(dto.NewStatus), dto.ChangedAt))
	}

	userID, err := domainUUIDPtr(rows.order.UserID)
	if err != nil {
		return nil, err
	}
	billingAddressID, err := domainUUIDPtr(rows.order.BillingAddressID)
	if err != nil {
		return nil, err
	}
	shippingAddressID, err := domainUUIDPtr(rows.order.ShippingAddressID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                  id,
		Number:              rows.order.Number,
		UserID:              userID,
		GuestEmail:          rows.order.GuestEmail,
		BillingAddressID:    billingAddressID,
		ShippingAddressID:   shippingAddressID,
		ShippingMethod:      rows.order.ShippingMethod,
		ShippingCode:        rows.order.ShippingCode,
		Totals:              totals,
		Status:              order.Status(rows.order.Status),
		DatePlaced:          rows.order.DatePlaced,
		Pipelines:           pipelines,
		Lines:               lines,
		StatusChanges:       statusChanges,
		ShippingEvents:      shippingEvents,
		PaymentEvents:       paymentEvents,
		Discounts:           discounts,
		Notes:               notes,
		CommunicationEvents: communicationEvents,
	})
}

func linesToDomain(rows orderRows, currency string) ([]*order.Line, error) {
	pricesByLine := make(map[uuid.UUID][]LinePriceDTO)
	for _, dto := range rows.linePrices {
		pricesByLine[dto.LineID] = append(pricesByLine[dto.LineID], dto)
	}
	attributesByLine := make(map[uuid.UUID][]LineAttributeDTO)
	for _, dto := range rows.lineAttributes {
		attributesByLine[dto.LineID] = append(attributesByLine[dto.LineID], dto)
	}

	lines := make([]*order.Line, 0, len(rows.lines))
	for _, dto := range rows.lines {
		lineID, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		productID, err := domainUUIDPtr(dto.ProductID)
		if err != nil {
			return nil, err
		}

		prices, err := order.NewLinePrices(order.LinePricesParams{
			UnitInclTax:                restoreMoney(dto.UnitInclTax, currency),
			UnitExclTax:                restoreMoney(dto.UnitExclTax, currency),
			UnitBeforeDiscountsInclTax: restoreMoney(dto.UnitBeforeDiscountsInclTax, currency),
			UnitBeforeDiscountsExclTax: restoreMoney(dto.UnitBeforeDiscountsExclTax, currency),
			LineInclTax:                restoreMoney(dto.LineInclTax, currency),
			LineExclTax:                restoreMoney(dto.LineExclTax, currency),
			LineBeforeDiscountsInclTax: restoreMoney(dto.LineBeforeDiscountsInclTax, currency),
			LineBeforeDiscountsExclTax: restoreMoney(dto.LineBeforeDiscountsExclTax, currency),
		})
		if err != nil {
			return nil, err
		}

		line, err := order.NewLine(lineID, productID, dto.Title, dto.UPC, dto.Quantity, prices, order.Status(dto.Status))
		if err != nil {
			return nil, err
		}

		for _, priceDTO := range pricesByLine[dto.ID] {
			price, priceErr := order.NewLinePrice(
				priceDTO.Quantity,
				restoreMoney(priceDTO.PriceInclTax, currency),
				restoreMoney(priceDTO.PriceExclTax, currency),
				restoreMoney(priceDTO.ShippingInclTax, currency),
				restoreMoney(priceDTO.ShippingExclTax, currency),
			)
			if priceErr != nil {
				return nil, priceErr
			}
			line.AddPriceBreakdown(price)
		}
		for _, attributeDTO := range attributesByLine[dto.ID] {
			optionID, optionErr := domainUUIDPtr(attributeDTO.OptionID)
			if optionErr != nil {
				return nil, optionErr
			}
			attribute, attrErr := order.NewAttribute(optionID, attributeDTO.AttrType, attributeDTO.Value)
			if attrErr != nil {
				return nil, attrErr
			}
			line.AddAttribute(attribute)
		}

		lines = append(lines, line)
	}
	return lines, nil
}

func shippingEventsToDomain(rows orderRows) ([]*order.ShippingEvent, error) {
	quantitiesByEvent, err := quantitiesToDomain(rows.shippingQuantities)
	if err != nil {
		return nil, err
	}

	events := make([]*order.ShippingEvent, 0, len(rows.shippingEvents))
	for _, dto := range rows.shippingEvents {
		eventID, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		eventType, typeErr := order.RestoreEventType(dto.EventTypeName, dto.EventTypeCode)
		if typeErr != nil {
			return nil, typeErr
		}

		event, restoreErr := order.RestoreShippingEvent(
			eventID, eventType, dto.Notes, dto.Seq, dto.DateCreated, quantitiesByEvent[dto.ID])
		if restoreErr != nil {
			return nil, restoreErr
		}
		events = append(events, event)
	}
	return events, nil
}

func paymentEventsToDomain(rows orderRows, currency string) ([]*order.PaymentEvent, error) {
	quantities := make([]ShippingEventQuantityDTO, 0, len(rows.paymentQuantities))
	for _, dto := range rows.paymentQuantities {
		quantities = append(quantities, ShippingEventQuantityDTO(dto))
	}
	quantitiesByEvent, err := quantitiesToDomain(quantities)
	if err != nil {
		return nil, err
	}

	events := make([]*order.PaymentEvent, 0, len(rows.paymentEvents))
	for _, dto := range rows.paymentEvents {
		eventID, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		eventType, typeErr := order.RestoreEventType(dto.EventTypeName, dto.EventTypeCode)
		if typeErr != nil {
			return nil, typeErr
		}
		shippingEventID, refErr := domainUUIDPtr(dto.ShippingEventID)
		if refErr != nil {
			return nil, refErr
		}

		event, restoreErr := order.RestorePaymentEvent(
			eventID, eventType, restoreMoney(dto.Amount, currency), dto.Reference,
			shippingEventID, dto.Seq, dto.DateCreated, quantitiesByEvent[dto.ID])
		if restoreErr != nil {
			return nil, restoreErr
		}
		events = append(events, event)
	}
	return events, nil
}

func quantitiesToDomain(dtos []ShippingEventQuantityDTO) (map[uuid.UUID][]order.EventQuantity, error) {
	byEvent := make(map[uuid.UUID][]order.EventQuantity)
	for _, dto := range dtos {
		lineID, err := kernel.UUIDFromBytes(dto.LineID[:])
		if err != nil {
			return nil, err
		}
		quantity, err := order.RestoreEventQuantity(lineID, dto.Quantity)
		if err != nil {
			return nil, err
		}
		byEvent[dto.EventID] = append(byEvent[dto.EventID], quantity)
	}
	return byEvent, nil
}

func discountsToDomain(rows orderRows, currency string) ([]*order.Discount, error) {
	discounts := make([]*order.Discount, 0, len(rows.discounts))
	for _, dto := range rows.discounts {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		offerID, err := domainUUIDPtr(dto.OfferID)
		if err != nil {
			return nil, err
		}
		voucherID, err := domainUUIDPtr(dto.VoucherID)
		if err != nil {
			return nil, err
		}

		discount, err := order.RestoreDiscount(order.RestoreDiscountParams{
			ID:          id,
			Category:    order.DiscountCategory(dto.Category),
			Amount:      restoreMoney(dto.Amount, currency),
			Frequency:   dto.Frequency,
			Message:     dto.Message,
			OfferID:     offerID,
			OfferName:   dto.OfferName,
			VoucherID:   voucherID,
			VoucherCode: dto.VoucherCode,
		})
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, discount)
	}
	return discounts, nil
}

func notesToDomain(rows orderRows) ([]*order.Note, error) {
	notes := make([]*order.Note, 0, len(rows.notes))
	for _, dto := range rows.notes {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		authorID, err := domainUUIDPtr(dto.AuthorID)
		if err != nil {
			return nil, err
		}

		note, err := order.RestoreNote(
			id, order.NoteType(dto.NoteType), dto.Message, authorID, dto.DateCreated, dto.DateUpdated)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func communicationEventsToDomain(rows orderRows) ([]*order.CommunicationEvent, error) {
	events := make([]*order.CommunicationEvent, 0, len(rows.communicationEvents))
	for _, dto := range rows.communicationEvents {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		event, err := order.NewCommunicationEvent(id, dto.Code, dto.Name, dto.DateCreated)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func rawUUIDPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainUUIDPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// restoreMoney rebuilds a Money value from a stored amount; the currency was
// validated when the order row was first written.
func restoreMoney(amount decimal.Decimal, currency string) kernel.Money {
	m, _ := kernel.NewMoney(amount, currency)
	return m
}
