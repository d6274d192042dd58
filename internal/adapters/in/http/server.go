// Package http exposes the order lifecycle over a REST API. Handlers
// translate JSON requests into commands and queries and map domain errors to
// HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler          commands.PlaceOrderCommandHandler
	changeOrderStatusHandler   commands.ChangeOrderStatusCommandHandler
	changeLineStatusHandler    commands.ChangeLineStatusCommandHandler
	recordShippingEventHandler commands.RecordShippingEventCommandHandler
	recordPaymentEventHandler  commands.RecordPaymentEventCommandHandler
	addOrderNoteHandler        commands.AddOrderNoteCommandHandler
	updateOrderNoteHandler     commands.UpdateOrderNoteCommandHandler

	getOrderHandler queries.GetOrderQueryHandler

	verifier *services.OrderVerifier

	// initialLineStatus is stamped on new lines at placement; it comes from
	// the same configuration as the status pipelines.
	initialLineStatus order.Status
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	changeLineStatusHandler commands.ChangeLineStatusCommandHandler,
	recordShippingEventHandler commands.RecordShippingEventCommandHandler,
	recordPaymentEventHandler commands.RecordPaymentEventCommandHandler,
	addOrderNoteHandler commands.AddOrderNoteCommandHandler,
	updateOrderNoteHandler commands.UpdateOrderNoteCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	verifier *services.OrderVerifier,
	initialLineStatus order.Status,
) *Server {
	return &Server{
		placeOrderHandler:          placeOrderHandler,
		changeOrderStatusHandler:   changeOrderStatusHandler,
		changeLineStatusHandler:    changeLineStatusHandler,
		recordShippingEventHandler: recordShippingEventHandler,
		recordPaymentEventHandler:  recordPaymentEventHandler,
		addOrderNoteHandler:        addOrderNoteHandler,
		updateOrderNoteHandler:     updateOrderNoteHandler,
		getOrderHandler:            getOrderHandler,
		verifier:                   verifier,
		initialLineStatus:          initialLineStatus,
	}
}

// RegisterRoutes attaches all order endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/:number", s.GetOrder)
	api.POST("/orders/:number/status", s.ChangeOrderStatus)
	api.POST("/orders/:number/lines/:lineId/status", s.ChangeLineStatus)
	api.POST("/orders/:number/shipping-events", s.RecordShippingEvent)
	api.POST("/orders/:number/payment-events", s.RecordPaymentEvent)
	api.POST("/orders/:number/notes", s.AddNote)
	api.PUT("/orders/:number/notes/:noteId", s.UpdateNote)
	api.GET("/orders/:number/verification-token", s.IssueVerificationToken)
	api.POST("/orders/:number/verification-token/check", s.CheckVerificationToken)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := s.buildPlaceOrderCommand(req)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to place order")
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetOrder handles GET /api/v1/orders/:number.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("number"))
	if err != nil {
		return badRequest(ctx, "Invalid order number")
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve order")
	}

	response := OrderResponse{
		ID:              view.ID.String(),
		Number:          view.Number,
		Status:          view.Status,
		Currency:        view.Currency,
		GuestEmail:      view.GuestEmail,
		ShippingMethod:  view.ShippingMethod,
		DatePlaced:      view.DatePlaced,
		TotalInclTax:    view.TotalInclTax,
		TotalExclTax:    view.TotalExclTax,
		ShippingInclTax: view.ShippingInclTax,
		ShippingExclTax: view.ShippingExclTax,
		ShippingStatus:  view.ShippingStatus,
		Lines:           make([]OrderLineResponse, 0, len(view.Lines)),
		Discounts:       make([]OrderDiscountResponse, 0, len(view.Discounts)),
	}
	for _, line := range view.Lines {
		response.Lines = append(response.Lines, OrderLineResponse{
			ID:          line.ID.String(),
			Title:       line.Title,
			UPC:         line.UPC,
			Quantity:    line.Quantity,
			Status:      line.Status,
			LineInclTax: line.LineInclTax,
		})
	}
	for _, discount := range view.Discounts {
		response.Discounts = append(response.Discounts, OrderDiscountResponse{
			Category:    discount.Category,
			Amount:      discount.Amount,
			Frequency:   discount.Frequency,
			Description: discount.Description,
			Message:     discount.Message,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles POST /api/v1/orders/:number/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	var req ChangeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(ctx.Param("number"), order.Status(req.NewStatus))
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if handleErr := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to change order status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeLineStatus handles POST /api/v1/orders/:number/lines/:lineId/status.
func (s *Server) ChangeLineStatus(ctx echo.Context) error {
	var req ChangeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return badRequest(ctx, "Invalid line id")
	}

	cmd, err := commands.NewChangeLineStatusCommand(ctx.Param("number"), lineID, order.Status(req.NewStatus))
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if handleErr := s.changeLineStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to change line status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordShippingEvent handles POST /api/v1/orders/:number/shipping-events.
func (s *Server) RecordShippingEvent(ctx echo.Context) error {
	var req RecordShippingEventRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lineQuantities, err := parseLineQuantities(req.Lines)
	if err != nil {
		return badRequest(ctx, "Invalid line allocations: "+err.Error())
	}

	cmd, err := commands.NewRecordShippingEventCommand(
		ctx.Param("number"), req.EventType, lineQuantities, req.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid event data: "+err.Error())
	}

	if handleErr := s.recordShippingEventHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to record shipping event")
	}

	return ctx.NoContent(http.StatusCreated)
}

// RecordPaymentEvent handles POST /api/v1/orders/:number/payment-events.
func (s *Server) RecordPaymentEvent(ctx echo.Context) error {
	var req RecordPaymentEventRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewGetOrderQuery(ctx.Param("number"))
	if err != nil {
		return badRequest(ctx, "Invalid order number")
	}
	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve order")
	}

	amount, err := kernel.MoneyFromString(req.Amount, view.Currency)
	if err != nil {
		return badRequest(ctx, "Invalid amount: "+err.Error())
	}
	lineQuantities, err := parseLineQuantities(req.Lines)
	if err != nil {
		return badRequest(ctx, "Invalid line allocations: "+err.Error())
	}

	cmd, err := commands.NewRecordPaymentEventCommand(
		ctx.Param("number"), req.EventType, amount, lineQuantities)
	if err != nil {
		return badRequest(ctx, "Invalid event data: "+err.Error())
	}
	cmd = cmd.WithReference(req.Reference)
	if req.ShippingEventID != nil {
		shippingEventID, idErr := kernel.UUIDFromString(*req.ShippingEventID)
		if idErr != nil {
			return badRequest(ctx, "Invalid shipping event id")
		}
		cmd = cmd.WithShippingEvent(shippingEventID)
	}

	if handleErr := s.recordPaymentEventHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to record payment event")
	}

	return ctx.NoContent(http.StatusCreated)
}

// AddNote handles POST /api/v1/orders/:number/notes.
func (s *Server) AddNote(ctx echo.Context) error {
	var req AddNoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	authorID, err := parseUUIDPtr(req.AuthorID)
	if err != nil {
		return badRequest(ctx, "Invalid author id")
	}

	cmd, err := commands.NewAddOrderNoteCommand(
		ctx.Param("number"), kernel.NewUUID(), order.NoteType(req.NoteType), req.Message, authorID)
	if err != nil {
		return badRequest(ctx, "Invalid note data: "+err.Error())
	}

	if handleErr := s.addOrderNoteHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to add note")
	}

	return ctx.NoContent(http.StatusCreated)
}

// UpdateNote handles PUT /api/v1/orders/:number/notes/:noteId.
func (s *Server) UpdateNote(ctx echo.Context) error {
	var req UpdateNoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	noteID, err := kernel.UUIDFromString(ctx.Param("noteId"))
	if err != nil {
		return badRequest(ctx, "Invalid note id")
	}

	cmd, err := commands.NewUpdateOrderNoteCommand(ctx.Param("number"), noteID, req.Message)
	if err != nil {
		return badRequest(ctx, "Invalid note data: "+err.Error())
	}

	if handleErr := s.updateOrderNoteHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to update note")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// IssueVerificationToken handles GET /api/v1/orders/:number/verification-token.
func (s *Server) IssueVerificationToken(ctx echo.Context) error {
	number := ctx.Param("number")

	// The order must exist before a token for it is issued.
	query, err := queries.NewGetOrderQuery(number)
	if err != nil {
		return badRequest(ctx, "Invalid order number")
	}
	if _, err = s.getOrderHandler.Handle(ctx.Request().Context(), query); err != nil {
		return domainError(ctx, err, "Failed to retrieve order")
	}

	token, err := s.verifier.Hash(number)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to issue verification token",
		})
	}

	return ctx.JSON(http.StatusOK, VerificationTokenResponse{Token: token})
}

// CheckVerificationToken handles POST /api/v1/orders/:number/verification-token/check.
func (s *Server) CheckVerificationToken(ctx echo.Context) error {
	var req CheckVerificationTokenRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	valid := s.verifier.Check(ctx.Param("number"), req.Token)
	return ctx.JSON(http.StatusOK, CheckVerificationTokenResponse{Valid: valid})
}

func (s *Server) buildPlaceOrderCommand(req PlaceOrderRequest) (commands.PlaceOrderCommand, error) {
	money := func(amount string) (kernel.Money, error) {
		return kernel.MoneyFromString(amount, req.Currency)
	}

	totalIncl, err := money(req.TotalInclTax)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	totalExcl, err := money(req.TotalExclTax)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	shippingIncl, err := money(req.ShippingInclTax)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	shippingExcl, err := money(req.ShippingExclTax)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	totals, err := order.NewTotals(totalIncl, totalExcl, shippingIncl, shippingExcl)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	lines := make([]*order.Line, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		line, lineErr := buildLine(lineReq, req.Currency, s.initialLineStatus)
		if lineErr != nil {
			return commands.PlaceOrderCommand{}, lineErr
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), req.Number, totals, lines)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	userID, err := parseUUIDPtr(req.UserID)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	billingAddressID, err := parseUUIDPtr(req.BillingAddressID)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	shippingAddressID, err := parseUUIDPtr(req.ShippingAddressID)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	cmd = cmd.WithCustomer(userID, req.GuestEmail).
		WithAddresses(billingAddressID, shippingAddressID).
		WithShipping(req.ShippingMethod, req.ShippingCode)
	if req.DatePlaced != nil {
		cmd = cmd.WithDatePlaced(*req.DatePlaced)
	}

	if len(req.Discounts) > 0 {
		discounts := make([]commands.PlaceOrderDiscount, 0, len(req.Discounts))
		for _, discountReq := range req.Discounts {
			discount, discountErr := buildDiscount(discountReq, req.Currency)
			if discountErr != nil {
				return commands.PlaceOrderCommand{}, discountErr
			}
			discounts = append(discounts, discount)
		}
		cmd = cmd.WithDiscounts(discounts)
	}

	return cmd, nil
}

func buildLine(req PlaceOrderLine, currency string, status order.Status) (*order.Line, error) {
	money := func(amount string) (kernel.Money, error) {
		return kernel.MoneyFromString(amount, currency)
	}

	amounts := make([]kernel.Money, 0, 8)
	for _, raw := range []string{
		req.UnitInclTax, req.UnitExclTax,
		req.UnitBeforeDiscountsInclTax, req.UnitBeforeDiscountsExclTax,
		req.LineInclTax, req.LineExclTax,
		req.LineBeforeDiscountsInclTax, req.LineBeforeDiscountsExclTax,
	} {
		amount, err := money(raw)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, amount)
	}

	prices, err := order.NewLinePrices(order.LinePricesParams{
		UnitInclTax:                amounts[0],
		UnitExclTax:                amounts[1],
		UnitBeforeDiscountsInclTax: amounts[2],
		UnitBeforeDiscountsExclTax: amounts[3],
		LineInclTax:                amounts[4],
		LineExclTax:                amounts[5],
		LineBeforeDiscountsInclTax: amounts[6],
		LineBeforeDiscountsExclTax: amounts[7],
	})
	if err != nil {
		return nil, err
	}

	productID, err := parseUUIDPtr(req.ProductID)
	if err != nil {
		return nil, err
	}

	line, err := order.NewLine(kernel.NewUUID(), productID, req.Title, req.UPC, req.Quantity, prices, status)
	if err != nil {
		return nil, err
	}

	for _, attrReq := range req.Attributes {
		optionID, optionErr := parseUUIDPtr(attrReq.OptionID)
		if optionErr != nil {
			return nil, optionErr
		}
		attribute, attrErr := order.NewAttribute(optionID, attrReq.Type, attrReq.Value)
		if attrErr != nil {
			return nil, attrErr
		}
		line.AddAttribute(attribute)
	}

	return line, nil
}

func buildDiscount(req PlaceOrderDiscount, currency string) (commands.PlaceOrderDiscount, error) {
	amount, err := kernel.MoneyFromString(req.Amount, currency)
	if err != nil {
		return commands.PlaceOrderDiscount{}, err
	}
	offerID, err := parseUUIDPtr(req.OfferID)
	if err != nil {
		return commands.PlaceOrderDiscount{}, err
	}
	voucherID, err := parseUUIDPtr(req.VoucherID)
	if err != nil {
		return commands.PlaceOrderDiscount{}, err
	}

	return commands.PlaceOrderDiscount{
		DiscountID: kernel.NewUUID(),
		Category:   order.DiscountCategory(req.Category),
		Amount:     amount,
		Frequency:  req.Frequency,
		Message:    req.Message,
		OfferID:    offerID,
		VoucherID:  voucherID,
	}, nil
}

func parseLineQuantities(reqs []LineQuantityRequest) ([]order.LineQuantity, error) {
	lineQuantities := make([]order.LineQuantity, 0, len(reqs))
	for _, req := range reqs {
		lineID, err := kernel.UUIDFromString(req.LineID)
		if err != nil {
			return nil, err
		}
		lineQuantities = append(lineQuantities, order.LineQuantity{
			LineID:   lineID,
			Quantity: req.Quantity,
		})
	}
	return lineQuantities, nil
}

func parseUUIDPtr(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps application errors to HTTP status codes: missing
// aggregates to 404, rejected transitions and ledger violations to 409,
// anything else to 500.
func domainError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidOrderStatus),
		errors.Is(err, order.ErrInvalidLineStatus),
		errors.Is(err, order.ErrInvalidShippingEvent),
		errors.Is(err, order.ErrInvalidPaymentEvent),
		errors.Is(err, order.ErrNoteNotEditable):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
