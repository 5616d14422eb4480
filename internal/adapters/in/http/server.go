package http

import (
	"log/slog"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler
	listOrdersHandler       queries.ListOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		getOrderHandler:          getOrderHandler,
		getOrderTrackingHandler:  getOrderTrackingHandler,
		listOrdersHandler:        listOrdersHandler,
		logger:                   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /orders - places an order. A repeated Idempotency-Key
// answers 200 with the order the key produced first.
func (s *Server) CreateOrder(ctx echo.Context, params servers.CreateOrderParams) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var body servers.CreateOrderJSONRequestBody
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	address, err := newAddress(body.ShippingAddress)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	paymentStatus := order.PaymentSucceeded
	if body.PaymentStatus != nil {
		if paymentStatus, err = order.ParsePaymentStatus(string(*body.PaymentStatus)); err != nil {
			return writeError(ctx, s.logger, err)
		}
	}

	lines := make([]commands.OrderLine, len(body.OrderItems))
	for i, item := range body.OrderItems {
		lines[i] = commands.OrderLine{
			ProductID: item.ProductId,
			VendorID:  deref(item.VendorId),
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		principal,
		deref(body.ConsumerId),
		deref(body.VendorId),
		body.PaymentId,
		paymentStatus,
		lines,
		address,
		deref(params.IdempotencyKey),
	)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	placed, err := s.readOrder(ctx, principal, result.OrderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	return ctx.JSON(status, toOrderResponse(placed))
}

// ListOrders handles GET /orders - pages through the orders a vendor or admin may see.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	filter, err := toListFilter(
		params.Page, params.Limit, params.OrderStatus,
		params.DateFrom, params.DateTo,
		params.ConsumerId, params.VendorId,
	)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewListOrdersQuery(principal, filter)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, toOrderListResponse(page))
}

// ListUserOrders handles GET /orders/user/{userId} - pages through one party's orders.
func (s *Server) ListUserOrders(ctx echo.Context, userID string, params servers.ListUserOrdersParams) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	filter, err := toListFilter(
		params.Page, params.Limit, params.OrderStatus,
		params.DateFrom, params.DateTo,
		nil, nil,
	)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewListUserOrdersQuery(principal, userID, filter)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, toOrderListResponse(page))
}

// GetOrder handles GET /orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id string) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	found, err := s.readOrder(ctx, principal, orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(found))
}

// UpdateOrderStatus handles PUT /orders/{id}/status - appends a fulfilment event.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id string) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var body servers.UpdateOrderStatusJSONRequestBody
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	status, err := order.ParseStatus(string(body.OrderStatus))
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(
		principal,
		orderID,
		status,
		order.TrackingDetails{
			Carrier:        deref(body.Carrier),
			TrackingNumber: deref(body.TrackingNumber),
			Note:           deref(body.Note),
		},
		body.ExpectedVersion,
	)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// CancelOrder handles POST /orders/{id}/cancel. The body is optional.
func (s *Server) CancelOrder(ctx echo.Context, id string) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var body servers.CancelOrderJSONRequestBody
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(principal, orderID, deref(body.Reason), body.ExpectedVersion)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(cancelled))
}

// GetOrderTracking handles GET /orders/{id}/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context, id string) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(principal, orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	ledger, err := s.getOrderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, toTrackingLedgerResponse(ledger))
}

func (s *Server) readOrder(ctx echo.Context, principal identity.Principal, orderID kernel.UUID) (*order.Order, error) {
	query, err := queries.NewGetOrderQuery(principal, orderID)
	if err != nil {
		return nil, err
	}
	return s.getOrderHandler.Handle(ctx.Request().Context(), query)
}

// bindBody decodes a JSON body. An empty body leaves dst untouched.
func bindBody(ctx echo.Context, dst any) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(ctx, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return nil
}

func newAddress(a servers.Address) (order.Address, error) {
	return order.NewAddress(a.Line1, deref(a.Line2), a.City, deref(a.Province), a.PostalCode, a.Country)
}
