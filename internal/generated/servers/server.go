package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Place an order for a single vendor
	// (POST /orders)
	CreateOrder(ctx echo.Context, params CreateOrderParams) error
	// List orders visible to a vendor or an admin
	// (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// List the orders of one consumer or vendor
	// (GET /orders/user/{userId})
	ListUserOrders(ctx echo.Context, userId string, params ListUserOrdersParams) error
	// Fetch one order
	// (GET /orders/{id})
	GetOrder(ctx echo.Context, id string) error
	// Append a fulfilment status to the tracking ledger
	// (PUT /orders/{id}/status)
	UpdateOrderStatus(ctx echo.Context, id string) error
	// Cancel an order that has not shipped
	// (POST /orders/{id}/cancel)
	CancelOrder(ctx echo.Context, id string) error
	// Fetch the tracking ledger of an order, oldest event first
	// (GET /orders/{id}/tracking)
	GetOrderTracking(ctx echo.Context, id string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func badParameter(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var params CreateOrderParams

	headers := ctx.Request().Header
	if valueList, found := headers[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		var idempotencyKey string
		if n := len(valueList); n != 1 {
			return echo.NewHTTPError(
				http.StatusBadRequest,
				fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n),
			)
		}

		err := runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", valueList[0], &idempotencyKey,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return badParameter("Idempotency-Key", err)
		}
		params.IdempotencyKey = &idempotencyKey
	}

	return w.Handler.CreateOrder(ctx, params)
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page); err != nil {
		return badParameter("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return badParameter("limit", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "orderStatus", ctx.QueryParams(), &params.OrderStatus); err != nil {
		return badParameter("orderStatus", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "dateFrom", ctx.QueryParams(), &params.DateFrom); err != nil {
		return badParameter("dateFrom", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "dateTo", ctx.QueryParams(), &params.DateTo); err != nil {
		return badParameter("dateTo", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "consumerId", ctx.QueryParams(), &params.ConsumerId); err != nil {
		return badParameter("consumerId", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "vendorId", ctx.QueryParams(), &params.VendorId); err != nil {
		return badParameter("vendorId", err)
	}

	return w.Handler.ListOrders(ctx, params)
}

// ListUserOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListUserOrders(ctx echo.Context) error {
	var userId string
	err := runtime.BindStyledParameterWithOptions("simple", "userId", ctx.Param("userId"), &userId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return badParameter("userId", err)
	}

	var params ListUserOrdersParams

	if err = runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page); err != nil {
		return badParameter("page", err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return badParameter("limit", err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "orderStatus", ctx.QueryParams(), &params.OrderStatus); err != nil {
		return badParameter("orderStatus", err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "dateFrom", ctx.QueryParams(), &params.DateFrom); err != nil {
		return badParameter("dateFrom", err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "dateTo", ctx.QueryParams(), &params.DateTo); err != nil {
		return badParameter("dateTo", err)
	}

	return w.Handler.ListUserOrders(ctx, userId, params)
}

func bindOrderID(ctx echo.Context) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", badParameter("id", err)
	}
	return id, nil
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, id)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, id)
}

// GetOrderTracking converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderTracking(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrderTracking(ctx, id)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths, so
// that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders", wrapper.ListOrders)
	router.GET(baseURL+"/orders/user/:userId", wrapper.ListUserOrders)
	router.GET(baseURL+"/orders/:id", wrapper.GetOrder)
	router.PUT(baseURL+"/orders/:id/status", wrapper.UpdateOrderStatus)
	router.POST(baseURL+"/orders/:id/cancel", wrapper.CancelOrder)
	router.GET(baseURL+"/orders/:id/tracking", wrapper.GetOrderTracking)
}
