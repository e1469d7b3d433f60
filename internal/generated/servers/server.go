package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List orders visible to the caller, newest first
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context) error
	// Place an order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context, params CreateOrderParams) error
	// Get one order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Cancel a pending order
	// (PATCH /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Pay a pending order
	// (PATCH /api/v1/orders/{orderId}/pay)
	PayOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Move an order to another status
	// (PATCH /api/v1/orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error
	// List restaurants visible to the caller
	// (GET /api/v1/restaurants)
	ListRestaurants(ctx echo.Context, params ListRestaurantsParams) error
	// Get one restaurant with its menu
	// (GET /api/v1/restaurants/{restaurantId})
	GetRestaurant(ctx echo.Context, restaurantId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.ListOrders(ctx)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params CreateOrderParams

	headers := ctx.Request().Header
	// ------------- Optional header parameter "Idempotency-Key" -------------
	if valueList, found := headers[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		var IdempotencyKey string
		n := len(valueList)
		if n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n))
		}

		err = runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", valueList[0], &IdempotencyKey,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
		}

		params.IdempotencyKey = &IdempotencyKey
	}

	return w.Handler.CreateOrder(ctx, params)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetOrder(ctx, orderId)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CancelOrder(ctx, orderId)
}

// PayOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PayOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.PayOrder(ctx, orderId)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.UpdateOrderStatus(ctx, orderId)
}

// ListRestaurants converts echo context to params.
func (w *ServerInterfaceWrapper) ListRestaurants(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params ListRestaurantsParams
	// ------------- Optional query parameter "page" -------------
	err = runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}

	// ------------- Optional query parameter "limit" -------------
	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListRestaurants(ctx, params)
}

// GetRestaurant converts echo context to params.
func (w *ServerInterfaceWrapper) GetRestaurant(ctx echo.Context) error {
	var restaurantId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "restaurantId", ctx.Param("restaurantId"), &restaurantId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter restaurantId: %s", err))
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetRestaurant(ctx, restaurantId)
}

// ------------- Path parameter "orderId" -------------
func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var orderId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
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

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PATCH(baseURL+"/api/v1/orders/:orderId/cancel", wrapper.CancelOrder)
	router.PATCH(baseURL+"/api/v1/orders/:orderId/pay", wrapper.PayOrder)
	router.PATCH(baseURL+"/api/v1/orders/:orderId/status", wrapper.UpdateOrderStatus)
	router.GET(baseURL+"/api/v1/restaurants", wrapper.ListRestaurants)
	router.GET(baseURL+"/api/v1/restaurants/:restaurantId", wrapper.GetRestaurant)
}
