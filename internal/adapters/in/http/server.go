// Package http is the REST adapter. It implements servers.ServerInterface,
// turns requests into commands and queries, and maps results and error
// kinds onto responses.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case handlers as the server sees them.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	PayOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PayOrderCommand) (*order.Order, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]*order.Order, error)
	}
	ListRestaurantsHandler interface {
		Handle(ctx context.Context, query queries.ListRestaurantsQuery) (queries.ListRestaurantsQueryResponse, error)
	}
	GetRestaurantHandler interface {
		Handle(ctx context.Context, query queries.GetRestaurantQuery) (*catalog.Restaurant, error)
	}
)

// Handlers groups every use case the server dispatches to.
type Handlers struct {
	CreateOrder       CreateOrderHandler
	UpdateOrderStatus UpdateOrderStatusHandler
	CancelOrder       CancelOrderHandler
	PayOrder          PayOrderHandler
	GetOrder          GetOrderHandler
	ListOrders        ListOrdersHandler
	ListRestaurants   ListRestaurantsHandler
	GetRestaurant     GetRestaurantHandler
}

// Server implements servers.ServerInterface.
type Server struct {
	handlers    Handlers
	idempotency ports.IdempotencyStore
	logger      *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer wires the handlers. idempotency may be nil, in which case the
// Idempotency-Key header is ignored.
func NewServer(handlers Handlers, idempotency ports.IdempotencyStore, logger *slog.Logger) *Server {
	return &Server{
		handlers:    handlers,
		idempotency: idempotency,
		logger:      logger.With("component", "http"),
	}
}

// ListRestaurants handles GET /api/v1/restaurants.
func (s *Server) ListRestaurants(ctx echo.Context, params servers.ListRestaurantsParams) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	page, limit := 0, 0
	if params.Page != nil {
		page = *params.Page
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListRestaurantsQuery(caller, page, limit)
	if err != nil {
		return s.writeError(ctx, err)
	}

	resp, err := s.handlers.ListRestaurants.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRestaurantPage(resp))
}

// GetRestaurant handles GET /api/v1/restaurants/{restaurantId}.
func (s *Server) GetRestaurant(ctx echo.Context, restaurantId openapi_types.UUID) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	id, err := kernel.UUIDFromBytes(restaurantId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetRestaurantQuery(id, caller)
	if err != nil {
		return s.writeError(ctx, err)
	}

	restaurant, err := s.handlers.GetRestaurant.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRestaurant(restaurant))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(caller)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id, caller)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// CreateOrder handles POST /api/v1/orders. With an Idempotency-Key a retry
// returns the order created by the first attempt.
func (s *Server) CreateOrder(ctx echo.Context, params servers.CreateOrderParams) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var body servers.NewOrder
	if err = ctx.Bind(&body); err != nil {
		return s.writeError(ctx, errInvalidBody(err))
	}

	lines := make([]services.PricingLine, 0, len(body.Items))
	for _, item := range body.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(item.MenuItemId[:])
		if idErr != nil {
			return s.writeError(ctx, idErr)
		}
		lines = append(lines, services.PricingLine{MenuItemID: menuItemID, Quantity: item.Quantity})
	}

	var payment *commands.PaymentInput
	if body.PaymentMethod != nil {
		payment = &commands.PaymentInput{Type: body.PaymentMethod.Type, Details: detailsOf(body.PaymentMethod)}
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), caller, lines, payment)
	if err != nil {
		return s.writeError(ctx, err)
	}

	reqCtx := ctx.Request().Context()
	if params.IdempotencyKey == nil || s.idempotency == nil {
		o, handleErr := s.handlers.CreateOrder.Handle(reqCtx, cmd)
		if handleErr != nil {
			return s.writeError(ctx, handleErr)
		}
		return ctx.JSON(http.StatusCreated, toOrder(o))
	}

	key := *params.IdempotencyKey
	existingID, reserved, err := s.idempotency.Reserve(reqCtx, caller.UserID(), key)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if !reserved {
		return s.replayCreatedOrder(ctx, caller, existingID)
	}

	o, err := s.handlers.CreateOrder.Handle(reqCtx, cmd)

	// The key must be settled even when the client has gone away.
	settleCtx := context.WithoutCancel(reqCtx)
	if err != nil {
		if releaseErr := s.idempotency.Release(settleCtx, caller.UserID(), key); releaseErr != nil {
			s.logger.WarnContext(settleCtx, "failed to release idempotency key", "error", releaseErr)
		}
		return s.writeError(ctx, err)
	}

	if err = s.idempotency.Complete(settleCtx, caller.UserID(), key, o.ID().String()); err != nil {
		s.logger.WarnContext(settleCtx, "failed to record idempotency key",
			"orderId", o.ID().String(), "error", err)
	}
	return ctx.JSON(http.StatusCreated, toOrder(o))
}

func (s *Server) replayCreatedOrder(ctx echo.Context, caller identity.Identity, storedID string) error {
	id, err := kernel.UUIDFromString(storedID)
	if err != nil {
		// Not wrapped: a bad stored id is an internal fault, not a bad request.
		return s.writeError(ctx, fmt.Errorf("corrupt idempotency record %q: %v", storedID, err)) //nolint:errorlint
	}

	query, err := queries.NewGetOrderQuery(id, caller)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	s.logger.InfoContext(ctx.Request().Context(), "replayed idempotent order creation",
		"orderId", storedID, "userId", caller.UserID())
	return ctx.JSON(http.StatusCreated, toOrder(o))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var body servers.UpdateOrderStatus
	if err = ctx.Bind(&body); err != nil {
		return s.writeError(ctx, errInvalidBody(err))
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, caller, body.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// CancelOrder handles PATCH /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id, caller)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// PayOrder handles PATCH /api/v1/orders/{orderId}/pay.
func (s *Server) PayOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var body servers.PaymentMethodInput
	if err = ctx.Bind(&body); err != nil {
		return s.writeError(ctx, errInvalidBody(err))
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewPayOrderCommand(id, caller, body.Type, detailsOf(&body))
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.handlers.PayOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

func detailsOf(input *servers.PaymentMethodInput) map[string]string {
	if input == nil || input.Details == nil {
		return nil
	}
	return *input.Details
}
