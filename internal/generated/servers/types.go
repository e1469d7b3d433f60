// Package servers provides primitives to interact with the openapi HTTP API.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MenuItem defines model for MenuItem.
type MenuItem struct {
	Id    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Price string             `json:"price"`
}

// Restaurant defines model for Restaurant.
type Restaurant struct {
	CreatedAt time.Time          `json:"createdAt"`
	Id        openapi_types.UUID `json:"id"`
	MenuItems []MenuItem         `json:"menuItems"`
	Name      string             `json:"name"`
	Region    string             `json:"region"`
}

// PageMeta defines model for PageMeta.
type PageMeta struct {
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
	Page        int   `json:"page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
}

// RestaurantPage defines model for RestaurantPage.
type RestaurantPage struct {
	Data []Restaurant `json:"data"`
	Meta PageMeta     `json:"meta"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	MenuItemId openapi_types.UUID `json:"menuItemId"`
	Quantity   int                `json:"quantity"`
}

// PaymentMethodInput defines model for PaymentMethodInput.
type PaymentMethodInput struct {
	// Details type-specific fields such as upiId, cardNumber or bankName
	Details *map[string]string `json:"details,omitempty"`

	// Type CASH, UPI, CARD or NETBANKING
	Type string `json:"type"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Items         []NewOrderItem      `json:"items"`
	PaymentMethod *PaymentMethodInput `json:"paymentMethod,omitempty"`
}

// UpdateOrderStatus defines model for UpdateOrderStatus.
type UpdateOrderStatus struct {
	// Status PENDING, PAID or CANCELLED
	Status string `json:"status"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	LineTotal  string             `json:"lineTotal"`
	MenuItemId openapi_types.UUID `json:"menuItemId"`

	// Name Menu item name at the time the order was placed
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// PaymentMethod defines model for PaymentMethod.
type PaymentMethod struct {
	Completed bool              `json:"completed"`
	Details   map[string]string `json:"details"`
	Type      string            `json:"type"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt     time.Time          `json:"createdAt"`
	Id            openapi_types.UUID `json:"id"`
	Items         []OrderItem        `json:"items"`
	PaymentMethod *PaymentMethod     `json:"paymentMethod,omitempty"`
	Region        string             `json:"region"`
	Status        string             `json:"status"`
	TotalAmount   string             `json:"totalAmount"`
	UserId        string             `json:"userId"`
}

// ListRestaurantsParams defines parameters for ListRestaurants.
type ListRestaurantsParams struct {
	Page  *int `form:"page,omitempty" json:"page,omitempty"`
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// CreateOrderParams defines parameters for CreateOrder.
type CreateOrderParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// UpdateOrderStatusJSONRequestBody defines body for UpdateOrderStatus for application/json ContentType.
type UpdateOrderStatusJSONRequestBody = UpdateOrderStatus

// PayOrderJSONRequestBody defines body for PayOrder for application/json ContentType.
type PayOrderJSONRequestBody = PaymentMethodInput
