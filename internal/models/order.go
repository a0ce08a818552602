package models

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// AdminOrderStatuses are the transitions offered on the admin dashboard.
var AdminOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID   ID              `json:"productId,omitempty"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type OrderCustomer struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type Order struct {
	ID              ID              `json:"id"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	Items           []OrderItem     `json:"orderItems"`
	User            *OrderCustomer  `json:"user,omitempty"`
	CreatedAt       Timestamp       `json:"createdAt"`
}

// OrderLine is one (product, quantity) pair submitted at checkout.
type OrderLine struct {
	ProductID ID  `json:"productId"`
	Quantity  int `json:"quantity"`
}

type CreateOrderRequest struct {
	Items           []OrderLine `json:"items"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
}

// CheckoutRequest is the checkout form.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,min=5,max=500"`
	PaymentMethod   string `json:"payment_method" validate:"omitempty,oneof=COD CARD"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=PENDING CONFIRMED PROCESSING SHIPPED DELIVERED CANCELLED"`
}
