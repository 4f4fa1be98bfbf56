package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCanceled   OrderStatus = "Canceled"
)

// Normalize maps unknown or empty statuses to Processing.
func (s OrderStatus) Normalize() OrderStatus {
	switch s {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCanceled:
		return s
	default:
		return OrderStatusProcessing
	}
}

// OrderItem is a snapshot of a product at purchase time. It is decoupled from
// the live catalog entry.
type OrderItem struct {
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      Size            `json:"size"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID              string          `json:"_id"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress Address         `json:"shippingAddress"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// UnmarshalJSON accepts the legacy orderStatus field when status is absent.
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	var aux struct {
		plain
		OrderStatus OrderStatus `json:"orderStatus"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*o = Order(aux.plain)
	if o.Status == "" {
		o.Status = aux.OrderStatus
	}
	o.Status = o.Status.Normalize()
	return nil
}

// CheckoutRequest is the body of POST /checkout.
type CheckoutRequest struct {
	SelectedAddressID string          `json:"selectedAddressId"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
}

// CheckoutResult is returned to the caller of a successful checkout.
type CheckoutResult struct {
	OrderID string `json:"orderId"`
	Message string `json:"message,omitempty"`
}
