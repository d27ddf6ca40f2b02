package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every assignable status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the console refuses to delete an order in s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order as returned by the orders service. TotalAmount and the line item
// prices are computed server-side and never sent back.
type Order struct {
	ID              int64           `json:"id,omitempty"`
	UserID          int64           `json:"userId"`
	UserName        string          `json:"userName,omitempty"`
	ShippingAddress string          `json:"shippingAddress"`
	Status          OrderStatus     `json:"orderStatus"`
	Items           []OrderLineItem `json:"orderItems"`
	TotalAmount     Amount          `json:"totalAmount"`
	OrderDate       string          `json:"orderDate,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// UnmarshalJSON also accepts the short "status" and "items" names some
// service versions emit.
func (o *Order) UnmarshalJSON(data []byte) error {
	type orderAlias Order
	aux := struct {
		*orderAlias
		AltStatus OrderStatus     `json:"status"`
		AltItems  []OrderLineItem `json:"items"`
	}{orderAlias: (*orderAlias)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if o.Status == "" {
		o.Status = aux.AltStatus
	}
	if o.Items == nil {
		o.Items = aux.AltItems
	}
	return nil
}

// ItemCount sums the quantities of all line items.
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

type OrderLineItem struct {
	ID          int64   `json:"id,omitempty"`
	OrderID     int64   `json:"orderId,omitempty"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   *Amount `json:"unitPrice,omitempty"`
	Subtotal    *Amount `json:"subtotal,omitempty"`
}

// UnmarshalJSON accepts a quantity sent as a number or a numeric string.
// Anything else counts as zero so one bad row does not fail a whole list.
func (i *OrderLineItem) UnmarshalJSON(data []byte) error {
	type itemAlias OrderLineItem
	aux := struct {
		*itemAlias
		Quantity json.RawMessage `json:"quantity"`
	}{itemAlias: (*itemAlias)(i)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	i.Quantity = parseQuantity(aux.Quantity)
	return nil
}

func parseQuantity(raw json.RawMessage) int {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	UserID          int64             `json:"userId"`
	ShippingAddress string            `json:"shippingAddress"`
	Items           []LineItemRequest `json:"items"`
}

type LineItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateOrderStatusRequest is the body of PUT /orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}
