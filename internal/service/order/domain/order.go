// internal/service/order/domain/order.go
package domain

import (
	"errors"
	"time"
)

// Status 是订单的生命周期状态。
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCancelled Status = "CANCELLED"
	StatusPaid      Status = "PAID"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrInvalidOrder    = errors.New("invalid order")
	ErrAlreadyTerminal = errors.New("order already in a terminal status")
)

// Item 是订单中的一个行项目。
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order 是订单聚合根。
type Order struct {
	ID          string    `json:"orderId"`
	CustomerID  string    `json:"customerId"`
	Items       []Item    `json:"items"`
	TotalAmount float64   `json:"totalAmount"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewOrder 校验并创建一个待支付订单。
func NewOrder(id, customerID string, items []Item, totalAmount float64) (*Order, error) {
	if id == "" || customerID == "" || len(items) == 0 || totalAmount < 0 {
		return nil, ErrInvalidOrder
	}
	now := time.Now()
	return &Order{
		ID:          id,
		CustomerID:  customerID,
		Items:       items,
		TotalAmount: totalAmount,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Cancel 取消订单。已支付或已取消的订单不可再取消。
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return ErrAlreadyTerminal
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}
