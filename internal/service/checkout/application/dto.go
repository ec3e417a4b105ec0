// internal/service/checkout/application/dto.go
package application

import (
	"time"

	"commerce/internal/service/checkout/domain"
)

// CheckoutRequest 是结算入口的请求体。
type CheckoutRequest struct {
	CustomerID     string        `json:"customerId"`
	Items          []domain.Item `json:"items"`
	PaymentMethod  string        `json:"paymentMethod"`
	IdempotencyKey string        `json:"idempotencyKey,omitempty"`
}

// CheckoutResponse 是结算结果，成功与失败共用一个结构。
type CheckoutResponse struct {
	Success          bool      `json:"success"`
	CheckoutID       string    `json:"checkoutId"`
	OrderID          string    `json:"orderId,omitempty"`
	TotalAmount      float64   `json:"totalAmount,omitempty"`
	Currency         string    `json:"currency,omitempty"`
	Status           string    `json:"status"`
	ErrorMessage     string    `json:"errorMessage,omitempty"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
	Timestamp        time.Time `json:"timestamp"`
}

// StatusResponse 是状态查询接口的响应体。
type StatusResponse struct {
	CheckoutID  string    `json:"checkoutId"`
	Phase       string    `json:"phase"`
	Reason      string    `json:"reason,omitempty"`
	OrderID     string    `json:"orderId,omitempty"`
	TotalAmount float64   `json:"totalAmount,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	Terminal    bool      `json:"terminal"`
	StartedAt   time.Time `json:"startedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func statusResponseFrom(rec domain.StatusRecord) StatusResponse {
	return StatusResponse{
		CheckoutID:  rec.CheckoutID,
		Phase:       string(rec.Phase),
		Reason:      string(rec.Reason),
		OrderID:     rec.OrderID,
		TotalAmount: rec.TotalAmount,
		Currency:    rec.Currency,
		Terminal:    rec.Phase == domain.PhaseCompleted || rec.Phase == domain.PhaseFailed,
		StartedAt:   rec.StartedAt,
		UpdatedAt:   rec.LastUpdatedAt,
	}
}
