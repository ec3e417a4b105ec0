// internal/service/payment/application/service.go
package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"commerce/internal/pkg/logger"
)

const (
	StatusApproved = "APPROVED"
	StatusDeclined = "DECLINED"
)

// Payment 是一笔支付流水。
type Payment struct {
	PaymentID     string    `json:"paymentId"`
	OrderID       string    `json:"orderId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	ProcessedAt   time.Time `json:"processedAt"`
}

// PaymentService 是模拟支付网关。
// 裁决规则：卡号含 FAIL 的支付方式直接拒付，金额超过上限拒付，其余放行。
type PaymentService struct {
	declineOver float64

	mu       sync.RWMutex
	payments map[string]*Payment
}

func NewPaymentService(declineOver float64) *PaymentService {
	return &PaymentService{
		declineOver: declineOver,
		payments:    make(map[string]*Payment),
	}
}

// Process 处理一笔支付请求并返回裁决结果。
func (s *PaymentService) Process(ctx context.Context, orderID string, amount float64, currency, method string) *Payment {
	payment := &Payment{
		PaymentID:     uuid.New().String(),
		OrderID:       orderID,
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: method,
		Status:        StatusApproved,
		ProcessedAt:   time.Now(),
	}
	if strings.Contains(strings.ToUpper(method), "FAIL") {
		payment.Status = StatusDeclined
	}
	if s.declineOver > 0 && amount > s.declineOver {
		payment.Status = StatusDeclined
	}

	s.mu.Lock()
	s.payments[payment.PaymentID] = payment
	s.mu.Unlock()

	logger.Ctx(ctx).Info().
		Str("payment_id", payment.PaymentID).
		Str("order_id", orderID).
		Float64("amount", amount).
		Str("status", payment.Status).
		Msg("payment processed")
	return payment
}

// Get 返回指定支付流水。
func (s *PaymentService) Get(paymentID string) (*Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payment, ok := s.payments[paymentID]
	return payment, ok
}
