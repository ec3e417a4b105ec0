// internal/service/checkout/domain/port/payment.go
package port

import "context"

// Decision 是支付服务的裁决结果。
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionDeclined Decision = "DECLINED"
)

// PaymentResult 携带支付裁决和支付流水 ID。
type PaymentResult struct {
	Decision  Decision
	PaymentID string
}

// PaymentService 是支付服务的出站端口。
type PaymentService interface {
	Process(ctx context.Context, orderID string, amount float64, currency, method string) (*PaymentResult, error)
}
