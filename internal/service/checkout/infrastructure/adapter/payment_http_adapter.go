// internal/service/checkout/infrastructure/adapter/payment_http_adapter.go
package adapter

import (
	"context"

	"commerce/internal/pkg/httpclient"
	"commerce/internal/service/checkout/domain/port"
)

// PaymentHTTPAdapter 通过 HTTP 调用支付服务。
type PaymentHTTPAdapter struct {
	client  *httpclient.Client
	baseURL string
}

func NewPaymentHTTPAdapter(client *httpclient.Client, baseURL string) *PaymentHTTPAdapter {
	return &PaymentHTTPAdapter{client: client, baseURL: baseURL}
}

type processPaymentRequest struct {
	OrderID       string  `json:"orderId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"paymentMethod"`
}

type processPaymentResponse struct {
	Status    string `json:"status"`
	PaymentID string `json:"paymentId"`
}

func (a *PaymentHTTPAdapter) Process(ctx context.Context, orderID string, amount float64, currency, method string) (*port.PaymentResult, error) {
	body := processPaymentRequest{
		OrderID:       orderID,
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: method,
	}
	var resp processPaymentResponse
	if err := a.client.PostJSON(ctx, a.baseURL+"/api/v1/payments/process", body, &resp); err != nil {
		return nil, err
	}
	return &port.PaymentResult{
		Decision:  port.Decision(resp.Status),
		PaymentID: resp.PaymentID,
	}, nil
}
