// internal/service/payment/application/service_test.go
package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_Approves(t *testing.T) {
	service := NewPaymentService(10000)

	payment := service.Process(context.Background(), "order-1", 300, "USD", "VISA-4242")
	assert.Equal(t, StatusApproved, payment.Status)
	assert.NotEmpty(t, payment.PaymentID)

	saved, ok := service.Get(payment.PaymentID)
	require.True(t, ok)
	assert.Equal(t, "order-1", saved.OrderID)
}

func TestPaymentService_DeclinesFailCard(t *testing.T) {
	service := NewPaymentService(10000)

	payment := service.Process(context.Background(), "order-1", 100, "USD", "fail-card")
	assert.Equal(t, StatusDeclined, payment.Status)
}

func TestPaymentService_DeclinesOverLimit(t *testing.T) {
	service := NewPaymentService(500)

	payment := service.Process(context.Background(), "order-1", 501, "USD", "VISA-4242")
	assert.Equal(t, StatusDeclined, payment.Status)

	payment = service.Process(context.Background(), "order-2", 500, "USD", "VISA-4242")
	assert.Equal(t, StatusApproved, payment.Status)
}

func TestPaymentService_GetUnknown(t *testing.T) {
	service := NewPaymentService(0)

	_, ok := service.Get("missing")
	assert.False(t, ok)
}
