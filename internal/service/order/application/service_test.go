// internal/service/order/application/service_test.go
package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce/internal/service/order/domain"
)

func TestOrderService_CreateAndGet(t *testing.T) {
	service := NewOrderService()
	ctx := context.Background()

	order, err := service.Create(ctx, "customer-1", []domain.Item{{ProductID: "p", Quantity: 2}}, 200)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.StatusPending, order.Status)

	saved, err := service.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
}

func TestOrderService_CreateInvalid(t *testing.T) {
	service := NewOrderService()

	_, err := service.Create(context.Background(), "", nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
}

func TestOrderService_Cancel(t *testing.T) {
	service := NewOrderService()
	ctx := context.Background()

	order, err := service.Create(ctx, "customer-1", []domain.Item{{ProductID: "p", Quantity: 1}}, 100)
	require.NoError(t, err)

	require.NoError(t, service.Cancel(ctx, order.ID))
	saved, err := service.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, saved.Status)

	// 二次取消是冲突，不是幂等成功
	assert.ErrorIs(t, service.Cancel(ctx, order.ID), domain.ErrAlreadyTerminal)
}

func TestOrderService_CancelUnknown(t *testing.T) {
	service := NewOrderService()
	assert.ErrorIs(t, service.Cancel(context.Background(), "missing"), domain.ErrNotFound)
}
