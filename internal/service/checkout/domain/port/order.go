// internal/service/checkout/domain/port/order.go
package port

import (
	"context"

	"commerce/internal/service/checkout/domain"
)

// OrderService 是订单服务的出站端口。
type OrderService interface {
	// Create 创建订单，返回订单 ID。
	Create(ctx context.Context, customerID string, items []domain.Item, totalAmount float64) (string, error)

	// Cancel 取消订单，是 Create 的补偿操作，尽力而为。
	Cancel(ctx context.Context, orderID string) error
}
