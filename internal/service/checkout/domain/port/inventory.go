// internal/service/checkout/domain/port/inventory.go
package port

import "context"

// InventoryService 是库存协调器的出站端口。
type InventoryService interface {
	// Reserve 为给定的订单/结算预占库存。
	Reserve(ctx context.Context, productID string, qty int, orderID string) error

	// Release 是 Reserve 的补偿操作，释放已预占的库存。
	Release(ctx context.Context, productID string, qty int, orderID string) error

	// Confirm 把预占转为最终扣减。
	Confirm(ctx context.Context, productID string, qty int, orderID string) error
}
