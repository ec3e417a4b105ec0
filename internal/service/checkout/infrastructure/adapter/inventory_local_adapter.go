// internal/service/checkout/infrastructure/adapter/inventory_local_adapter.go
package adapter

import (
	"context"

	inventoryapp "commerce/internal/service/inventory/application"
)

// InventoryLocalAdapter 在同进程内直接调用库存应用服务，
// 用于单体部署模式和集成测试，绕过 HTTP 一跳。
type InventoryLocalAdapter struct {
	service *inventoryapp.InventoryService
}

func NewInventoryLocalAdapter(service *inventoryapp.InventoryService) *InventoryLocalAdapter {
	return &InventoryLocalAdapter{service: service}
}

func (a *InventoryLocalAdapter) Reserve(ctx context.Context, productID string, qty int, orderID string) error {
	_, err := a.service.Reserve(ctx, productID, qty, orderID)
	return err
}

func (a *InventoryLocalAdapter) Release(ctx context.Context, productID string, qty int, orderID string) error {
	_, err := a.service.Release(ctx, productID, qty, orderID)
	return err
}

func (a *InventoryLocalAdapter) Confirm(ctx context.Context, productID string, qty int, orderID string) error {
	_, err := a.service.Confirm(ctx, productID, qty, orderID)
	return err
}
