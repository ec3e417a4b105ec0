// internal/service/inventory/domain/store.go
package domain

import "context"

// StockStore 是库存记录的持久化接口。
// 它位于领域层，但由基础设施层实现（内存表或 MySQL）。
type StockStore interface {
	// Get 按商品 ID 查找记录，不存在时返回 ErrNotFound。
	Get(ctx context.Context, productID string) (*StockRecord, error)

	// Create 新建记录，商品已存在时返回 ErrInvalidState。
	Create(ctx context.Context, record *StockRecord) error

	// CompareAndSave 以 record.Version 为条件写回记录：
	// 版本已被其他写者推进时返回 ErrConflict，不覆盖任何数据；
	// 成功时推进存储中的版本并同步更新 record.Version。
	CompareAndSave(ctx context.Context, record *StockRecord) error

	// List 返回全部记录，用于管理类查询。
	List(ctx context.Context) ([]*StockRecord, error)
}

// EventPublisher 是库存事件的出站端口。
type EventPublisher interface {
	Publish(ctx context.Context, event *StockEvent) error
}
