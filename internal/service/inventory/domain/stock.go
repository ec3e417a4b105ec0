// internal/service/inventory/domain/stock.go
package domain

import (
	"time"
)

// StockRecord 是库存账本中单个商品的计数记录。
// 不变式: 0 <= Reserved <= Quantity，任何变更方法失败时都不修改状态。
// Version 是乐观锁的冲突令牌，只由 StockStore 在写入成功时递增。
type StockRecord struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Reserved  int       `json:"reserved"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewStockRecord 创建一条新的库存记录。
func NewStockRecord(productID string, quantity int) (*StockRecord, error) {
	if productID == "" || quantity < 0 {
		return nil, ErrInvalidState
	}
	return &StockRecord{
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	}, nil
}

// Available 返回可售数量 (总量减去在途预占)。
func (r *StockRecord) Available() int {
	return r.Quantity - r.Reserved
}

// Reserve 对在途订单预占 qty 个单位。
func (r *StockRecord) Reserve(qty int) error {
	if qty <= 0 {
		return ErrInvalidState
	}
	if r.Available() < qty {
		return ErrInsufficientStock
	}
	r.Reserved += qty
	return nil
}

// Release 释放 qty 个已预占的单位，是 Reserve 的补偿操作。
func (r *StockRecord) Release(qty int) error {
	if qty <= 0 || qty > r.Reserved {
		return ErrInvalidState
	}
	r.Reserved -= qty
	return nil
}

// Confirm 把预占转为最终扣减：总量和预占同时减少，销售完成。
func (r *StockRecord) Confirm(qty int) error {
	if qty <= 0 || qty > r.Reserved {
		return ErrInvalidState
	}
	r.Quantity -= qty
	r.Reserved -= qty
	return nil
}

// SetQuantity 管理员补货/盘点入口，只改总量不动预占。
// 新总量不能低于当前预占量，否则会破坏账本不变式。
func (r *StockRecord) SetQuantity(qty int) error {
	if qty < 0 || qty < r.Reserved {
		return ErrInvalidState
	}
	r.Quantity = qty
	return nil
}

// Clone 返回记录的副本，避免调用方拿到共享指针后绕过账本修改。
func (r *StockRecord) Clone() *StockRecord {
	c := *r
	return &c
}
