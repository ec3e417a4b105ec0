// internal/service/checkout/domain/status.go
package domain

import (
	"context"
	"time"
)

// StatusRecord 是一次 checkout 的可查询状态。
type StatusRecord struct {
	CheckoutID    string    `json:"checkoutId"`
	Phase         Phase     `json:"phase"`
	Reason        Reason    `json:"reason,omitempty"`
	OrderID       string    `json:"orderId,omitempty"`
	TotalAmount   float64   `json:"totalAmount,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	StartedAt     time.Time `json:"startedAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// StatusStore 是 checkout 状态表的抽象。
// 只有编排器写入；查询方轮询读取。未知 ID 返回 found=false 而不是错误。
type StatusStore interface {
	Put(record StatusRecord)
	Get(checkoutID string) (StatusRecord, bool)
}

// IdempotencyStore 把幂等键映射到它第一次对应的 checkout ID。
type IdempotencyStore interface {
	// PutIfAbsent 尝试写入 key -> checkoutID 的映射。
	// 如果 key 已存在，返回已登记的 checkout ID；首次写入时返回空串。
	PutIfAbsent(ctx context.Context, key, checkoutID string) (string, error)
}
