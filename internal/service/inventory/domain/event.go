// internal/service/inventory/domain/event.go
package domain

import "time"

// EventType 标识一次库存变更的种类。
type EventType string

const (
	EventStockReserved    EventType = "STOCK_RESERVED"
	EventStockReleased    EventType = "STOCK_RELEASED"
	EventStockAllocated   EventType = "STOCK_ALLOCATED"
	EventInventoryUpdated EventType = "INVENTORY_UPDATED"
)

// StockEvent 在每次账本变更成功后发出，携带变更后的记录快照。
// 发布是尽力而为的：发布失败不会回滚它所描述的变更。
type StockEvent struct {
	Type       EventType `json:"type"`
	ProductID  string    `json:"productId"`
	Quantity   int       `json:"quantity"`
	Reserved   int       `json:"reserved"`
	Available  int       `json:"available"`
	OrderID    string    `json:"orderId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewStockEvent 从变更后的记录构造事件。
func NewStockEvent(eventType EventType, record *StockRecord, orderID string) *StockEvent {
	return &StockEvent{
		Type:       eventType,
		ProductID:  record.ProductID,
		Quantity:   record.Quantity,
		Reserved:   record.Reserved,
		Available:  record.Available(),
		OrderID:    orderID,
		OccurredAt: time.Now(),
	}
}
