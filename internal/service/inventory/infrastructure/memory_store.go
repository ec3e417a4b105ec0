// internal/service/inventory/infrastructure/memory_store.go
package infrastructure

import (
	"context"
	"sync"
	"time"

	"commerce/internal/service/inventory/domain"
)

// MemoryStockStore 是 StockStore 的进程内实现。
// 读写锁保护整张表，版本比较在锁内完成，因此 CompareAndSave
// 对并发调用方表现为单个原子操作。
type MemoryStockStore struct {
	mu      sync.RWMutex
	records map[string]*domain.StockRecord
}

func NewMemoryStockStore() *MemoryStockStore {
	return &MemoryStockStore{
		records: make(map[string]*domain.StockRecord),
	}
}

func (s *MemoryStockStore) Get(ctx context.Context, productID string) (*domain.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return record.Clone(), nil
}

func (s *MemoryStockStore) Create(ctx context.Context, record *domain.StockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.ProductID]; ok {
		return domain.ErrInvalidState
	}
	s.records[record.ProductID] = record.Clone()
	return nil
}

func (s *MemoryStockStore) CompareAndSave(ctx context.Context, record *domain.StockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[record.ProductID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Version != record.Version {
		return domain.ErrConflict
	}

	updated := record.Clone()
	updated.Version++
	updated.UpdatedAt = time.Now()
	s.records[record.ProductID] = updated

	record.Version = updated.Version
	record.UpdatedAt = updated.UpdatedAt
	return nil
}

func (s *MemoryStockStore) List(ctx context.Context) ([]*domain.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*domain.StockRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record.Clone())
	}
	return records, nil
}
