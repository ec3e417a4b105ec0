// internal/service/checkout/infrastructure/memory_status_store.go
package infrastructure

import (
	"sync"

	"commerce/internal/service/checkout/domain"
)

// MemoryStatusStore 是进程内的 checkout 状态表。
type MemoryStatusStore struct {
	mu      sync.RWMutex
	records map[string]domain.StatusRecord
}

func NewMemoryStatusStore() *MemoryStatusStore {
	return &MemoryStatusStore{records: make(map[string]domain.StatusRecord)}
}

func (s *MemoryStatusStore) Put(record domain.StatusRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.CheckoutID] = record
}

func (s *MemoryStatusStore) Get(checkoutID string) (domain.StatusRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[checkoutID]
	return record, ok
}
