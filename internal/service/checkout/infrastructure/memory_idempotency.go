// internal/service/checkout/infrastructure/memory_idempotency.go
package infrastructure

import (
	"context"
	"sync"
)

// MemoryIdempotencyStore 是进程内的幂等键登记表，单实例部署和测试用。
type MemoryIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]string
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{keys: make(map[string]string)}
}

func (s *MemoryIdempotencyStore) PutIfAbsent(_ context.Context, key, checkoutID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.keys[key]; ok {
		return existing, nil
	}
	s.keys[key] = checkoutID
	return "", nil
}
