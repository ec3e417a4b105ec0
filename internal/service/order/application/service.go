// internal/service/order/application/service.go
package application

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"commerce/internal/pkg/logger"
	"commerce/internal/service/order/domain"
)

// OrderService 是订单服务的应用层，订单保存在进程内。
// 这是结算原型的订单后端，持久化不在它的职责范围内。
type OrderService struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderService() *OrderService {
	return &OrderService{orders: make(map[string]*domain.Order)}
}

// Create 创建一个待支付订单并返回订单 ID。
func (s *OrderService) Create(ctx context.Context, customerID string, items []domain.Item, totalAmount float64) (*domain.Order, error) {
	order, err := domain.NewOrder(uuid.New().String(), customerID, items, totalAmount)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.orders[order.ID] = order
	s.mu.Unlock()

	logger.Ctx(ctx).Info().
		Str("order_id", order.ID).
		Str("customer_id", customerID).
		Float64("total_amount", totalAmount).
		Msg("order created")
	return order, nil
}

// Cancel 取消指定订单。
func (s *OrderService) Cancel(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := order.Cancel(); err != nil {
		return err
	}

	logger.Ctx(ctx).Info().
		Str("order_id", orderID).
		Msg("order cancelled")
	return nil
}

// Get 返回指定订单。
func (s *OrderService) Get(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order, nil
}
