// internal/service/inventory/application/service.go
package application

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"commerce/internal/pkg/logger"
	"commerce/internal/pkg/metrics"
	"commerce/internal/pkg/retry"
	"commerce/internal/service/inventory/domain"
)

const (
	// 乐观锁冲突的重试边界：3 次尝试，固定 100ms 退避。
	conflictMaxAttempts = 3
	conflictBackoff     = 100 * time.Millisecond
)

// InventoryService 是库存的应用服务（预占协调器）。
// 它把一次预占/释放/确认意图翻译为账本上的 CAS 写入，
// 冲突时有界重试，成功后发出一条领域事件。
type InventoryService struct {
	store     domain.StockStore
	publisher domain.EventPublisher
	tracer    trace.Tracer

	retryPolicy retry.Policy
}

func NewInventoryService(store domain.StockStore, publisher domain.EventPublisher, tracer trace.Tracer) *InventoryService {
	return &InventoryService{
		store:     store,
		publisher: publisher,
		tracer:    tracer,
		retryPolicy: retry.Policy{
			MaxAttempts: conflictMaxAttempts,
			Backoff:     conflictBackoff,
			// 只有 CAS 冲突值得重试；业务规则错误是确定性结果
			Retryable: func(err error) bool { return errors.Is(err, domain.ErrConflict) },
		},
	}
}

// Reserve 为订单预占库存。
func (s *InventoryService) Reserve(ctx context.Context, productID string, qty int, orderID string) (*domain.StockRecord, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Reserve")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("quantity", qty),
		attribute.String("order.id", orderID),
	)

	record, err := s.mutate(ctx, productID, func(r *domain.StockRecord) error {
		return r.Reserve(qty)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stock reservation failed")
		return nil, err
	}

	s.publish(ctx, domain.NewStockEvent(domain.EventStockReserved, record, orderID))
	logger.Ctx(ctx).Info().
		Str("product_id", productID).Int("quantity", qty).Str("order_id", orderID).
		Msg("stock reserved")
	return record, nil
}

// Release 释放已预占的库存，是 Reserve 的补偿操作。
func (s *InventoryService) Release(ctx context.Context, productID string, qty int, orderID string) (*domain.StockRecord, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Release")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("quantity", qty),
		attribute.String("order.id", orderID),
	)

	record, err := s.mutate(ctx, productID, func(r *domain.StockRecord) error {
		return r.Release(qty)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stock release failed")
		return nil, err
	}

	s.publish(ctx, domain.NewStockEvent(domain.EventStockReleased, record, orderID))
	logger.Ctx(ctx).Info().
		Str("product_id", productID).Int("quantity", qty).Str("order_id", orderID).
		Msg("reserved stock released")
	return record, nil
}

// Confirm 把预占转为最终扣减，销售完成。
func (s *InventoryService) Confirm(ctx context.Context, productID string, qty int, orderID string) (*domain.StockRecord, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Confirm")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("quantity", qty),
		attribute.String("order.id", orderID),
	)

	record, err := s.mutate(ctx, productID, func(r *domain.StockRecord) error {
		return r.Confirm(qty)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stock allocation failed")
		return nil, err
	}

	s.publish(ctx, domain.NewStockEvent(domain.EventStockAllocated, record, orderID))
	logger.Ctx(ctx).Info().
		Str("product_id", productID).Int("quantity", qty).Str("order_id", orderID).
		Msg("stock allocation confirmed")
	return record, nil
}

// SetQuantity 管理员补货入口，只改总量。
func (s *InventoryService) SetQuantity(ctx context.Context, productID string, qty int) (*domain.StockRecord, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.SetQuantity")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("quantity", qty),
	)

	record, err := s.mutate(ctx, productID, func(r *domain.StockRecord) error {
		return r.SetQuantity(qty)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inventory update failed")
		return nil, err
	}

	s.publish(ctx, domain.NewStockEvent(domain.EventInventoryUpdated, record, ""))
	logger.Ctx(ctx).Info().
		Str("product_id", productID).Int("quantity", qty).
		Msg("inventory quantity updated")
	return record, nil
}

// CreateProduct 新建一条库存记录（初始化/预置用）。
func (s *InventoryService) CreateProduct(ctx context.Context, productID string, quantity int) (*domain.StockRecord, error) {
	record, err := domain.NewStockRecord(productID, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Availability 检查可用库存是否满足请求数量。
func (s *InventoryService) Availability(ctx context.Context, productID string, qty int) (bool, error) {
	record, err := s.store.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.Available() >= qty, nil
}

// Get 返回单个商品的库存记录。
func (s *InventoryService) Get(ctx context.Context, productID string) (*domain.StockRecord, error) {
	return s.store.Get(ctx, productID)
}

// LowStock 返回可用量低于阈值的商品。
func (s *InventoryService) LowStock(ctx context.Context, threshold int) ([]*domain.StockRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]*domain.StockRecord, 0)
	for _, record := range records {
		if record.Available() < threshold {
			low = append(low, record)
		}
	}
	return low, nil
}

// mutate 是所有账本写入共用的 read-apply-CAS 循环。
// 读出记录、应用业务变更、带版本条件写回；
// 只在 CAS 冲突时重试，业务错误原样返回且状态不变。
func (s *InventoryService) mutate(ctx context.Context, productID string, apply func(*domain.StockRecord) error) (*domain.StockRecord, error) {
	var updated *domain.StockRecord
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		record, err := s.store.Get(ctx, productID)
		if err != nil {
			return err
		}
		if err := apply(record); err != nil {
			return err
		}
		if err := s.store.CompareAndSave(ctx, record); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				metrics.StockConflicts.Inc()
				logger.Ctx(ctx).Warn().
					Str("product_id", productID).
					Msg("optimistic lock conflict, retrying")
			}
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// publish 尽力而为地发出事件：失败只记日志，绝不回滚或阻塞已完成的变更。
func (s *InventoryService) publish(ctx context.Context, event *domain.StockEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		metrics.StockEventsDropped.Inc()
		logger.Ctx(ctx).Error().Err(err).
			Str("type", string(event.Type)).
			Str("product_id", event.ProductID).
			Msg("failed to publish stock event")
	}
}
