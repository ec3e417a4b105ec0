// internal/service/checkout/application/saga/reserve_stock.go
package saga

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"commerce/internal/pkg/logger"
	"commerce/internal/service/checkout/domain"
)

// ReserveStockHandler 并发为每个商品行预占库存。
// 任何一行失败，已成功的行都要注册对应的释放补偿。
type ReserveStockHandler struct {
	NextHandler
}

func (h *ReserveStockHandler) Handle(checkoutCtx *CheckoutContext) error {
	ctx, span := checkoutCtx.Tracer.Start(checkoutCtx.Ctx, "saga.reserve-stock")
	defer span.End()

	checkoutCtx.Advance(domain.PhaseReserving)
	co := checkoutCtx.Checkout
	logger.Ctx(ctx).Info().
		Str("checkout_id", co.ID).
		Int("items", len(co.Items)).
		Msg("【Saga】=> reserving stock")

	// 预占以 checkoutId 作为预占归属方，此时订单还不存在
	var (
		mu        sync.Mutex
		succeeded []domain.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, item := range co.Items {
		item := item
		g.Go(func() error {
			if err := checkoutCtx.Inventory.Reserve(gctx, item.ProductID, item.Quantity, co.ID); err != nil {
				return errors.Wrapf(err, "reserve stock for product %s", item.ProductID)
			}
			mu.Lock()
			succeeded = append(succeeded, item)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	// 无论成败，已成功的预占都必须可回滚：补偿只覆盖成功的行
	if len(succeeded) > 0 {
		reserved := make([]domain.Item, len(succeeded))
		copy(reserved, succeeded)
		checkoutCtx.AddCompensation(func(compCtx context.Context) {
			for _, item := range reserved {
				if rerr := checkoutCtx.Inventory.Release(compCtx, item.ProductID, item.Quantity, co.ID); rerr != nil {
					logger.Ctx(compCtx).Error().Err(rerr).
						Str("checkout_id", co.ID).
						Str("product_id", item.ProductID).
						Msg("compensation: release stock failed")
					continue
				}
				logger.Ctx(compCtx).Info().
					Str("checkout_id", co.ID).
					Str("product_id", item.ProductID).
					Int("quantity", item.Quantity).
					Msg("compensation: stock released")
			}
		})
	}

	if err != nil {
		co.Fail(domain.ReasonInventoryReservationFailed)
		return err
	}
	return h.executeNext(checkoutCtx)
}
