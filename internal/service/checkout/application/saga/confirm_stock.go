// internal/service/checkout/application/saga/confirm_stock.go
package saga

import (
	"commerce/internal/pkg/logger"
	"commerce/internal/service/checkout/domain"
)

// ConfirmStockHandler 把预占转为最终扣减。
// 此时支付已成功，确认失败只记录告警，不再回滚整个流程。
type ConfirmStockHandler struct {
	NextHandler
}

func (h *ConfirmStockHandler) Handle(checkoutCtx *CheckoutContext) error {
	ctx, span := checkoutCtx.Tracer.Start(checkoutCtx.Ctx, "saga.confirm-stock")
	defer span.End()

	checkoutCtx.Advance(domain.PhaseConfirming)
	co := checkoutCtx.Checkout
	logger.Ctx(ctx).Info().
		Str("checkout_id", co.ID).
		Str("order_id", co.OrderID).
		Msg("【Saga】=> confirming stock")

	for _, item := range co.Items {
		if err := checkoutCtx.Inventory.Confirm(ctx, item.ProductID, item.Quantity, co.OrderID); err != nil {
			// 非关键失败：人工或对账任务兜底
			logger.Ctx(ctx).Error().Err(err).
				Str("checkout_id", co.ID).
				Str("product_id", item.ProductID).
				Msg("confirm stock failed, needs reconciliation")
		}
	}
	return h.executeNext(checkoutCtx)
}
