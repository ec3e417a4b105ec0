// internal/service/checkout/application/saga/create_order.go
package saga

import (
	"context"

	"github.com/pkg/errors"

	"commerce/internal/pkg/logger"
	"commerce/internal/service/checkout/domain"
)

// CreateOrderHandler 调用订单服务落单。
type CreateOrderHandler struct {
	NextHandler
}

func (h *CreateOrderHandler) Handle(checkoutCtx *CheckoutContext) error {
	ctx, span := checkoutCtx.Tracer.Start(checkoutCtx.Ctx, "saga.create-order")
	defer span.End()

	checkoutCtx.Advance(domain.PhaseCreatingOrder)
	co := checkoutCtx.Checkout
	logger.Ctx(ctx).Info().
		Str("checkout_id", co.ID).
		Float64("total_amount", co.TotalAmount).
		Msg("【Saga】=> creating order")

	orderID, err := checkoutCtx.Orders.Create(ctx, co.CustomerID, co.Items, co.TotalAmount)
	if err != nil {
		co.Fail(domain.ReasonOrderCreationFailed)
		return errors.Wrap(err, "create order")
	}
	co.OrderID = orderID

	checkoutCtx.AddCompensation(func(compCtx context.Context) {
		if cerr := checkoutCtx.Orders.Cancel(compCtx, orderID); cerr != nil {
			logger.Ctx(compCtx).Error().Err(cerr).
				Str("checkout_id", co.ID).
				Str("order_id", orderID).
				Msg("compensation: cancel order failed")
			return
		}
		logger.Ctx(compCtx).Info().
			Str("checkout_id", co.ID).
			Str("order_id", orderID).
			Msg("compensation: order cancelled")
	})

	logger.Ctx(ctx).Info().
		Str("checkout_id", co.ID).
		Str("order_id", orderID).
		Msg("order created")
	return h.executeNext(checkoutCtx)
}
