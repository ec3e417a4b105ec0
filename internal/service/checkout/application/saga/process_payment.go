// internal/service/checkout/application/saga/process_payment.go
package saga

import (
	"github.com/pkg/errors"

	"commerce/internal/pkg/logger"
	"commerce/internal/service/checkout/domain"
	"commerce/internal/service/checkout/domain/port"
)

// ProcessPaymentHandler 请求支付裁决。
// 拒付和调用失败都视为支付失败，触发前序补偿。
type ProcessPaymentHandler struct {
	NextHandler
}

func (h *ProcessPaymentHandler) Handle(checkoutCtx *CheckoutContext) error {
	ctx, span := checkoutCtx.Tracer.Start(checkoutCtx.Ctx, "saga.process-payment")
	defer span.End()

	checkoutCtx.Advance(domain.PhaseProcessingPayment)
	co := checkoutCtx.Checkout
	logger.Ctx(ctx).Info().
		Str("checkout_id", co.ID).
		Str("order_id", co.OrderID).
		Float64("amount", co.TotalAmount).
		Str("currency", co.Currency).
		Msg("【Saga】=> processing payment")

	result, err := checkoutCtx.Payments.Process(ctx, co.OrderID, co.TotalAmount, co.Currency, co.PaymentMethod)
	if err != nil {
		co.Fail(domain.ReasonPaymentFailed)
		return errors.Wrap(err, "process payment")
	}
	if result.Decision != port.DecisionApproved {
		co.Fail(domain.ReasonPaymentFailed)
		return errors.Errorf("payment declined for order %s", co.OrderID)
	}
	co.PaymentID = result.PaymentID

	logger.Ctx(ctx).Info().
		Str("checkout_id", co.ID).
		Str("payment_id", result.PaymentID).
		Msg("payment approved")
	return h.executeNext(checkoutCtx)
}
