// internal/service/checkout/application/service.go
package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"commerce/internal/pkg/logger"
	"commerce/internal/pkg/metrics"
	"commerce/internal/service/checkout/application/saga"
	"commerce/internal/service/checkout/domain"
	"commerce/internal/service/checkout/domain/port"
)

// CheckoutApplicationService 编排一次结算的完整 Saga。
type CheckoutApplicationService struct {
	inventory port.InventoryService
	orders    port.OrderService
	payments  port.PaymentService

	status      domain.StatusStore
	idempotency domain.IdempotencyStore
	pricing     port.PriceCalculator

	currency          string
	processingTimeout time.Duration
	tracer            trace.Tracer
}

func NewCheckoutApplicationService(
	inventory port.InventoryService,
	orders port.OrderService,
	payments port.PaymentService,
	status domain.StatusStore,
	idempotency domain.IdempotencyStore,
	pricing port.PriceCalculator,
	currency string,
	processingTimeout time.Duration,
) *CheckoutApplicationService {
	return &CheckoutApplicationService{
		inventory:         inventory,
		orders:            orders,
		payments:          payments,
		status:            status,
		idempotency:       idempotency,
		pricing:           pricing,
		currency:          currency,
		processingTimeout: processingTimeout,
		tracer:            otel.Tracer("checkout-service"),
	}
}

// ProcessCheckout 执行结算主流程。
// 请求不合法时返回 domain.ErrInvalidRequest，其余失败都体现在响应体里。
func (s *CheckoutApplicationService) ProcessCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "checkout.process")
	defer span.End()

	checkoutID := uuid.New().String()

	co, err := domain.NewCheckout(checkoutID, req.CustomerID, req.Items, req.PaymentMethod, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	// 幂等检查：同一个 key 的重试直接回放第一次的结果。
	// 放在校验之后，不合法的请求不会占用幂等键。
	if req.IdempotencyKey != "" && s.idempotency != nil {
		existing, err := s.idempotency.PutIfAbsent(ctx, req.IdempotencyKey, checkoutID)
		if err != nil {
			// 幂等表不可用时退化为不去重，而不是拒绝请求
			logger.Ctx(ctx).Warn().Err(err).Msg("idempotency store unavailable, skipping dedup")
		} else if existing != "" {
			logger.Ctx(ctx).Info().
				Str("idempotency_key", req.IdempotencyKey).
				Str("checkout_id", existing).
				Msg("duplicate checkout request, replaying recorded outcome")
			return s.replay(existing, start), nil
		}
	}

	co.TotalAmount = s.pricing(co.Items)
	co.Currency = s.currency
	s.status.Put(co.Snapshot())

	logger.Ctx(ctx).Info().
		Str("checkout_id", co.ID).
		Str("customer_id", co.CustomerID).
		Int("items", len(co.Items)).
		Float64("total_amount", co.TotalAmount).
		Msg("checkout started")

	// 整个流程受处理超时约束；补偿不受该超时影响
	procCtx, cancel := context.WithTimeout(ctx, s.processingTimeout)
	defer cancel()

	checkoutCtx := &saga.CheckoutContext{
		Ctx:       procCtx,
		Checkout:  co,
		Tracer:    s.tracer,
		Inventory: s.inventory,
		Orders:    s.orders,
		Payments:  s.payments,
		Status:    s.status,
	}

	sagaErr := s.runSaga(checkoutCtx)
	if sagaErr != nil {
		if co.Phase != domain.PhaseFailed {
			co.Fail(domain.ReasonSystemError)
		}
		logger.Ctx(ctx).Error().Err(sagaErr).
			Str("checkout_id", co.ID).
			Str("reason", string(co.Reason)).
			Msg("checkout failed, triggering compensation")

		// 用分离的 context 执行补偿：即使处理超时已到期，回滚也必须完成
		compCtx := trace.ContextWithRemoteSpanContext(context.Background(), span.SpanContext())
		checkoutCtx.TriggerCompensation(compCtx)
	} else {
		co.Complete()
	}
	s.status.Put(co.Snapshot())

	elapsed := time.Since(start)
	metrics.CheckoutDuration.Observe(float64(elapsed.Milliseconds()))
	if co.Phase == domain.PhaseCompleted {
		metrics.CheckoutTotal.WithLabelValues(string(domain.PhaseCompleted)).Inc()
		logger.Ctx(ctx).Info().
			Str("checkout_id", co.ID).
			Str("order_id", co.OrderID).
			Dur("elapsed", elapsed).
			Msg("checkout completed")
	} else {
		metrics.CheckoutTotal.WithLabelValues(string(co.Reason)).Inc()
	}

	return s.respond(co, sagaErr, start), nil
}

// CheckoutStatus 返回指定 checkout 的当前状态。
func (s *CheckoutApplicationService) CheckoutStatus(checkoutID string) (StatusResponse, bool) {
	rec, ok := s.status.Get(checkoutID)
	if !ok {
		return StatusResponse{}, false
	}
	return statusResponseFrom(rec), true
}

// runSaga 组装责任链并执行，panic 会被转成错误走统一的失败路径。
func (s *CheckoutApplicationService) runSaga(checkoutCtx *saga.CheckoutContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("saga panic: %v", r)
		}
	}()

	reserveStock := &saga.ReserveStockHandler{}
	createOrder := &saga.CreateOrderHandler{}
	processPayment := &saga.ProcessPaymentHandler{}
	confirmStock := &saga.ConfirmStockHandler{}

	reserveStock.SetNext(createOrder).SetNext(processPayment).SetNext(confirmStock)

	return reserveStock.Handle(checkoutCtx)
}

func (s *CheckoutApplicationService) respond(co *domain.Checkout, sagaErr error, start time.Time) *CheckoutResponse {
	resp := &CheckoutResponse{
		Success:          co.Phase == domain.PhaseCompleted,
		CheckoutID:       co.ID,
		OrderID:          co.OrderID,
		TotalAmount:      co.TotalAmount,
		Currency:         co.Currency,
		Status:           string(co.Phase),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Timestamp:        time.Now(),
	}
	if sagaErr != nil {
		resp.ErrorMessage = sagaErr.Error()
	}
	return resp
}

// replay 用状态表里登记的结果构造重复请求的响应。
func (s *CheckoutApplicationService) replay(checkoutID string, start time.Time) *CheckoutResponse {
	resp := &CheckoutResponse{
		CheckoutID:       checkoutID,
		Status:           string(domain.PhaseValidation),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Timestamp:        time.Now(),
	}
	if rec, ok := s.status.Get(checkoutID); ok {
		resp.Success = rec.Phase == domain.PhaseCompleted
		resp.OrderID = rec.OrderID
		resp.TotalAmount = rec.TotalAmount
		resp.Currency = rec.Currency
		resp.Status = string(rec.Phase)
		if rec.Reason != "" && rec.Reason != domain.ReasonSuccess {
			resp.ErrorMessage = string(rec.Reason)
		}
	}
	return resp
}
