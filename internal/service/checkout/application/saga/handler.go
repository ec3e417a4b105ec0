// internal/service/checkout/application/saga/handler.go
package saga

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"commerce/internal/pkg/logger"
	"commerce/internal/service/checkout/domain"
	"commerce/internal/service/checkout/domain/port"
)

// CheckoutContext 在 Saga 流程中传递上下文数据。
// 所有外部依赖都是抽象端口，便于测试时替换。
type CheckoutContext struct {
	Ctx      context.Context
	Checkout *domain.Checkout
	Tracer   trace.Tracer

	Inventory port.InventoryService
	Orders    port.OrderService
	Payments  port.PaymentService

	Status domain.StatusStore

	// 补偿栈：后注册的先执行 (LIFO)
	compensations []func(ctx context.Context)
	compLock      sync.Mutex
}

// Advance 推进阶段并把快照写入状态表。
func (c *CheckoutContext) Advance(phase domain.Phase) {
	c.Checkout.Advance(phase)
	if c.Status != nil {
		c.Status.Put(c.Checkout.Snapshot())
	}
}

// AddCompensation 注册一个补偿操作，插入到栈顶。
func (c *CheckoutContext) AddCompensation(comp func(ctx context.Context)) {
	c.compLock.Lock()
	defer c.compLock.Unlock()
	c.compensations = append([]func(context.Context){comp}, c.compensations...)
}

// TriggerCompensation 按 LIFO 顺序执行所有已注册的补偿操作。
// 每个补偿各自吞掉并记录自己的错误，互不影响。
func (c *CheckoutContext) TriggerCompensation(ctx context.Context) {
	c.compLock.Lock()
	defer c.compLock.Unlock()
	logger.Ctx(ctx).Info().
		Str("checkout_id", c.Checkout.ID).
		Int("count", len(c.compensations)).
		Msg("executing compensation functions")
	for _, comp := range c.compensations {
		comp(ctx)
	}
	c.compensations = nil
}

// Handler 是 Saga 责任链上的一个步骤。
type Handler interface {
	SetNext(handler Handler) Handler
	Handle(checkoutCtx *CheckoutContext) error
}

type NextHandler struct {
	next Handler
}

func (h *NextHandler) SetNext(handler Handler) Handler {
	h.next = handler
	return handler
}

func (h *NextHandler) executeNext(checkoutCtx *CheckoutContext) error {
	if h.next != nil {
		return h.next.Handle(checkoutCtx)
	}
	return nil
}
