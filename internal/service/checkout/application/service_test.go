// internal/service/checkout/application/service_test.go
package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"commerce/internal/service/checkout/domain"
	"commerce/internal/service/checkout/domain/port"
	"commerce/internal/service/checkout/infrastructure"
	"commerce/internal/service/checkout/infrastructure/adapter"
	inventoryapp "commerce/internal/service/inventory/application"
	inventoryinfra "commerce/internal/service/inventory/infrastructure"
)

// stubOrderService 记录创建和取消调用。
type stubOrderService struct {
	mu         sync.Mutex
	failCreate bool
	created    []string
	cancelled  []string
}

func (s *stubOrderService) Create(_ context.Context, customerID string, items []domain.Item, totalAmount float64) (string, error) {
	if s.failCreate {
		return "", errors.New("order backend down")
	}
	id := uuid.New().String()
	s.mu.Lock()
	s.created = append(s.created, id)
	s.mu.Unlock()
	return id, nil
}

func (s *stubOrderService) Cancel(_ context.Context, orderID string) error {
	s.mu.Lock()
	s.cancelled = append(s.cancelled, orderID)
	s.mu.Unlock()
	return nil
}

// stubPaymentService 按预设返回裁决，panicking 时模拟崩溃。
type stubPaymentService struct {
	decision  port.Decision
	err       error
	panicking bool
	processed int
}

func (s *stubPaymentService) Process(_ context.Context, orderID string, amount float64, currency, method string) (*port.PaymentResult, error) {
	s.processed++
	if s.panicking {
		panic("payment gateway crashed")
	}
	if s.err != nil {
		return nil, s.err
	}
	return &port.PaymentResult{Decision: s.decision, PaymentID: uuid.New().String()}, nil
}

type checkoutHarness struct {
	service   *CheckoutApplicationService
	inventory *inventoryapp.InventoryService
	orders    *stubOrderService
	payments  *stubPaymentService
	status    *infrastructure.MemoryStatusStore
}

// newCheckoutHarness 用真实的库存协调器和内存存储搭一套完整编排环境，
// 订单和支付用桩实现。
func newCheckoutHarness(t *testing.T, stock map[string]int) *checkoutHarness {
	t.Helper()

	inventoryService := inventoryapp.NewInventoryService(
		inventoryinfra.NewMemoryStockStore(), nil, otel.Tracer("test"))
	for productID, qty := range stock {
		_, err := inventoryService.CreateProduct(context.Background(), productID, qty)
		require.NoError(t, err)
	}

	orders := &stubOrderService{}
	payments := &stubPaymentService{decision: port.DecisionApproved}
	status := infrastructure.NewMemoryStatusStore()

	service := NewCheckoutApplicationService(
		adapter.NewInventoryLocalAdapter(inventoryService),
		orders,
		payments,
		status,
		infrastructure.NewMemoryIdempotencyStore(),
		port.FlatPriceCalculator(100),
		"USD",
		5*time.Second,
	)
	return &checkoutHarness{
		service:   service,
		inventory: inventoryService,
		orders:    orders,
		payments:  payments,
		status:    status,
	}
}

func (h *checkoutHarness) stockRecord(t *testing.T, productID string) (quantity, reserved int) {
	t.Helper()
	record, err := h.inventory.Get(context.Background(), productID)
	require.NoError(t, err)
	return record.Quantity, record.Reserved
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		CustomerID:    "customer-1",
		PaymentMethod: "VISA-4242",
		Items: []domain.Item{
			{ProductID: "product-1", Quantity: 2},
			{ProductID: "product-2", Quantity: 1},
		},
	}
}

func TestProcessCheckout_HappyPath(t *testing.T) {
	h := newCheckoutHarness(t, map[string]int{"product-1": 10, "product-2": 5})

	resp, err := h.service.ProcessCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, string(domain.PhaseCompleted), resp.Status)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, 300.0, resp.TotalAmount)
	assert.Equal(t, "USD", resp.Currency)
	assert.Empty(t, resp.ErrorMessage)

	// 预占已转为最终扣减
	qty, reserved := h.stockRecord(t, "product-1")
	assert.Equal(t, 8, qty)
	assert.Equal(t, 0, reserved)
	qty, reserved = h.stockRecord(t, "product-2")
	assert.Equal(t, 4, qty)
	assert.Equal(t, 0, reserved)

	assert.Len(t, h.orders.created, 1)
	assert.Empty(t, h.orders.cancelled)

	status, ok := h.service.CheckoutStatus(resp.CheckoutID)
	require.True(t, ok)
	assert.Equal(t, string(domain.PhaseCompleted), status.Phase)
	assert.Equal(t, string(domain.ReasonSuccess), status.Reason)
	assert.True(t, status.Terminal)
}

func TestProcessCheckout_ReservationFailureReleasesPartialReservations(t *testing.T) {
	// product-2 库存不足，product-1 的预占可能已经成功
	h := newCheckoutHarness(t, map[string]int{"product-1": 10, "product-2": 0})

	resp, err := h.service.ProcessCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, string(domain.PhaseFailed), resp.Status)
	assert.NotEmpty(t, resp.ErrorMessage)

	// 成功过的预占必须全部释放，账本回到原点
	qty, reserved := h.stockRecord(t, "product-1")
	assert.Equal(t, 10, qty)
	assert.Equal(t, 0, reserved)

	// 订单从未创建
	assert.Empty(t, h.orders.created)
	assert.Equal(t, 0, h.payments.processed)

	status, ok := h.service.CheckoutStatus(resp.CheckoutID)
	require.True(t, ok)
	assert.Equal(t, string(domain.ReasonInventoryReservationFailed), status.Reason)
}

func TestProcessCheckout_OrderCreationFailureReleasesStock(t *testing.T) {
	h := newCheckoutHarness(t, map[string]int{"product-1": 10, "product-2": 5})
	h.orders.failCreate = true

	resp, err := h.service.ProcessCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Success)

	qty, reserved := h.stockRecord(t, "product-1")
	assert.Equal(t, 10, qty)
	assert.Equal(t, 0, reserved)
	qty, reserved = h.stockRecord(t, "product-2")
	assert.Equal(t, 5, qty)
	assert.Equal(t, 0, reserved)

	assert.Equal(t, 0, h.payments.processed)

	status, ok := h.service.CheckoutStatus(resp.CheckoutID)
	require.True(t, ok)
	assert.Equal(t, string(domain.ReasonOrderCreationFailed), status.Reason)
}

func TestProcessCheckout_PaymentDeclinedCancelsOrderAndReleasesStock(t *testing.T) {
	h := newCheckoutHarness(t, map[string]int{"product-1": 10, "product-2": 5})
	h.payments.decision = port.DecisionDeclined

	resp, err := h.service.ProcessCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, 1, h.payments.processed)

	// 补偿按 LIFO 执行：先取消订单，再释放库存
	require.Len(t, h.orders.created, 1)
	assert.Equal(t, h.orders.created, h.orders.cancelled)

	qty, reserved := h.stockRecord(t, "product-1")
	assert.Equal(t, 10, qty)
	assert.Equal(t, 0, reserved)
	qty, reserved = h.stockRecord(t, "product-2")
	assert.Equal(t, 5, qty)
	assert.Equal(t, 0, reserved)

	status, ok := h.service.CheckoutStatus(resp.CheckoutID)
	require.True(t, ok)
	assert.Equal(t, string(domain.ReasonPaymentFailed), status.Reason)
}

func TestProcessCheckout_PaymentErrorAlsoFailsAsPayment(t *testing.T) {
	h := newCheckoutHarness(t, map[string]int{"product-1": 10, "product-2": 5})
	h.payments.err = errors.New("gateway timeout")

	resp, err := h.service.ProcessCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Success)
	status, ok := h.service.CheckoutStatus(resp.CheckoutID)
	require.True(t, ok)
	assert.Equal(t, string(domain.ReasonPaymentFailed), status.Reason)
	assert.Len(t, h.orders.cancelled, 1)
}

func TestProcessCheckout_PanicMapsToSystemErrorAndCompensates(t *testing.T) {
	h := newCheckoutHarness(t, map[string]int{"product-1": 10, "product-2": 5})
	h.payments.panicking = true

	resp, err := h.service.ProcessCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Success)

	status, ok := h.service.CheckoutStatus(resp.CheckoutID)
	require.True(t, ok)
	assert.Equal(t, string(domain.ReasonSystemError), status.Reason)

	// 崩溃前创建的订单和预占都要回滚
	assert.Equal(t, h.orders.created, h.orders.cancelled)
	qty, reserved := h.stockRecord(t, "product-1")
	assert.Equal(t, 10, qty)
	assert.Equal(t, 0, reserved)
}

func TestProcessCheckout_InvalidRequest(t *testing.T) {
	h := newCheckoutHarness(t, map[string]int{"product-1": 10})

	_, err := h.service.ProcessCheckout(context.Background(), CheckoutRequest{
		CustomerID:    "customer-1",
		PaymentMethod: "VISA-4242",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = h.service.ProcessCheckout(context.Background(), CheckoutRequest{
		CustomerID:    "customer-1",
		PaymentMethod: "VISA-4242",
		Items:         []domain.Item{{ProductID: "product-1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestProcessCheckout_IdempotentReplay(t *testing.T) {
	h := newCheckoutHarness(t, map[string]int{"product-1": 10, "product-2": 5})

	req := validRequest()
	req.IdempotencyKey = "key-123"

	first, err := h.service.ProcessCheckout(context.Background(), req)
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := h.service.ProcessCheckout(context.Background(), req)
	require.NoError(t, err)

	// 重复请求回放第一次的结果，不再扣库存
	assert.Equal(t, first.CheckoutID, second.CheckoutID)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.True(t, second.Success)
	assert.Len(t, h.orders.created, 1)

	qty, _ := h.stockRecord(t, "product-1")
	assert.Equal(t, 8, qty)
}

func TestProcessCheckout_ConcurrentCheckoutsContendForStock(t *testing.T) {
	// 可用量 5，两个并发结算各要 3：恰好一个成功
	h := newCheckoutHarness(t, map[string]int{"product-1": 5})

	req := CheckoutRequest{
		CustomerID:    "customer-1",
		PaymentMethod: "VISA-4242",
		Items:         []domain.Item{{ProductID: "product-1", Quantity: 3}},
	}

	var wg sync.WaitGroup
	results := make([]*CheckoutResponse, 2)
	for i := 0; i < 2; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := h.service.ProcessCheckout(context.Background(), req)
			assert.NoError(t, err)
			results[i] = resp
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, resp := range results {
		if resp != nil && resp.Success {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	// 赢家确认扣减，输家的预占（如果有）已全部释放
	qty, reserved := h.stockRecord(t, "product-1")
	assert.Equal(t, 2, qty)
	assert.Equal(t, 0, reserved)
	assert.Len(t, h.orders.created, 1)
}

func TestCheckoutStatus_UnknownID(t *testing.T) {
	h := newCheckoutHarness(t, map[string]int{"product-1": 10})

	_, ok := h.service.CheckoutStatus("no-such-checkout")
	assert.False(t, ok)
}
