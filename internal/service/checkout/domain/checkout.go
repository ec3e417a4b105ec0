// internal/service/checkout/domain/checkout.go
package domain

import (
	"errors"
	"time"
)

// Phase 定义了一次 checkout 的生命周期阶段
type Phase string

const (
	PhaseValidation        Phase = "VALIDATION"         // 校验请求并计算总价
	PhaseReserving         Phase = "RESERVING"          // 逐行预占库存
	PhaseCreatingOrder     Phase = "CREATING_ORDER"     // 调用订单服务
	PhaseProcessingPayment Phase = "PROCESSING_PAYMENT" // 调用支付服务
	PhaseConfirming        Phase = "CONFIRMING"         // 预占转为最终扣减
	PhaseCompleted         Phase = "COMPLETED"          // 成功终态
	PhaseFailed            Phase = "FAILED"             // 失败终态，从任何非终态均可到达
)

// Reason 是终态的结果码。
type Reason string

const (
	ReasonSuccess                     Reason = "SUCCESS"
	ReasonInventoryReservationFailed  Reason = "INVENTORY_RESERVATION_FAILED"
	ReasonOrderCreationFailed         Reason = "ORDER_CREATION_FAILED"
	ReasonPaymentFailed               Reason = "PAYMENT_FAILED"
	ReasonSystemError                 Reason = "SYSTEM_ERROR"
)

// ErrInvalidRequest 表示 checkout 请求本身不合法。
var ErrInvalidRequest = errors.New("invalid checkout request")

// Item 是 checkout 请求中的一个行项目。
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Checkout 是一次结算尝试的聚合根。
// ID 在接受请求时铸造，不由调用方提供。
type Checkout struct {
	ID             string
	CustomerID     string
	Items          []Item
	PaymentMethod  string
	IdempotencyKey string

	OrderID     string
	PaymentID   string
	TotalAmount float64
	Currency    string

	Phase         Phase
	Reason        Reason
	StartedAt     time.Time
	LastUpdatedAt time.Time
}

// NewCheckout 校验请求并创建聚合，初始阶段为 VALIDATION。
func NewCheckout(id, customerID string, items []Item, paymentMethod, idempotencyKey string) (*Checkout, error) {
	if id == "" || customerID == "" || paymentMethod == "" || len(items) == 0 {
		return nil, ErrInvalidRequest
	}
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, ErrInvalidRequest
		}
	}

	now := time.Now()
	return &Checkout{
		ID:             id,
		CustomerID:     customerID,
		Items:          items,
		PaymentMethod:  paymentMethod,
		IdempotencyKey: idempotencyKey,
		Phase:          PhaseValidation,
		StartedAt:      now,
		LastUpdatedAt:  now,
	}, nil
}

// Advance 推进到下一个阶段。
func (c *Checkout) Advance(phase Phase) {
	c.Phase = phase
	c.LastUpdatedAt = time.Now()
}

// Fail 进入失败终态并记录原因。已失败的 checkout 保留最早的原因。
func (c *Checkout) Fail(reason Reason) {
	if c.Phase == PhaseFailed {
		return
	}
	c.Phase = PhaseFailed
	c.Reason = reason
	c.LastUpdatedAt = time.Now()
}

// Complete 进入成功终态。
func (c *Checkout) Complete() {
	c.Phase = PhaseCompleted
	c.Reason = ReasonSuccess
	c.LastUpdatedAt = time.Now()
}

// Terminal 判断是否已到达终态。
func (c *Checkout) Terminal() bool {
	return c.Phase == PhaseCompleted || c.Phase == PhaseFailed
}

// Snapshot 导出当前状态，供状态表存储。
func (c *Checkout) Snapshot() StatusRecord {
	return StatusRecord{
		CheckoutID:    c.ID,
		Phase:         c.Phase,
		Reason:        c.Reason,
		OrderID:       c.OrderID,
		TotalAmount:   c.TotalAmount,
		Currency:      c.Currency,
		StartedAt:     c.StartedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}
