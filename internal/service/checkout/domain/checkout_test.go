// internal/service/checkout/domain/checkout_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckout_Validation(t *testing.T) {
	items := []Item{{ProductID: "product-1", Quantity: 1}}

	co, err := NewCheckout("ck-1", "customer-1", items, "VISA-4242", "")
	require.NoError(t, err)
	assert.Equal(t, PhaseValidation, co.Phase)
	assert.False(t, co.Terminal())

	cases := []struct {
		name string
		fn   func() (*Checkout, error)
	}{
		{"empty id", func() (*Checkout, error) {
			return NewCheckout("", "customer-1", items, "VISA-4242", "")
		}},
		{"empty customer", func() (*Checkout, error) {
			return NewCheckout("ck-1", "", items, "VISA-4242", "")
		}},
		{"no items", func() (*Checkout, error) {
			return NewCheckout("ck-1", "customer-1", nil, "VISA-4242", "")
		}},
		{"zero quantity", func() (*Checkout, error) {
			return NewCheckout("ck-1", "customer-1", []Item{{ProductID: "p", Quantity: 0}}, "VISA-4242", "")
		}},
		{"missing product id", func() (*Checkout, error) {
			return NewCheckout("ck-1", "customer-1", []Item{{Quantity: 1}}, "VISA-4242", "")
		}},
		{"no payment method", func() (*Checkout, error) {
			return NewCheckout("ck-1", "customer-1", items, "", "")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.fn()
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestCheckout_FailKeepsEarliestReason(t *testing.T) {
	co, err := NewCheckout("ck-1", "customer-1", []Item{{ProductID: "p", Quantity: 1}}, "VISA-4242", "")
	require.NoError(t, err)

	co.Fail(ReasonPaymentFailed)
	co.Fail(ReasonSystemError)

	assert.Equal(t, PhaseFailed, co.Phase)
	assert.Equal(t, ReasonPaymentFailed, co.Reason)
	assert.True(t, co.Terminal())
}

func TestCheckout_Complete(t *testing.T) {
	co, err := NewCheckout("ck-1", "customer-1", []Item{{ProductID: "p", Quantity: 1}}, "VISA-4242", "")
	require.NoError(t, err)

	co.Advance(PhaseReserving)
	co.Complete()

	assert.Equal(t, PhaseCompleted, co.Phase)
	assert.Equal(t, ReasonSuccess, co.Reason)
	assert.True(t, co.Terminal())
}

func TestCheckout_Snapshot(t *testing.T) {
	co, err := NewCheckout("ck-1", "customer-1", []Item{{ProductID: "p", Quantity: 1}}, "VISA-4242", "")
	require.NoError(t, err)
	co.OrderID = "order-1"
	co.TotalAmount = 100
	co.Currency = "USD"

	snap := co.Snapshot()
	assert.Equal(t, "ck-1", snap.CheckoutID)
	assert.Equal(t, "order-1", snap.OrderID)
	assert.Equal(t, 100.0, snap.TotalAmount)
	assert.Equal(t, PhaseValidation, snap.Phase)
}
