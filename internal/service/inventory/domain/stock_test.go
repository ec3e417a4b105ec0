// internal/service/inventory/domain/stock_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockRecord(t *testing.T) {
	record, err := NewStockRecord("product-1", 100)
	require.NoError(t, err)
	assert.Equal(t, "product-1", record.ProductID)
	assert.Equal(t, 100, record.Quantity)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, int64(0), record.Version)

	_, err = NewStockRecord("", 10)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = NewStockRecord("product-1", -1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStockRecord_Reserve(t *testing.T) {
	record := &StockRecord{ProductID: "product-1", Quantity: 10}

	require.NoError(t, record.Reserve(7))
	assert.Equal(t, 7, record.Reserved)
	assert.Equal(t, 3, record.Available())

	// 可用量不足：拒绝且状态不变
	err := record.Reserve(4)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 7, record.Reserved)
	assert.Equal(t, 10, record.Quantity)

	// 把剩余可用量全部占掉是允许的
	require.NoError(t, record.Reserve(3))
	assert.Equal(t, 0, record.Available())

	assert.ErrorIs(t, record.Reserve(0), ErrInvalidState)
	assert.ErrorIs(t, record.Reserve(-1), ErrInvalidState)
}

func TestStockRecord_Release(t *testing.T) {
	record := &StockRecord{ProductID: "product-1", Quantity: 10, Reserved: 5}

	require.NoError(t, record.Release(3))
	assert.Equal(t, 2, record.Reserved)
	assert.Equal(t, 10, record.Quantity)

	// 释放量超过在途预占：拒绝且状态不变
	err := record.Release(3)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 2, record.Reserved)

	assert.ErrorIs(t, record.Release(0), ErrInvalidState)
}

func TestStockRecord_Confirm(t *testing.T) {
	record := &StockRecord{ProductID: "product-1", Quantity: 10, Reserved: 5}

	require.NoError(t, record.Confirm(5))
	assert.Equal(t, 5, record.Quantity)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, 5, record.Available())

	// 没有预占可确认
	err := record.Confirm(1)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 5, record.Quantity)
}

func TestStockRecord_SetQuantity(t *testing.T) {
	record := &StockRecord{ProductID: "product-1", Quantity: 10, Reserved: 4}

	require.NoError(t, record.SetQuantity(20))
	assert.Equal(t, 20, record.Quantity)
	assert.Equal(t, 4, record.Reserved)

	// 新总量低于在途预占会破坏不变式
	assert.ErrorIs(t, record.SetQuantity(3), ErrInvalidState)
	assert.Equal(t, 20, record.Quantity)

	assert.ErrorIs(t, record.SetQuantity(-1), ErrInvalidState)

	// 降到恰好等于预占量是允许的，可用量归零
	require.NoError(t, record.SetQuantity(4))
	assert.Equal(t, 0, record.Available())
}

func TestStockRecord_Clone(t *testing.T) {
	record := &StockRecord{ProductID: "product-1", Quantity: 10, Reserved: 2, Version: 7}

	clone := record.Clone()
	clone.Quantity = 99
	clone.Version = 42

	assert.Equal(t, 10, record.Quantity)
	assert.Equal(t, int64(7), record.Version)
}
