// internal/service/inventory/domain/errors.go
package domain

import "errors"

// 错误分类决定了调用方的行为：
// ErrConflict 可重试，其余都是确定性结果，重试没有意义。
var (
	// ErrNotFound 表示商品没有库存记录。
	ErrNotFound = errors.New("stock record not found")

	// ErrInsufficientStock 表示可用库存不足以满足预占请求。
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidState 表示请求违反了账本的业务规则，
	// 例如释放/确认的数量超过了已预占数量。
	ErrInvalidState = errors.New("invalid stock state")

	// ErrConflict 表示乐观锁写冲突：另一个调用方先更新了同一条记录。
	ErrConflict = errors.New("stock version conflict")
)
