// internal/pkg/retry/retry.go
package retry

import (
	"context"
	"time"
)

// Policy 描述一次可重试操作的边界：最大尝试次数、固定退避间隔，
// 以及判断某个错误是否值得重试的谓词。
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
	Retryable   func(error) bool
}

// Do 执行 fn，直到成功、错误不可重试、或尝试次数耗尽。
// 返回最后一次的错误；context 取消时立即终止并返回 ctx.Err()。
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}

		if p.Backoff > 0 {
			timer := time.NewTimer(p.Backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return lastErr
}
