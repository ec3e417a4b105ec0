// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CheckoutTotal 按最终结果统计 checkout 次数，label 为 COMPLETED 或失败原因码。
	CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "commerce",
		Subsystem: "checkout",
		Name:      "total",
		Help:      "Total number of checkout attempts by outcome.",
	}, []string{"outcome"})

	// CheckoutDuration 记录单次 checkout 的端到端耗时。
	CheckoutDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "commerce",
		Subsystem: "checkout",
		Name:      "duration_ms",
		Help:      "End-to-end checkout processing time in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	// StockConflicts 统计乐观锁写冲突次数，热点商品的竞争强度指标。
	StockConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "commerce",
		Subsystem: "inventory",
		Name:      "version_conflicts_total",
		Help:      "Total number of optimistic lock conflicts on stock records.",
	})

	// StockEventsDropped 统计发布失败而被丢弃的库存事件（尽力而为语义）。
	StockEventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "commerce",
		Subsystem: "inventory",
		Name:      "events_dropped_total",
		Help:      "Total number of stock events that failed to publish.",
	})
)

func init() {
	prometheus.MustRegister(CheckoutTotal, CheckoutDuration, StockConflicts, StockEventsDropped)
}
