// internal/service/checkout/domain/port/pricing.go
package port

import "commerce/internal/service/checkout/domain"

// PriceCalculator 计算订单总价。
// 必须是确定性的纯函数；真正的定价属于外部协作方，这里只注入其结果。
type PriceCalculator func(items []domain.Item) float64

// FlatPriceCalculator 返回按件数乘以固定单价的计算器，
// 是原型环境里的定价替身。
func FlatPriceCalculator(unitPrice float64) PriceCalculator {
	return func(items []domain.Item) float64 {
		total := 0.0
		for _, item := range items {
			total += unitPrice * float64(item.Quantity)
		}
		return total
	}
}
