package ppc

import "github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/numeric"

// computeMetrics 计算派生指标（纯函数，零分母按 numeric 策略处理，绝不抛出）
// ACoS = spend/sales×100；ROAS = sales/spend；CTR = clicks/impressions×100（零分母恒为 0）
// CPC = spend/clicks；转化率 = sales/clicks×100
func computeMetrics(spend, sales float64, impressions, clicks int) Metrics {
	return Metrics{
		ACoS:           numeric.PercentOf(spend, sales),
		ROAS:           numeric.RatioOf(sales, spend),
		CTR:            numeric.ZeroPercentOf(float64(clicks), float64(impressions)),
		CPC:            numeric.RatioOf(spend, float64(clicks)),
		ConversionRate: numeric.PercentOf(sales, float64(clicks)),
	}
}
