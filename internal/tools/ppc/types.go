package ppc

import "github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/numeric"

// Campaign 单条广告活动的完整结果（校验行 ⊕ 派生指标 ⊕ 分析结论）
// 仅在校验成功后构造，不存在半填充状态
type Campaign struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Spend       float64 `json:"spend"`
	Sales       float64 `json:"sales"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`

	Metrics
	Analysis
}

// Metrics 派生指标
type Metrics struct {
	ACoS           numeric.Ratio `json:"acos"`
	ROAS           numeric.Ratio `json:"roas"`
	CTR            numeric.Ratio `json:"ctr"`
	CPC            numeric.Ratio `json:"cpc"`
	ConversionRate numeric.Ratio `json:"conversion_rate"`
}

// Analysis 规则分析结论（保证非空，无规则命中时填充哨兵文案）
type Analysis struct {
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Thresholds 分析规则阈值（文档默认值 30 / 0.3 / 8 / 100 / 20）
type Thresholds struct {
	HighACoS        float64 // ACoS 超过即报 High ACoS（百分比）
	LowCTR          float64 // CTR 低于即报 Low CTR（百分比）
	LowConversion   float64 // 转化率低于即报 Low Conversion Rate（百分比）
	LowClicks       float64 // 点击量低于即报 Low Click Volume（次数）
	AutoHarvestACoS float64 // 自动广告低于该 ACoS 时建议收割到手动广告
}

// DefaultThresholds 默认阈值
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighACoS:        30,
		LowCTR:          0.3,
		LowConversion:   8,
		LowClicks:       100,
		AutoHarvestACoS: 20,
	}
}

// 哨兵文案
const (
	NoIssueSentinel          = "No major performance issues detected."
	NoRecommendationSentinel = "Campaign performance is stable; maintain current strategy."
)
