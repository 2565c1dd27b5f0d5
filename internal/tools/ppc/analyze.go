package ppc

import (
	"fmt"
	"strings"
)

// analyze 按序执行阈值规则，规则彼此独立可叠加
// 唯一的短路：无销售（ACoS 非有限）时跳过其余 PPC 规则
func (t *Tool) analyze(c *Campaign) Analysis {
	a := Analysis{
		Issues:          make([]string, 0, 4),
		Recommendations: make([]string, 0, 4),
	}

	// 无销售短路
	if !c.ACoS.IsFinite() {
		a.Issues = append(a.Issues, "No Sales Recorded")
		if c.Spend >= 100 {
			a.Recommendations = append(a.Recommendations,
				fmt.Sprintf("Pause campaign and rebuild targeting: %.2f spend with zero attributed sales", c.Spend))
		} else {
			a.Recommendations = append(a.Recommendations,
				"Review targeting and keywords before increasing spend")
		}
		return a
	}

	if float64(c.ACoS) > t.thresholds.HighACoS {
		a.Issues = append(a.Issues, fmt.Sprintf("High ACoS (%s%%)", c.ACoS))
		a.Recommendations = append(a.Recommendations,
			"Reduce bids on low-performing keywords",
			"Add negative keywords to cut wasted spend")
	}

	if float64(c.CTR) < t.thresholds.LowCTR {
		a.Issues = append(a.Issues, fmt.Sprintf("Low CTR (%s%%)", c.CTR))
		a.Recommendations = append(a.Recommendations,
			"Refresh ad creative and tighten keyword targeting")
	}

	if float64(c.ConversionRate) < t.thresholds.LowConversion {
		a.Issues = append(a.Issues, fmt.Sprintf("Low Conversion Rate (%s%%)", c.ConversionRate))
		a.Recommendations = append(a.Recommendations,
			"Optimize the product listing before scaling spend")
	}

	if float64(c.Clicks) < t.thresholds.LowClicks {
		a.Issues = append(a.Issues, fmt.Sprintf("Low Click Volume (%d)", c.Clicks))
		a.Recommendations = append(a.Recommendations,
			"Raise bids or budget to gather more click data")
	}

	// 自动广告收割建议（叠加规则，不与上面互斥）
	if strings.Contains(strings.ToLower(c.Type), "auto") &&
		float64(c.ACoS) < t.thresholds.AutoHarvestACoS {
		a.Recommendations = append(a.Recommendations,
			"Harvest converting search terms into a manual campaign")
	}

	// 哨兵：结论数组保证非空
	if len(a.Issues) == 0 {
		a.Issues = append(a.Issues, NoIssueSentinel)
	}
	if len(a.Recommendations) == 0 {
		a.Recommendations = append(a.Recommendations, NoRecommendationSentinel)
	}

	return a
}
