package amazon

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/numeric"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/server/apimodel/request"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/fba"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/ginx"
)

// minMarginPercent 建议价不得击穿的毛利率下限
const minMarginPercent = 15.0

// PricingResult 定价分析结果
type PricingResult struct {
	Product string  `json:"product"`
	Cost    float64 `json:"cost"`
	Fees    float64 `json:"fees"`

	CurrentPrice float64       `json:"current_price"`
	Profit       float64       `json:"profit"`
	ROI          numeric.Ratio `json:"roi"`
	Margin       numeric.Ratio `json:"margin"`

	CompetitorMin float64 `json:"competitor_min,omitempty"`
	CompetitorAvg float64 `json:"competitor_avg,omitempty"`
	CompetitorMax float64 `json:"competitor_max,omitempty"`

	SuggestedPrice  float64  `json:"suggested_price"`
	Recommendations []string `json:"recommendations"`
}

// Pricing 定价分析接口
// POST /api/amazon/pricing
func (h *AmazonHandler) Pricing(c *gin.Context) {
	var req request.PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	// 当前价格下的利润指标（严格策略与手动录入一致）
	p := &fba.Product{
		Product: req.Product,
		Cost:    req.Cost,
		Price:   req.CurrentPrice,
		Fees:    req.Fees,
	}
	fba.Compute(p)

	result := PricingResult{
		Product:      req.Product,
		Cost:         req.Cost,
		Fees:         req.Fees,
		CurrentPrice: req.CurrentPrice,
		Profit:       p.Profit,
		ROI:          p.ROI,
		Margin:       p.Margin,
	}

	// 竞品价格统计
	if len(req.CompetitorPrices) > 0 {
		min, max, sum := req.CompetitorPrices[0], req.CompetitorPrices[0], 0.0
		for _, cp := range req.CompetitorPrices {
			if cp < min {
				min = cp
			}
			if cp > max {
				max = cp
			}
			sum += cp
		}
		result.CompetitorMin = numeric.Round2(min)
		result.CompetitorAvg = numeric.Round2(sum / float64(len(req.CompetitorPrices)))
		result.CompetitorMax = numeric.Round2(max)
	}

	result.SuggestedPrice = suggestPrice(&result)
	result.Recommendations = recommend(&result)

	ginx.Success(c, result)
}

// suggestPrice 建议价：锚定竞品均价，下限为毛利率底线对应的价格
func suggestPrice(r *PricingResult) float64 {
	floor := (r.Cost + r.Fees) / (1 - minMarginPercent/100)

	target := r.CurrentPrice
	if r.CompetitorAvg > 0 {
		target = r.CompetitorAvg
	}

	if target < floor {
		target = floor
	}
	return numeric.Round2(target)
}

// recommend 定价建议
func recommend(r *PricingResult) []string {
	recs := make([]string, 0, 2)

	if r.Profit < 0 {
		recs = append(recs, fmt.Sprintf(
			"Selling at a loss (%.2f per unit): raise the price or cut cost and fees", r.Profit))
	} else if r.Margin.IsFinite() && float64(r.Margin) < minMarginPercent {
		recs = append(recs, fmt.Sprintf(
			"Margin below %.0f%%: consider moving toward the suggested price", minMarginPercent))
	}

	if r.CompetitorMax > 0 && r.CurrentPrice > r.CompetitorMax {
		recs = append(recs, "Priced above every competitor: expect reduced buy box share")
	}
	if r.CompetitorMin > 0 && r.CurrentPrice < r.CompetitorMin && r.Profit >= 0 {
		recs = append(recs, "Priced below the lowest competitor: there is room to raise the price")
	}

	if len(recs) == 0 {
		recs = append(recs, "Pricing is healthy; maintain current price point.")
	}

	return recs
}
