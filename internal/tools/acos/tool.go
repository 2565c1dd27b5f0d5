package acos

import (
	"errors"
	"strconv"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/numeric"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

// ToolName HandlerMap 路由键
const ToolName = "acos_report"

// 评级区间（ACoS 百分比上限）
const (
	excellentBelow = 15.0
	goodBelow      = 25.0
	fairBelow      = 35.0
)

// 评级常量
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingFair      = "Fair"
	RatingPoor      = "Poor"
	RatingNoSales   = "No Sales"
)

// Row 单条广告活动的 ACoS 结果
type Row struct {
	Campaign string  `json:"campaign"`
	AdSpend  float64 `json:"ad_spend"`
	Sales    float64 `json:"sales"`

	ACoS   numeric.Ratio `json:"acos"`
	ROAS   numeric.Ratio `json:"roas"`
	Rating string        `json:"rating"`
}

// Tool ACoS 报告工具
type Tool struct{}

// New 创建 ACoS 报告工具
func New() *Tool {
	return &Tool{}
}

// Name 工具名
func (t *Tool) Name() string {
	return ToolName
}

// RequiredColumns 必需列
func (t *Tool) RequiredColumns() []string {
	return []string{"campaign", "ad_spend", "sales"}
}

// ExportHeader 导出列序
func (t *Tool) ExportHeader() []string {
	return []string{"campaign", "ad_spend", "sales", "acos", "roas", "rating"}
}

// Process 校验 → 计算 ACoS/ROAS → 评级
func (t *Tool) Process(rec pipeline.RawRecord) (pipeline.Row, error) {
	campaign := rec.Text("campaign")
	if campaign == "" {
		return nil, errors.New("Invalid or missing campaign name")
	}

	adSpend, err := rec.Number("ad_spend")
	if err != nil {
		return nil, errors.New("Invalid or missing ad_spend value")
	}
	if adSpend < 0 {
		return nil, errors.New("Invalid or negative ad_spend value")
	}

	sales, err := rec.Number("sales")
	if err != nil {
		return nil, errors.New("Invalid or missing sales value")
	}
	if sales < 0 {
		return nil, errors.New("Invalid or negative sales value")
	}

	row := &Row{
		Campaign: campaign,
		AdSpend:  adSpend,
		Sales:    sales,
		ACoS:     numeric.PercentOf(adSpend, sales),
		ROAS:     numeric.RatioOf(sales, adSpend),
	}
	row.Rating = rate(row.ACoS)

	return row, nil
}

// rate ACoS 评级
func rate(acos numeric.Ratio) string {
	if !acos.IsFinite() {
		return RatingNoSales
	}
	switch v := float64(acos); {
	case v < excellentBelow:
		return RatingExcellent
	case v < goodBelow:
		return RatingGood
	case v < fairBelow:
		return RatingFair
	default:
		return RatingPoor
	}
}

// ExportRow 实现 pipeline.Row
func (r *Row) ExportRow() []string {
	return []string{
		r.Campaign,
		strconv.FormatFloat(r.AdSpend, 'f', 2, 64),
		strconv.FormatFloat(r.Sales, 'f', 2, 64),
		r.ACoS.String(),
		r.ROAS.String(),
		r.Rating,
	}
}
