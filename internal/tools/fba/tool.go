package fba

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/numeric"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

// ToolName HandlerMap 路由键
const ToolName = "fba_profit"

// Policy 符号约束策略
// 批量 CSV 允许 cost/price 为 0（RequirePositive=false），
// 同步定价接口沿用手动录入的严格约束（RequirePositive=true）。
// 两种历史行为都保留，由调用方显式选择。
type Policy struct {
	RequirePositive bool
}

// Product 单个商品的利润结果
type Product struct {
	Product string  `json:"product"`
	Cost    float64 `json:"cost"`
	Price   float64 `json:"price"`
	Fees    float64 `json:"fees"`

	Profit float64       `json:"profit"` // price − cost − fees，可为负
	ROI    numeric.Ratio `json:"roi"`
	Margin numeric.Ratio `json:"margin"`

	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// 利润分析阈值与哨兵文案
const (
	thinMarginPercent = 15.0

	noIssueSentinel          = "No profitability issues detected."
	noRecommendationSentinel = "Pricing is healthy; maintain current price point."
)

// Tool FBA 利润计算工具
type Tool struct {
	policy Policy
}

// New 创建 FBA 利润工具
func New(policy Policy) *Tool {
	return &Tool{policy: policy}
}

// Name 工具名
func (t *Tool) Name() string {
	return ToolName
}

// RequiredColumns 必需列
func (t *Tool) RequiredColumns() []string {
	return []string{"product", "cost", "price", "fees"}
}

// ExportHeader 导出列序
func (t *Tool) ExportHeader() []string {
	return []string{
		"product", "cost", "price", "fees",
		"profit", "roi", "margin",
		"issues", "recommendations",
	}
}

// Process 校验 → 计算利润指标 → 分析
func (t *Tool) Process(rec pipeline.RawRecord) (pipeline.Row, error) {
	p, err := t.validate(rec)
	if err != nil {
		return nil, err
	}

	Compute(p)
	t.analyze(p)

	return p, nil
}

// Compute 计算利润、ROI、毛利率（供同步定价接口复用）
// ROI = profit/cost×100，Margin = profit/price×100，零分母按符号取 ±Infinity/0
func Compute(p *Product) {
	p.Profit = numeric.Round2(p.Price - p.Cost - p.Fees)
	p.ROI = numeric.PercentOf(p.Profit, p.Cost)
	p.Margin = numeric.PercentOf(p.Profit, p.Price)
}

// validate 行校验
func (t *Tool) validate(rec pipeline.RawRecord) (*Product, error) {
	name := rec.Text("product")
	if name == "" {
		return nil, errors.New("Invalid or missing product name")
	}

	cost, err := t.signedField(rec, "cost")
	if err != nil {
		return nil, err
	}
	price, err := t.signedField(rec, "price")
	if err != nil {
		return nil, err
	}

	fees, err := rec.Number("fees")
	if err != nil {
		return nil, errors.New("Invalid or missing fees value")
	}
	if fees < 0 {
		return nil, errors.New("Invalid or negative fees value")
	}

	return &Product{
		Product: name,
		Cost:    cost,
		Price:   price,
		Fees:    fees,
	}, nil
}

// signedField 按策略校验 cost/price 符号
func (t *Tool) signedField(rec pipeline.RawRecord, col string) (float64, error) {
	f, err := rec.Number(col)
	if err != nil {
		return 0, fmt.Errorf("Invalid or missing %s value", col)
	}
	if f < 0 {
		return 0, fmt.Errorf("Invalid or negative %s value", col)
	}
	if t.policy.RequirePositive && f == 0 {
		return 0, fmt.Errorf("Invalid %s value: must be greater than zero", col)
	}
	return f, nil
}

// analyze 利润阈值规则
func (t *Tool) analyze(p *Product) {
	p.Issues = make([]string, 0, 2)
	p.Recommendations = make([]string, 0, 2)

	if p.Profit < 0 {
		p.Issues = append(p.Issues, fmt.Sprintf("Selling at a loss (%.2f per unit)", p.Profit))
		p.Recommendations = append(p.Recommendations,
			"Raise the price or renegotiate product cost and fees")
	} else if p.Margin.IsFinite() && float64(p.Margin) < thinMarginPercent {
		p.Issues = append(p.Issues, fmt.Sprintf("Thin margin (%s%%)", p.Margin))
		p.Recommendations = append(p.Recommendations,
			"Review fee structure; small cost changes can erase this margin")
	}

	if len(p.Issues) == 0 {
		p.Issues = append(p.Issues, noIssueSentinel)
	}
	if len(p.Recommendations) == 0 {
		p.Recommendations = append(p.Recommendations, noRecommendationSentinel)
	}
}

// ExportRow 实现 pipeline.Row
func (p *Product) ExportRow() []string {
	return []string{
		p.Product,
		strconv.FormatFloat(p.Cost, 'f', 2, 64),
		strconv.FormatFloat(p.Price, 'f', 2, 64),
		strconv.FormatFloat(p.Fees, 'f', 2, 64),
		strconv.FormatFloat(p.Profit, 'f', 2, 64),
		p.ROI.String(),
		p.Margin.String(),
		pipeline.JoinList(p.Issues),
		pipeline.JoinList(p.Recommendations),
	}
}
