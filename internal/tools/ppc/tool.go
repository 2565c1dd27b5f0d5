package ppc

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

// ToolName HandlerMap 路由键
const ToolName = "ppc_audit"

// Tool PPC 广告活动审计工具
type Tool struct {
	thresholds Thresholds
}

// New 创建 PPC 审计工具
func New(thresholds Thresholds) *Tool {
	return &Tool{thresholds: thresholds}
}

// Name 工具名
func (t *Tool) Name() string {
	return ToolName
}

// RequiredColumns 必需列
func (t *Tool) RequiredColumns() []string {
	return []string{"name", "type", "spend", "sales", "impressions", "clicks"}
}

// ExportHeader 导出列序
func (t *Tool) ExportHeader() []string {
	return []string{
		"name", "type", "spend", "sales", "impressions", "clicks",
		"acos", "roas", "ctr", "cpc", "conversion_rate",
		"issues", "recommendations",
	}
}

// Process 校验 → 计算指标 → 规则分析
func (t *Tool) Process(rec pipeline.RawRecord) (pipeline.Row, error) {
	c, err := t.validate(rec)
	if err != nil {
		return nil, err
	}

	c.Metrics = computeMetrics(c.Spend, c.Sales, c.Impressions, c.Clicks)
	c.Analysis = t.analyze(c)

	return c, nil
}

// validate 行校验：必需字符串非空、数字可解析且符号约束成立
func (t *Tool) validate(rec pipeline.RawRecord) (*Campaign, error) {
	name := rec.Text("name")
	if name == "" {
		return nil, errors.New("Invalid or missing campaign name")
	}

	campaignType := rec.Text("type")
	if campaignType == "" {
		return nil, errors.New("Invalid or missing campaign type")
	}

	spend, err := nonNegative(rec, "spend")
	if err != nil {
		return nil, err
	}
	sales, err := nonNegative(rec, "sales")
	if err != nil {
		return nil, err
	}
	impressions, err := nonNegativeInt(rec, "impressions")
	if err != nil {
		return nil, err
	}
	clicks, err := nonNegativeInt(rec, "clicks")
	if err != nil {
		return nil, err
	}

	return &Campaign{
		Name:        name,
		Type:        campaignType,
		Spend:       spend,
		Sales:       sales,
		Impressions: impressions,
		Clicks:      clicks,
	}, nil
}

// nonNegative 解析非负数字段
func nonNegative(rec pipeline.RawRecord, col string) (float64, error) {
	f, err := rec.Number(col)
	if err != nil {
		return 0, fmt.Errorf("Invalid or missing %s value", col)
	}
	if f < 0 {
		return 0, fmt.Errorf("Invalid or negative %s value", col)
	}
	return f, nil
}

// nonNegativeInt 解析非负整数字段（impressions/clicks 必须为整数）
func nonNegativeInt(rec pipeline.RawRecord, col string) (int, error) {
	f, err := rec.Number(col)
	if err != nil {
		return 0, fmt.Errorf("Invalid or missing %s value", col)
	}
	if f < 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("Invalid %s value: must be a non-negative integer", col)
	}
	return int(f), nil
}

// ExportRow 实现 pipeline.Row
func (c *Campaign) ExportRow() []string {
	return []string{
		c.Name,
		c.Type,
		strconv.FormatFloat(c.Spend, 'f', 2, 64),
		strconv.FormatFloat(c.Sales, 'f', 2, 64),
		strconv.Itoa(c.Impressions),
		strconv.Itoa(c.Clicks),
		c.ACoS.String(),
		c.ROAS.String(),
		c.CTR.String(),
		c.CPC.String(),
		c.ConversionRate.String(),
		pipeline.JoinList(c.Issues),
		pipeline.JoinList(c.Recommendations),
	}
}
