package ppc

import (
	"strings"
	"testing"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

func rec(fields map[string]string) pipeline.RawRecord {
	return pipeline.RawRecord{Index: 1, Fields: fields}
}

func TestProcess_DerivedMetrics(t *testing.T) {
	tool := New(DefaultThresholds())

	row, err := tool.Process(rec(map[string]string{
		"name":        "Brand Defense",
		"type":        "manual",
		"spend":       "245.67",
		"sales":       "1245.89",
		"impressions": "12450",
		"clicks":      "320",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	c := row.(*Campaign)
	if got := float64(c.ACoS); got != 19.72 {
		t.Fatalf("ACoS: got %v, want 19.72", got)
	}
	if got := float64(c.ROAS); got != 5.07 {
		t.Fatalf("ROAS: got %v, want 5.07", got)
	}
	if got := float64(c.CTR); got != 2.57 {
		t.Fatalf("CTR: got %v, want 2.57", got)
	}
	if got := float64(c.CPC); got != 0.77 {
		t.Fatalf("CPC: got %v, want 0.77", got)
	}
	if got := float64(c.ConversionRate); got != 389.34 {
		t.Fatalf("conversion rate: got %v, want 389.34", got)
	}

	// 无规则命中时结论为哨兵文案
	if len(c.Issues) != 1 || c.Issues[0] != NoIssueSentinel {
		t.Fatalf("issues: got %v, want sentinel", c.Issues)
	}
	if len(c.Recommendations) != 1 || c.Recommendations[0] != NoRecommendationSentinel {
		t.Fatalf("recommendations: got %v, want sentinel", c.Recommendations)
	}
}

func TestProcess_AutoHarvest(t *testing.T) {
	tool := New(DefaultThresholds())

	row, err := tool.Process(rec(map[string]string{
		"name":        "Auto Discovery",
		"type":        "Auto",
		"spend":       "245.67",
		"sales":       "1245.89",
		"impressions": "12450",
		"clicks":      "320",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	c := row.(*Campaign)
	if len(c.Issues) != 1 || c.Issues[0] != NoIssueSentinel {
		t.Fatalf("issues: got %v, want sentinel", c.Issues)
	}
	found := false
	for _, r := range c.Recommendations {
		if strings.Contains(r, "Harvest") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected harvest recommendation, got %v", c.Recommendations)
	}
}

func TestProcess_NoSalesShortCircuit(t *testing.T) {
	tool := New(DefaultThresholds())

	row, err := tool.Process(rec(map[string]string{
		"name":        "Dead Campaign",
		"type":        "manual",
		"spend":       "150.00",
		"sales":       "0",
		"impressions": "500",
		"clicks":      "10",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	c := row.(*Campaign)
	// 无销售短路：其余规则（低 CTR、低点击量）不再叠加
	if len(c.Issues) != 1 || c.Issues[0] != "No Sales Recorded" {
		t.Fatalf("issues: got %v, want [No Sales Recorded]", c.Issues)
	}
	if len(c.Recommendations) != 1 || !strings.Contains(c.Recommendations[0], "Pause campaign") {
		t.Fatalf("high spend should suggest pausing, got %v", c.Recommendations)
	}

	// 导出时非有限指标渲染为字面量
	cells := c.ExportRow()
	if cells[6] != "Infinity" {
		t.Fatalf("acos cell: got %q, want Infinity", cells[6])
	}
}

func TestProcess_NoSalesLowSpend(t *testing.T) {
	tool := New(DefaultThresholds())

	row, err := tool.Process(rec(map[string]string{
		"name":        "New Campaign",
		"type":        "manual",
		"spend":       "42.50",
		"sales":       "0",
		"impressions": "200",
		"clicks":      "5",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	c := row.(*Campaign)
	if len(c.Recommendations) != 1 || !strings.Contains(c.Recommendations[0], "Review targeting") {
		t.Fatalf("low spend should suggest reviewing targeting, got %v", c.Recommendations)
	}
}

func TestProcess_RulesStack(t *testing.T) {
	tool := New(DefaultThresholds())

	// ACoS 50%、CTR 0.15%：两条规则同时命中
	row, err := tool.Process(rec(map[string]string{
		"name":        "Wasteful",
		"type":        "manual",
		"spend":       "50",
		"sales":       "100",
		"impressions": "100000",
		"clicks":      "150",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	c := row.(*Campaign)
	if len(c.Issues) != 2 {
		t.Fatalf("issues: got %v, want 2 stacked issues", c.Issues)
	}
	if !strings.HasPrefix(c.Issues[0], "High ACoS") || !strings.HasPrefix(c.Issues[1], "Low CTR") {
		t.Fatalf("issue order: got %v", c.Issues)
	}
}

func TestProcess_Validation(t *testing.T) {
	tool := New(DefaultThresholds())

	base := map[string]string{
		"name":        "C1",
		"type":        "manual",
		"spend":       "10",
		"sales":       "20",
		"impressions": "100",
		"clicks":      "10",
	}

	cases := []struct {
		col, val, want string
	}{
		{"name", "", "Invalid or missing campaign name"},
		{"type", "  ", "Invalid or missing campaign type"},
		{"spend", "-1", "Invalid or negative spend value"},
		{"spend", "abc", "Invalid or missing spend value"},
		{"sales", "", "Invalid or missing sales value"},
		{"clicks", "3.5", "Invalid clicks value: must be a non-negative integer"},
		{"impressions", "-10", "Invalid impressions value: must be a non-negative integer"},

		// ParseFloat 能解析的非有限字面量也必须拒绝，否则 NaN 穿透符号检查污染指标
		{"spend", "NaN", "Invalid or missing spend value"},
		{"sales", "Inf", "Invalid or missing sales value"},
		{"impressions", "Infinity", "Invalid or missing impressions value"},
	}

	for _, c := range cases {
		fields := make(map[string]string, len(base))
		for k, v := range base {
			fields[k] = v
		}
		fields[c.col] = c.val

		_, err := tool.Process(rec(fields))
		if err == nil || err.Error() != c.want {
			t.Fatalf("%s=%q: got %v, want %q", c.col, c.val, err, c.want)
		}
	}
}
