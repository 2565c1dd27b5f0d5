package fba

import (
	"strings"
	"testing"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

func rec(fields map[string]string) pipeline.RawRecord {
	return pipeline.RawRecord{Index: 1, Fields: fields}
}

func TestProcess_LossMakingProduct(t *testing.T) {
	tool := New(Policy{})

	row, err := tool.Process(rec(map[string]string{
		"product": "Widget",
		"cost":    "10",
		"price":   "5",
		"fees":    "2",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	p := row.(*Product)
	if p.Profit != -7 {
		t.Fatalf("profit: got %v, want -7", p.Profit)
	}
	if got := float64(p.ROI); got != -70 {
		t.Fatalf("ROI: got %v, want -70", got)
	}
	if got := float64(p.Margin); got != -140 {
		t.Fatalf("margin: got %v, want -140", got)
	}
	if len(p.Issues) != 1 || p.Issues[0] != "Selling at a loss (-7.00 per unit)" {
		t.Fatalf("issues: got %v", p.Issues)
	}
}

func TestProcess_ThinMargin(t *testing.T) {
	tool := New(Policy{})

	row, err := tool.Process(rec(map[string]string{
		"product": "Gadget",
		"cost":    "80",
		"price":   "100",
		"fees":    "8",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	p := row.(*Product)
	if p.Profit != 12 {
		t.Fatalf("profit: got %v, want 12", p.Profit)
	}
	if len(p.Issues) != 1 || !strings.HasPrefix(p.Issues[0], "Thin margin") {
		t.Fatalf("issues: got %v", p.Issues)
	}
}

func TestProcess_Healthy(t *testing.T) {
	tool := New(Policy{})

	row, err := tool.Process(rec(map[string]string{
		"product": "Bestseller",
		"cost":    "50",
		"price":   "100",
		"fees":    "10",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	p := row.(*Product)
	if len(p.Issues) != 1 || p.Issues[0] != noIssueSentinel {
		t.Fatalf("issues: got %v, want sentinel", p.Issues)
	}
	if len(p.Recommendations) != 1 || p.Recommendations[0] != noRecommendationSentinel {
		t.Fatalf("recommendations: got %v, want sentinel", p.Recommendations)
	}
}

func TestProcess_Validation(t *testing.T) {
	tool := New(Policy{})

	_, err := tool.Process(rec(map[string]string{
		"product": "Broken",
		"cost":    "-3",
		"price":   "10",
		"fees":    "1",
	}))
	if err == nil || err.Error() != "Invalid or negative cost value" {
		t.Fatalf("got %v, want Invalid or negative cost value", err)
	}

	_, err = tool.Process(rec(map[string]string{
		"product": "",
		"cost":    "1",
		"price":   "2",
		"fees":    "0",
	}))
	if err == nil || err.Error() != "Invalid or missing product name" {
		t.Fatalf("got %v, want Invalid or missing product name", err)
	}

	// "NaN" 可被 ParseFloat 解析且通过负数检查，必须在校验阶段拒绝
	_, err = tool.Process(rec(map[string]string{
		"product": "Broken",
		"cost":    "NaN",
		"price":   "10",
		"fees":    "1",
	}))
	if err == nil || err.Error() != "Invalid or missing cost value" {
		t.Fatalf("got %v, want Invalid or missing cost value", err)
	}
}

func TestPolicy_RequirePositive(t *testing.T) {
	fields := map[string]string{
		"product": "FreeSample",
		"cost":    "0",
		"price":   "10",
		"fees":    "1",
	}

	// 批量策略允许零成本
	if _, err := New(Policy{}).Process(rec(fields)); err != nil {
		t.Fatalf("bulk policy should accept zero cost: %v", err)
	}

	// 严格策略拒绝
	_, err := New(Policy{RequirePositive: true}).Process(rec(fields))
	if err == nil || err.Error() != "Invalid cost value: must be greater than zero" {
		t.Fatalf("got %v, want Invalid cost value: must be greater than zero", err)
	}
}

func TestCompute_ZeroDenominators(t *testing.T) {
	p := &Product{Product: "Free", Cost: 0, Price: 0, Fees: 0}
	Compute(p)
	if p.Profit != 0 {
		t.Fatalf("profit: got %v, want 0", p.Profit)
	}
	// 0/0 定义为 0
	if float64(p.ROI) != 0 || float64(p.Margin) != 0 {
		t.Fatalf("ROI/margin: got %v/%v, want 0/0", p.ROI, p.Margin)
	}
}
