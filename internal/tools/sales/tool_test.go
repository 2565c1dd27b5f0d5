package sales

import (
	"testing"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

func rec(fields map[string]string) pipeline.RawRecord {
	return pipeline.RawRecord{Index: 1, Fields: fields}
}

func TestProcess_Deterministic(t *testing.T) {
	tool := New()

	fields := map[string]string{
		"product":  "Wireless Earbuds",
		"category": "Electronics",
		"price":    "29.99",
		"rating":   "4.6",
		"reviews":  "1200",
	}

	first, err := tool.Process(rec(fields))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	second, err := tool.Process(rec(fields))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	// 同一输入必须产生同一估算（波动因子由商品名哈希播种）
	a, b := first.(*Row), second.(*Row)
	if a.EstimatedMonthlySales != b.EstimatedMonthlySales {
		t.Fatalf("sales estimate not deterministic: %d vs %d", a.EstimatedMonthlySales, b.EstimatedMonthlySales)
	}
	if a.EstimatedMonthlyRevenue != b.EstimatedMonthlyRevenue {
		t.Fatalf("revenue estimate not deterministic: %v vs %v", a.EstimatedMonthlyRevenue, b.EstimatedMonthlyRevenue)
	}
	if a.EstimatedMonthlySales <= 0 {
		t.Fatalf("estimate should be positive, got %d", a.EstimatedMonthlySales)
	}
}

func TestProcess_OptionalColumns(t *testing.T) {
	tool := New()

	row, err := tool.Process(rec(map[string]string{
		"product":  "Desk Lamp",
		"category": "Home",
		"price":    "24.99",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	r := row.(*Row)
	if r.Rating != 0 || r.Reviews != 0 {
		t.Fatalf("optional columns should default to zero, got %v/%d", r.Rating, r.Reviews)
	}
	// 已知类目 + 无评分 + 无评论 → 50+20
	if got := float64(r.Confidence); got != 70 {
		t.Fatalf("confidence: got %v, want 70", got)
	}
}

func TestProcess_UnknownCategory(t *testing.T) {
	tool := New()

	row, err := tool.Process(rec(map[string]string{
		"product":  "Obscure Thing",
		"category": "Collectibles",
		"price":    "45",
		"rating":   "4.2",
		"reviews":  "88",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	r := row.(*Row)
	if got := float64(r.Confidence); got != 80 {
		t.Fatalf("confidence: got %v, want 80", got)
	}
	if r.EstimatedMonthlySales <= 0 {
		t.Fatalf("estimate should be positive, got %d", r.EstimatedMonthlySales)
	}
}

func TestProcess_Validation(t *testing.T) {
	tool := New()

	_, err := tool.Process(rec(map[string]string{
		"product":  "X",
		"category": "Home",
		"price":    "0",
	}))
	if err == nil || err.Error() != "Invalid price value: must be greater than zero" {
		t.Fatalf("got %v, want Invalid price value: must be greater than zero", err)
	}

	_, err = tool.Process(rec(map[string]string{
		"product":  "X",
		"category": "",
		"price":    "10",
	}))
	if err == nil || err.Error() != "Invalid or missing category value" {
		t.Fatalf("got %v, want Invalid or missing category value", err)
	}

	// "NaN" 可被 ParseFloat 解析且通过 <=0 检查，必须在校验阶段拒绝
	_, err = tool.Process(rec(map[string]string{
		"product":  "X",
		"category": "Home",
		"price":    "NaN",
	}))
	if err == nil || err.Error() != "Invalid or missing price value" {
		t.Fatalf("got %v, want Invalid or missing price value", err)
	}
}

func TestHashSeed_Stable(t *testing.T) {
	if hashSeed("Wireless Earbuds") != hashSeed("Wireless Earbuds") {
		t.Fatal("hash seed must be stable for the same product name")
	}
	if hashSeed("A") == hashSeed("B") {
		t.Fatal("distinct names should not collide on this input")
	}
}
