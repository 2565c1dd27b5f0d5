package acos

import (
	"testing"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

func rec(fields map[string]string) pipeline.RawRecord {
	return pipeline.RawRecord{Index: 1, Fields: fields}
}

func TestProcess_Ratings(t *testing.T) {
	tool := New()

	cases := []struct {
		spend, sales string
		acos         float64
		rating       string
	}{
		{"10", "100", 10, RatingExcellent},
		{"20", "100", 20, RatingGood},
		{"30", "100", 30, RatingFair},
		{"40", "100", 40, RatingPoor},
	}

	for _, c := range cases {
		row, err := tool.Process(rec(map[string]string{
			"campaign": "C1",
			"ad_spend": c.spend,
			"sales":    c.sales,
		}))
		if err != nil {
			t.Fatalf("%s/%s: %v", c.spend, c.sales, err)
		}
		r := row.(*Row)
		if float64(r.ACoS) != c.acos {
			t.Fatalf("%s/%s: ACoS got %v, want %v", c.spend, c.sales, r.ACoS, c.acos)
		}
		if r.Rating != c.rating {
			t.Fatalf("%s/%s: rating got %q, want %q", c.spend, c.sales, r.Rating, c.rating)
		}
	}
}

func TestProcess_NoSalesRating(t *testing.T) {
	tool := New()

	row, err := tool.Process(rec(map[string]string{
		"campaign": "Dead",
		"ad_spend": "25",
		"sales":    "0",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	r := row.(*Row)
	if r.Rating != RatingNoSales {
		t.Fatalf("rating: got %q, want %q", r.Rating, RatingNoSales)
	}
	if cells := r.ExportRow(); cells[3] != "Infinity" {
		t.Fatalf("acos cell: got %q, want Infinity", cells[3])
	}
}

func TestProcess_Validation(t *testing.T) {
	tool := New()

	_, err := tool.Process(rec(map[string]string{
		"campaign": "C1",
		"ad_spend": "-5",
		"sales":    "10",
	}))
	if err == nil || err.Error() != "Invalid or negative ad_spend value" {
		t.Fatalf("got %v, want Invalid or negative ad_spend value", err)
	}

	// "NaN" 可被 ParseFloat 解析且通过负数检查，必须在校验阶段拒绝
	_, err = tool.Process(rec(map[string]string{
		"campaign": "C1",
		"ad_spend": "NaN",
		"sales":    "10",
	}))
	if err == nil || err.Error() != "Invalid or missing ad_spend value" {
		t.Fatalf("got %v, want Invalid or missing ad_spend value", err)
	}
}
