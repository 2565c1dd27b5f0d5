package keyword

import (
	"reflect"
	"testing"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

func rec(fields map[string]string) pipeline.RawRecord {
	return pipeline.RawRecord{Index: 1, Fields: fields}
}

func TestProcess_Dedupe(t *testing.T) {
	tool := New()

	row, err := tool.Process(rec(map[string]string{
		"product":  "Yoga Mat",
		"keywords": "yoga mat, Yoga Mat, exercise mat, yoga MAT, fitness",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	r := row.(*Row)
	// 大小写不敏感去重，保留首次出现的原始拼写与顺序
	want := []string{"yoga mat", "exercise mat", "fitness"}
	if !reflect.DeepEqual(r.Keywords, want) {
		t.Fatalf("keywords: got %v, want %v", r.Keywords, want)
	}
	if r.TotalKeywords != 5 || r.UniqueKeywords != 3 || r.DuplicatesRemoved != 2 {
		t.Fatalf("counts: got %d/%d/%d, want 5/3/2", r.TotalKeywords, r.UniqueKeywords, r.DuplicatesRemoved)
	}
	if got := float64(r.DedupeRate); got != 40 {
		t.Fatalf("dedupe rate: got %v, want 40", got)
	}
}

func TestProcess_NoDuplicates(t *testing.T) {
	tool := New()

	row, err := tool.Process(rec(map[string]string{
		"product":  "Water Bottle",
		"keywords": "bottle, insulated, steel",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	r := row.(*Row)
	if r.DuplicatesRemoved != 0 || float64(r.DedupeRate) != 0 {
		t.Fatalf("expected no duplicates, got %d removed, rate %v", r.DuplicatesRemoved, r.DedupeRate)
	}
}

func TestProcess_Validation(t *testing.T) {
	tool := New()

	_, err := tool.Process(rec(map[string]string{"product": "", "keywords": "a,b"}))
	if err == nil || err.Error() != "Invalid or missing product name" {
		t.Fatalf("got %v, want Invalid or missing product name", err)
	}

	_, err = tool.Process(rec(map[string]string{"product": "X", "keywords": " , ,"}))
	if err == nil || err.Error() != "Invalid or missing keywords value" {
		t.Fatalf("got %v, want Invalid or missing keywords value", err)
	}
}
