package listing

import (
	"strings"
	"testing"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

func rec(fields map[string]string) pipeline.RawRecord {
	return pipeline.RawRecord{Index: 1, Fields: fields}
}

func TestProcess_FullScore(t *testing.T) {
	tool := New()

	row, err := tool.Process(rec(map[string]string{
		"product":       "Premium Knife Set",
		"title":         strings.Repeat("t", 80),
		"description":   strings.Repeat("d", 1000),
		"bullet_points": "b1;b2;b3;b4;b5",
		"images":        "i1,i2,i3,i4,i5",
		"keywords":      "knife,kitchen,steel",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	r := row.(*Row)
	if r.Score != 100 || r.Grade != "A" {
		t.Fatalf("got score %d grade %s, want 100 A", r.Score, r.Grade)
	}
	if len(r.Issues) != 1 || r.Issues[0] != noIssueSentinel {
		t.Fatalf("issues: got %v, want sentinel", r.Issues)
	}
}

func TestProcess_EmptyListing(t *testing.T) {
	tool := New()

	row, err := tool.Process(rec(map[string]string{
		"product":       "Bare Listing",
		"title":         "short",
		"description":   "",
		"bullet_points": "",
		"images":        "",
		"keywords":      "",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	r := row.(*Row)
	if r.Score != 0 || r.Grade != "D" {
		t.Fatalf("got score %d grade %s, want 0 D", r.Score, r.Grade)
	}
	if len(r.Issues) != 5 {
		t.Fatalf("issues: got %d, want 5 failed checks", len(r.Issues))
	}
}

func TestGrade_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "A"}, {80, "A"}, {79, "B"}, {60, "B"}, {59, "C"}, {40, "C"}, {39, "D"}, {0, "D"},
	}
	for _, c := range cases {
		if got := grade(c.score); got != c.want {
			t.Fatalf("grade(%d): got %s, want %s", c.score, got, c.want)
		}
	}
}

func TestProcess_PartialScore(t *testing.T) {
	tool := New()

	// 标题 + 描述 + 关键词 = 25+25+10 = 60 → B
	row, err := tool.Process(rec(map[string]string{
		"product":       "Mid Listing",
		"title":         strings.Repeat("t", 120),
		"description":   strings.Repeat("d", 1500),
		"bullet_points": "b1;b2",
		"images":        "i1",
		"keywords":      "k1",
	}))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	r := row.(*Row)
	if r.Score != 60 || r.Grade != "B" {
		t.Fatalf("got score %d grade %s, want 60 B", r.Score, r.Grade)
	}
	if len(r.Issues) != 2 {
		t.Fatalf("issues: got %v, want bullet and image issues", r.Issues)
	}
}

func TestProcess_Validation(t *testing.T) {
	tool := New()

	_, err := tool.Process(rec(map[string]string{"product": ""}))
	if err == nil || err.Error() != "Invalid or missing product name" {
		t.Fatalf("got %v, want Invalid or missing product name", err)
	}
}
