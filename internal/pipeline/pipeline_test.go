package pipeline

import (
	"errors"
	"strings"
	"testing"
)

// echoTool 测试用工具：value 列为 "bad" 时拒行
type echoTool struct{}

type echoRow struct {
	Name  string
	Value string
}

func (echoTool) Name() string              { return "echo" }
func (echoTool) RequiredColumns() []string { return []string{"name", "value"} }
func (echoTool) ExportHeader() []string    { return []string{"name", "value"} }

func (echoTool) Process(rec RawRecord) (Row, error) {
	if rec.Text("value") == "bad" {
		return nil, errors.New("bad value")
	}
	return &echoRow{Name: rec.Text("name"), Value: rec.Text("value")}, nil
}

func (r *echoRow) ExportRow() []string { return []string{r.Name, r.Value} }

func TestRun_MissingColumns(t *testing.T) {
	runner := NewRunner(echoTool{})

	_, err := runner.Run([]string{"name"}, []RawRecord{{Index: 1}})
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingColumnsError", err)
	}
	if err.Error() != "missing required columns: value" {
		t.Fatalf("got %q", err.Error())
	}
}

func TestRun_HeaderCaseInsensitive(t *testing.T) {
	runner := NewRunner(echoTool{})

	// 表头大小写与空白不影响匹配
	if err := runner.CheckHeader([]string{" Name ", "VALUE"}); err != nil {
		t.Fatalf("header check: %v", err)
	}
}

func TestRun_EmptyFile(t *testing.T) {
	runner := NewRunner(echoTool{})

	_, err := runner.Run([]string{"name", "value"}, nil)
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("got %v, want ErrEmptyFile", err)
	}
}

func TestRun_NoValidRows(t *testing.T) {
	runner := NewRunner(echoTool{})

	records := []RawRecord{
		{Index: 1, Fields: map[string]string{"name": "a", "value": "bad"}},
		{Index: 2, Fields: map[string]string{"name": "b", "value": "bad"}},
	}

	_, err := runner.Run([]string{"name", "value"}, records)
	var noValid *NoValidRowsError
	if !errors.As(err, &noValid) {
		t.Fatalf("got %v, want NoValidRowsError", err)
	}
	if err.Error() != "no valid data after processing 2 rows" {
		t.Fatalf("got %q", err.Error())
	}
}

func TestRun_SkipAndOrder(t *testing.T) {
	runner := NewRunner(echoTool{})

	var seen []int
	runner.OnRecord = func(index int) { seen = append(seen, index) }

	records := []RawRecord{
		{Index: 1, Fields: map[string]string{"name": "a", "value": "1"}},
		{Index: 2, Fields: map[string]string{"name": "b", "value": "bad"}},
		{Index: 3, Fields: map[string]string{"name": "c", "value": "3"}},
	}

	batch, err := runner.Run([]string{"name", "value"}, records)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// 单行失败不中断批次，结果保持输入行序
	if len(batch.Results) != 2 {
		t.Fatalf("results: got %d, want 2", len(batch.Results))
	}
	if batch.Results[0].(*echoRow).Name != "a" || batch.Results[1].(*echoRow).Name != "c" {
		t.Fatalf("order broken: %v", batch.Results)
	}

	if len(batch.Skipped) != 1 {
		t.Fatalf("skipped: got %d, want 1", len(batch.Skipped))
	}
	if batch.Skipped[0].Index != 2 || batch.Skipped[0].Reason != "bad value" {
		t.Fatalf("skipped: got %+v", batch.Skipped[0])
	}

	if len(seen) != 3 {
		t.Fatalf("progress callback: got %v, want all 3 rows", seen)
	}
}

func TestDecode(t *testing.T) {
	input := "Name,Value\na,1\nb\n"

	headers, records, err := DecodeString(input)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(headers) != 2 {
		t.Fatalf("headers: got %v", headers)
	}
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}

	// 键已规范化；缺失单元格按空处理
	if records[0].Text("name") != "a" || records[0].Text("value") != "1" {
		t.Fatalf("record 0: got %+v", records[0].Fields)
	}
	if records[1].Text("value") != "" {
		t.Fatalf("ragged row: got %q, want empty", records[1].Text("value"))
	}
	if records[0].Index != 1 || records[1].Index != 2 {
		t.Fatalf("indexes: got %d/%d, want 1/2", records[0].Index, records[1].Index)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	_, _, err := DecodeString("")
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("got %v, want ErrEmptyFile", err)
	}
}

func TestExport_RoundTrip(t *testing.T) {
	tool := echoTool{}
	batch := &Batch{
		Results: []Row{
			&echoRow{Name: "plain", Value: "1"},
			&echoRow{Name: `with "quotes", and comma`, Value: "2"},
		},
	}

	out, err := Export(tool, batch)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	headers, records, err := DecodeString(out)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if strings.Join(headers, ",") != "name,value" {
		t.Fatalf("headers: got %v", headers)
	}
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}
	// 引号与逗号经转义后无损往返
	if records[1].Text("name") != `with "quotes", and comma` {
		t.Fatalf("quoting broken: got %q", records[1].Text("name"))
	}
}

func TestNumber_RejectsNonFinite(t *testing.T) {
	r := RawRecord{Index: 1, Fields: map[string]string{}}

	// ParseFloat 接受这些字面量，但指标计算只允许有限输入
	for _, val := range []string{"NaN", "nan", "Inf", "-Inf", "Infinity", "+Inf"} {
		r.Fields["v"] = val
		if _, err := r.Number("v"); err == nil {
			t.Fatalf("%q should be rejected", val)
		}
	}

	r.Fields["v"] = "3.14"
	if f, err := r.Number("v"); err != nil || f != 3.14 {
		t.Fatalf("finite parse: got %v, %v", f, err)
	}
}

func TestNormalizeColumn_BOM(t *testing.T) {
	if got := NormalizeColumn("\uFEFFCampaign Name"); got != "campaign_name" {
		t.Fatalf("got %q, want campaign_name", got)
	}
}
