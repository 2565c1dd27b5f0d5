package keyword

import (
	"errors"
	"strconv"
	"strings"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/numeric"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

// ToolName HandlerMap 路由键
const ToolName = "keyword_dedupe"

// Row 单个商品的关键词去重结果
type Row struct {
	Product  string   `json:"product"`
	Keywords []string `json:"keywords"` // 去重后，保留首次出现顺序

	TotalKeywords     int           `json:"total_keywords"`
	UniqueKeywords    int           `json:"unique_keywords"`
	DuplicatesRemoved int           `json:"duplicates_removed"`
	DedupeRate        numeric.Ratio `json:"dedupe_rate"` // 重复占比（百分比）
}

// Tool 关键词去重工具
type Tool struct{}

// New 创建关键词去重工具
func New() *Tool {
	return &Tool{}
}

// Name 工具名
func (t *Tool) Name() string {
	return ToolName
}

// RequiredColumns 必需列
func (t *Tool) RequiredColumns() []string {
	return []string{"product", "keywords"}
}

// ExportHeader 导出列序
func (t *Tool) ExportHeader() []string {
	return []string{
		"product", "keywords",
		"total_keywords", "unique_keywords", "duplicates_removed", "dedupe_rate",
	}
}

// Process 校验 → 拆分 → 去重（大小写不敏感，保序）
func (t *Tool) Process(rec pipeline.RawRecord) (pipeline.Row, error) {
	product := rec.Text("product")
	if product == "" {
		return nil, errors.New("Invalid or missing product name")
	}

	raw := rec.Text("keywords")
	if raw == "" {
		return nil, errors.New("Invalid or missing keywords value")
	}

	total := 0
	seen := make(map[string]struct{})
	unique := make([]string, 0)

	for _, kw := range strings.Split(raw, ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		total++

		key := strings.ToLower(kw)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, kw)
	}

	if total == 0 {
		return nil, errors.New("Invalid or missing keywords value")
	}

	removed := total - len(unique)
	return &Row{
		Product:           product,
		Keywords:          unique,
		TotalKeywords:     total,
		UniqueKeywords:    len(unique),
		DuplicatesRemoved: removed,
		DedupeRate:        numeric.ZeroPercentOf(float64(removed), float64(total)),
	}, nil
}

// ExportRow 实现 pipeline.Row
func (r *Row) ExportRow() []string {
	return []string{
		r.Product,
		pipeline.JoinList(r.Keywords),
		strconv.Itoa(r.TotalKeywords),
		strconv.Itoa(r.UniqueKeywords),
		strconv.Itoa(r.DuplicatesRemoved),
		r.DedupeRate.String(),
	}
}
