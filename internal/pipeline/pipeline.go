package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Row 单行处理结果（校验通过的行 + 派生指标 + 分析结论）
type Row interface {
	// ExportRow 按工具固定列序渲染导出行
	ExportRow() []string
}

// Tool 报告工具接口（六个工具各自实现）
// Process 内部完成 校验 → 指标计算 → 规则分析 三步
type Tool interface {
	Name() string
	RequiredColumns() []string
	ExportHeader() []string
	Process(rec RawRecord) (Row, error)
}

// Batch 一次批处理的全部产出
type Batch struct {
	Results []Row        `json:"results"`
	Skipped []SkippedRow `json:"skipped"`
}

// ErrEmptyFile 文件无数据行
var ErrEmptyFile = errors.New("file was empty")

// MissingColumnsError 表头缺少必需列（整批快速失败，唯一的 fail-fast 条件）
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// NoValidRowsError 输入非空但没有任何行通过校验
type NoValidRowsError struct {
	Total int
}

func (e *NoValidRowsError) Error() string {
	return fmt.Sprintf("no valid data after processing %d rows", e.Total)
}

// Runner 批处理执行器
type Runner struct {
	tool Tool

	// OnRecord 每处理完一行后的回调（进度条等），可为 nil
	OnRecord func(index int)
}

// NewRunner 创建执行器
func NewRunner(tool Tool) *Runner {
	return &Runner{tool: tool}
}

// CheckHeader 校验表头包含全部必需列
// 缺失时返回 MissingColumnsError，错误信息列出全部缺失列
func (r *Runner) CheckHeader(headers []string) error {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[NormalizeColumn(h)] = struct{}{}
	}

	var missing []string
	for _, col := range r.tool.RequiredColumns() {
		if _, ok := present[NormalizeColumn(col)]; !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Run 执行批处理
// 流程：表头检查（fail-fast）→ 逐行 校验/计算/分析（单行失败只记录并继续）
// 结果保持输入行序；零行通过且输入非空时返回 NoValidRowsError。
func (r *Runner) Run(headers []string, records []RawRecord) (*Batch, error) {
	if err := r.CheckHeader(headers); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	batch := &Batch{
		Results: make([]Row, 0, len(records)),
		Skipped: make([]SkippedRow, 0),
	}

	for _, rec := range records {
		row, err := r.tool.Process(rec)
		if err != nil {
			batch.Skipped = append(batch.Skipped, SkippedRow{
				Index:  rec.Index,
				Reason: err.Error(),
			})
		} else {
			batch.Results = append(batch.Results, row)
		}

		if r.OnRecord != nil {
			r.OnRecord(rec.Index)
		}
	}

	if len(batch.Results) == 0 {
		return nil, &NoValidRowsError{Total: len(records)}
	}

	return batch, nil
}
