package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawRecord 解析后的原始 CSV 行
// Fields 的键为规范化列名（小写、去空白、空格转下划线），值为原始单元格文本。
// 校验通过后即丢弃，不向下游传递无类型 map。
type RawRecord struct {
	Index  int // 数据行号（首个数据行为 1）
	Fields map[string]string
}

// Text 取指定列的文本（去首尾空白）
func (r RawRecord) Text(col string) string {
	return strings.TrimSpace(r.Fields[col])
}

// Number 取指定列并转换为数字
// 缺失、空白或无法解析时返回错误（调用方负责包装为业务原因）
func (r RawRecord) Number(col string) (float64, error) {
	raw := r.Text(col)
	if raw == "" {
		return 0, fmt.Errorf("missing value for column %q", col)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q in column %q", raw, col)
	}
	// ParseFloat 接受 "NaN"/"Inf" 字面量，指标计算只允许有限输入
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q in column %q", raw, col)
	}
	return f, nil
}

// SkippedRow 校验失败被跳过的行（带原因，绝不静默丢弃）
type SkippedRow struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// NormalizeColumn 规范化列名：小写、去空白、空格转下划线
// 列名匹配不区分大小写即源于此
func NormalizeColumn(col string) string {
	col = strings.TrimSpace(strings.ToLower(col))
	col = strings.TrimPrefix(col, "\uFEFF") // UTF-8 BOM
	return strings.ReplaceAll(col, " ", "_")
}
