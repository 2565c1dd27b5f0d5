package pipeline

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// ListSeparator 导出时数组字段（issues/recommendations/keywords）的连接符
const ListSeparator = "; "

// Export 将批处理结果扁平化为 CSV 文本
// 列序由工具固定；数字两位小数、非有限值为字面量 "Infinity"；
// 引号/逗号转义交由 encoding/csv 处理。
func Export(tool Tool, batch *Batch) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(tool.ExportHeader()); err != nil {
		return "", fmt.Errorf("csv: write header: %w", err)
	}

	for _, row := range batch.Results {
		if err := w.Write(row.ExportRow()); err != nil {
			return "", fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv: flush: %w", err)
	}

	return sb.String(), nil
}

// JoinList 以统一分隔符连接数组字段
func JoinList(items []string) string {
	return strings.Join(items, ListSeparator)
}
