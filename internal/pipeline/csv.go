package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Decode 解析 CSV 输入
// 首行为表头；返回原始表头与规范化键的记录序列。
// 允许行字段数不齐（缺失单元格视为空），整个文件无法解析时返回结构错误。
func Decode(r io.Reader) ([]string, []RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv failed: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil, ErrEmptyFile
	}

	headers := rows[0]
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = NormalizeColumn(h)
	}

	records := make([]RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		fields := make(map[string]string, len(keys))
		for j, key := range keys {
			if j < len(row) {
				fields[key] = row[j]
			} else {
				fields[key] = ""
			}
		}
		records = append(records, RawRecord{
			Index:  i + 1,
			Fields: fields,
		})
	}

	return headers, records, nil
}

// DecodeString 从字符串解析 CSV（任务 payload 携带的 csv_data）
func DecodeString(data string) ([]string, []RawRecord, error) {
	return Decode(strings.NewReader(data))
}
