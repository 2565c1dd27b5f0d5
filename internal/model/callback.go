package model

import (
	"encoding/json"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

// 回调状态常量
const (
	CallbackStatusSuccess = "SUCCESS"
	CallbackStatusFailed  = "FAILED"
)

// ReportCallback worker 处理完成后发往回调队列的消息
type ReportCallback struct {
	RequestID   string            `json:"request_id"`
	ReportID    string            `json:"report_id"`
	Tool        string            `json:"tool"`
	Status      string            `json:"status"` // SUCCESS / FAILED
	Result      *ReportResultData `json:"result,omitempty"`
	Error       string            `json:"error,omitempty"`
	ProcessedAt int64             `json:"processed_at"` // Unix 时间戳
}

// ReportResultData 报告处理结果
// Results 按行预序列化，回调链路透传不丢失工具各自的结构
type ReportResultData struct {
	Tool          string                `json:"tool"`
	TotalRows     int                   `json:"total_rows"`     // 输入数据行数
	ProcessedRows int                   `json:"processed_rows"` // 通过校验的行数
	Results       []json.RawMessage     `json:"results"`
	Skipped       []pipeline.SkippedRow `json:"skipped"`
	ExportCSV     string                `json:"export_csv"`
}
