package response

import (
	"encoding/json"
	"time"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/entity"
)

// ReportResponse 报告查询响应
type ReportResponse struct {
	ID           string          `json:"id"`
	Tool         string          `json:"tool"`
	FileName     string          `json:"file_name,omitempty"`
	Status       string          `json:"status"`
	Result       json.RawMessage `json:"result,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FromReportEntity 实体转换为响应模型
func FromReportEntity(report *entity.Report) *ReportResponse {
	resp := &ReportResponse{
		ID:           report.ID,
		Tool:         report.Tool,
		FileName:     report.FileName,
		Status:       report.Status,
		ErrorMessage: report.ErrorMessage,
		CreatedAt:    report.CreatedAt,
		UpdatedAt:    report.UpdatedAt,
	}

	if len(report.Result) > 0 {
		resp.Result = json.RawMessage(report.Result)
	}

	return resp
}
