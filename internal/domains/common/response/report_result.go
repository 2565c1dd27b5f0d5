package response

import (
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/model"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/errorutil"
)

// ReportResult 报告处理结果（实现 ResultI 接口）
type ReportResult struct {
	ID     string                  `json:"id"`
	Status string                  `json:"status"`
	Data   *model.ReportResultData `json:"data,omitempty"`
	Error  *errorutil.Error        `json:"error,omitempty"`
}

// NewReportResult 创建报告结果
func NewReportResult() *ReportResult {
	return &ReportResult{}
}

// Set 实现 ResultI 接口
func (r *ReportResult) Set(meta *model.Meta, err error) {
	r.ID = meta.ID
	if err != nil {
		r.Status = model.CallbackStatusFailed
		r.Error = errorutil.Wrap(err)
	} else {
		r.Status = model.CallbackStatusSuccess
	}
}

// GetStatus 实现 ResultI 接口
func (r *ReportResult) GetStatus() string {
	return r.Status
}
