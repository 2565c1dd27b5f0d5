package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/business"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/domains/common"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/domains/common/response"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/model"
)

// Handler 报告处理 Handler
// 六种工具共用同一 Handler，action_type 即工具名
type Handler struct {
	ctx   context.Context
	meta  *model.Meta
	input *business.ReportInput
}

// NewHandler 创建报告 Handler
// 解析标准化 Job 消息中的业务数据
func NewHandler(ctx context.Context, meta *model.Meta, payload interface{}) (common.HandlerServ, error) {
	// 解析 payload（业务数据）
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload failed: %w", err)
	}

	var jobData model.ReportJobData
	if err := json.Unmarshal(payloadBytes, &jobData); err != nil {
		return nil, fmt.Errorf("unmarshal report job data failed: %w", err)
	}

	// 校验必填字段
	if jobData.ReportID == "" {
		return nil, fmt.Errorf("report_id is required")
	}
	if jobData.CSVData == "" {
		return nil, fmt.Errorf("csv_data is required")
	}

	// 工具名缺省时取 action_type（两者约定一致）
	tool := jobData.Tool
	if tool == "" {
		tool = meta.ActionType
	}

	input := &business.ReportInput{
		RequestID: meta.RequestID,
		ReportID:  jobData.ReportID,
		Tool:      tool,
		FileName:  jobData.FileName,
		CSVData:   jobData.CSVData,
	}

	return &Handler{
		ctx:   ctx,
		meta:  meta,
		input: input,
	}, nil
}

// GetProcess 处理报告请求
func (h *Handler) GetProcess() *response.Response {
	result := response.NewReportResult()

	data, err := h.process()
	if data != nil {
		result.Data = data
	}

	resp := &response.Response{}
	resp.WrapResponse(result, h.meta, err)

	return resp
}

// process 业务处理逻辑
func (h *Handler) process() (*model.ReportResultData, error) {
	// 从 Context 获取 ReportService
	reportService, ok := h.ctx.Value("report_service").(*business.ReportService)
	if !ok || reportService == nil {
		return nil, fmt.Errorf("ReportService not found in context")
	}

	return reportService.ExecuteReport(h.ctx, h.input)
}
