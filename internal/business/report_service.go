package business

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/model"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/errorutil"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/lmstfy"
)

// ReportInput 报告处理输入（全部来自 payload，不查数据库）
type ReportInput struct {
	RequestID string
	ReportID  string
	Tool      string
	FileName  string
	CSVData   string
}

// ReportService 报告服务（仅负责批处理逻辑，不涉及 DB 操作）
// 职责：执行批处理 → 发送回调到 callback 队列
type ReportService struct {
	options       tools.Options
	lmstfyClient  *lmstfy.Client
	callbackQueue string
}

// NewReportService 创建报告服务实例
func NewReportService(
	options tools.Options,
	lmstfyClient *lmstfy.Client,
	callbackQueue string,
) *ReportService {
	return &ReportService{
		options:       options,
		lmstfyClient:  lmstfyClient,
		callbackQueue: callbackQueue,
	}
}

// ExecuteReport 执行批处理并发送回调
// 数据错误照常发送 FAILED 回调并返回不可重试错误；回调发送失败返回可重试错误
func (s *ReportService) ExecuteReport(ctx context.Context, input *ReportInput) (*model.ReportResultData, error) {
	// 1. 执行批处理（使用 payload 传入的 CSV 数据）
	resultData, runErr := s.runPipeline(input)

	// 2. 构造回调消息
	callback := model.ReportCallback{
		RequestID:   input.RequestID,
		ReportID:    input.ReportID,
		Tool:        input.Tool,
		ProcessedAt: time.Now().Unix(),
	}

	if runErr != nil {
		callback.Status = model.CallbackStatusFailed
		callback.Error = runErr.Error()
	} else {
		callback.Status = model.CallbackStatusSuccess
		callback.Result = resultData
	}

	// 3. 序列化回调消息为 JSON
	callbackJSON, err := json.Marshal(callback)
	if err != nil {
		return nil, errorutil.NonRetriableWithDetails("marshal callback failed", err.Error())
	}

	// 4. 发送回调到 callback 队列
	// ttl=0 表示永不过期，delay=0 表示立即可用
	if err := s.lmstfyClient.Publish(s.callbackQueue, callbackJSON, 0, 0); err != nil {
		return nil, errorutil.RetriableWithDetails("publish callback failed", err.Error())
	}

	return resultData, runErr
}

// runPipeline 解析 → 逐行处理 → 导出
// 所有失败均为数据问题，重投不会改变结果，一律不可重试
func (s *ReportService) runPipeline(input *ReportInput) (*model.ReportResultData, error) {
	tool, err := tools.New(input.Tool, s.options)
	if err != nil {
		return nil, errorutil.NonRetriable(err.Error())
	}

	headers, records, err := pipeline.DecodeString(input.CSVData)
	if err != nil {
		return nil, errorutil.NonRetriable(err.Error())
	}

	runner := pipeline.NewRunner(tool)
	batch, err := runner.Run(headers, records)
	if err != nil {
		return nil, errorutil.NonRetriable(err.Error())
	}

	exportCSV, err := pipeline.Export(tool, batch)
	if err != nil {
		return nil, errorutil.NonRetriableWithDetails(
			fmt.Sprintf("export failed for tool %s", input.Tool), err.Error())
	}

	// 逐行预序列化，回调 JSON 中保留工具各自的字段结构
	rows := make([]json.RawMessage, 0, len(batch.Results))
	for _, row := range batch.Results {
		rowJSON, err := json.Marshal(row)
		if err != nil {
			return nil, errorutil.NonRetriableWithDetails("marshal result row failed", err.Error())
		}
		rows = append(rows, rowJSON)
	}

	return &model.ReportResultData{
		Tool:          input.Tool,
		TotalRows:     len(records),
		ProcessedRows: len(batch.Results),
		Results:       rows,
		Skipped:       batch.Skipped,
		ExportCSV:     exportCSV,
	}, nil
}
