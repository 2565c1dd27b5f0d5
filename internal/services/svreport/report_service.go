package svreport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/entity"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/model"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/repo/rpreport"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/infra/redis"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/logger"
)

// JobQueue 任务发布端（lmstfy 客户端实现）
type JobQueue interface {
	Publish(queue string, data []byte, ttl, delay uint32) error
}

// ResultBus 报告结果通知订阅端（redis PubSub 实现）
type ResultBus interface {
	Subscribe(ctx context.Context, channel string) (redis.Subscription, error)
}

// ReportService 报告服务，负责报告业务编排
type ReportService struct {
	reportRepo rpreport.ReportRepository
	jobQueue   JobQueue
	resultBus  ResultBus
	queueName  string
	logger     logger.Logger
}

// NewReportService 创建报告服务实例
func NewReportService(
	reportRepo rpreport.ReportRepository,
	jobQueue JobQueue,
	resultBus ResultBus,
	queueName string,
	log logger.Logger,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		jobQueue:   jobQueue,
		resultBus:  resultBus,
		queueName:  queueName,
		logger:     log,
	}
}

// CreateReport 创建报告（完整业务流程）
// 1. 校验工具名与 CSV 表头（快速失败，不入队脏数据）
// 2. 创建报告记录并落库（PROCESSING）
// 3. Smart Wait 时先订阅结果频道
// 4. 发布到报告任务队列
// 5. 等待处理结果（可选）
func (s *ReportService) CreateReport(ctx context.Context, tool, fileName, csvData string, waitSeconds int) (*entity.Report, *model.ReportCallback, error) {
	// 1. 校验工具名
	t, err := tools.New(tool, tools.DefaultOptions())
	if err != nil {
		return nil, nil, err
	}

	// 表头缺列是确定性失败，入队前同步拦截
	headers, _, err := pipeline.DecodeString(csvData)
	if err != nil {
		return nil, nil, err
	}
	if err := pipeline.NewRunner(t).CheckHeader(headers); err != nil {
		return nil, nil, err
	}

	// 2. 创建报告记录并落库
	report := &entity.Report{
		ID:        uuid.New().String(),
		Tool:      tool,
		FileName:  fileName,
		Status:    entity.ReportStatusProcessing,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, nil, fmt.Errorf("save report failed: %w", err)
	}

	// 3. Smart Wait 先订阅结果频道再发布任务
	// worker 可能在任意短的时间内完成，订阅晚于发布会丢失通知、退化为轮询
	var sub redis.Subscription
	if waitSeconds > 0 {
		var err error
		sub, err = s.resultBus.Subscribe(ctx, redis.ReportChannel(report.ID))
		if err != nil {
			// 订阅失败不阻塞创建流程，客户端轮询查询接口
			s.logger.Warnf(ctx, "subscribe report result failed: report_id=%s, error=%v", report.ID, err)
			sub = nil
		}
	}
	if sub != nil {
		defer sub.Close()
	}

	// 4. 发布到报告任务队列
	if err := s.publishReportJob(ctx, report, csvData); err != nil {
		// 发布失败只记录日志，报告停留在 PROCESSING，可由查询接口观察到
		s.logger.Warnf(ctx, "publish report job failed: report_id=%s, error=%v", report.ID, err)
	}

	// 5. 等待处理结果
	if sub != nil {
		timeout := time.Duration(waitSeconds) * time.Second
		callback, err := s.waitForResult(ctx, sub, timeout)
		if err != nil {
			// 超时只记录日志，客户端轮询查询接口
			s.logger.Warnf(ctx, "wait for report result failed: report_id=%s, error=%v", report.ID, err)
			return report, nil, nil
		}
		return report, callback, nil
	}

	return report, nil, nil
}

// GetReport 查询报告
func (s *ReportService) GetReport(ctx context.Context, reportID string) (*entity.Report, error) {
	return s.reportRepo.GetByID(ctx, reportID)
}

// ListReports 查询报告列表
func (s *ReportService) ListReports(ctx context.Context, tool string, page, limit int) ([]*entity.Report, int64, error) {
	return s.reportRepo.List(ctx, tool, page, limit)
}

// publishReportJob 构造标准 Job 信封并发布
// CSV 全文随 payload 传输，worker 端不访问数据库
func (s *ReportService) publishReportJob(ctx context.Context, report *entity.Report, csvData string) error {
	job := &model.Job{
		Payload: &model.JobPayload{
			Data: &model.JobPayloadData{
				RequestID:  uuid.New().String(),
				ActionType: report.Tool,
				ID:         report.ID,
				Data: &model.ReportJobData{
					ReportID: report.ID,
					Tool:     report.Tool,
					FileName: report.FileName,
					CSVData:  csvData,
				},
			},
		},
	}

	jobJSON, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job failed: %w", err)
	}

	if err := s.jobQueue.Publish(s.queueName, jobJSON, 0, 0); err != nil {
		return fmt.Errorf("publish job failed: %w", err)
	}

	s.logger.Infof(ctx, "report job published: report_id=%s, tool=%s, queue=%s",
		report.ID, report.Tool, s.queueName)

	return nil
}

// waitForResult 在已建立的订阅上阻塞等待回调通知
func (s *ReportService) waitForResult(ctx context.Context, sub redis.Subscription, timeout time.Duration) (*model.ReportCallback, error) {
	payload, err := sub.Wait(ctx, timeout)
	if err != nil {
		return nil, err
	}

	var callback model.ReportCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		return nil, fmt.Errorf("unmarshal result notification failed: %w", err)
	}

	return &callback, nil
}
