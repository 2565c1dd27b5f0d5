package svcallback

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/entity"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/model"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/repo/rpreport"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/infra/redis"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/logger"
)

// CallbackService 回调处理服务
// 职责：
// 1. 处理 worker 发送的报告回调
// 2. 更新 DB 报告状态
// 3. 发送 Redis PubSub 通知（Smart Wait）
type CallbackService struct {
	reportRepo rpreport.ReportRepository
	pubsub     *redis.PubSub
	logger     logger.Logger
}

// NewCallbackService 创建回调服务实例
func NewCallbackService(
	reportRepo rpreport.ReportRepository,
	pubsub *redis.PubSub,
	log logger.Logger,
) *CallbackService {
	return &CallbackService{
		reportRepo: reportRepo,
		pubsub:     pubsub,
		logger:     log,
	}
}

// HandleCallback 处理报告回调
// 返回 error 表示处理失败（需要重试）
func (s *CallbackService) HandleCallback(ctx context.Context, callback *model.ReportCallback) error {
	s.logger.Infof(ctx, "Processing callback: report_id=%s, status=%s, request_id=%s",
		callback.ReportID, callback.Status, callback.RequestID)

	// 1. 根据回调状态更新 DB
	if err := s.updateReportStatus(ctx, callback); err != nil {
		s.logger.Errorf(ctx, "Failed to update report status: report_id=%s, error=%v",
			callback.ReportID, err)
		return fmt.Errorf("update report status failed: %w", err)
	}

	// 2. 发送 Redis PubSub 通知（Smart Wait）
	// 通知失败不影响整体流程（DB 已更新成功），只记录日志
	if err := s.publishNotification(ctx, callback); err != nil {
		s.logger.Warnf(ctx, "Failed to publish redis notification: report_id=%s, error=%v",
			callback.ReportID, err)
	}

	s.logger.Infof(ctx, "Callback processed successfully: report_id=%s", callback.ReportID)

	return nil
}

// updateReportStatus 根据回调状态更新报告
func (s *CallbackService) updateReportStatus(ctx context.Context, callback *model.ReportCallback) error {
	if callback.Status == model.CallbackStatusSuccess {
		return s.reportRepo.UpdateResult(
			ctx,
			callback.ReportID,
			callback.Result,
			entity.ReportStatusCompleted,
			"",
		)
	}

	return s.reportRepo.UpdateResult(
		ctx,
		callback.ReportID,
		nil,
		entity.ReportStatusFailed,
		callback.Error,
	)
}

// publishNotification 发送 Redis PubSub 通知（使用报告独立频道）
func (s *CallbackService) publishNotification(ctx context.Context, callback *model.ReportCallback) error {
	channel := redis.ReportChannel(callback.ReportID)

	// 通知数据即完整回调，Smart Wait 端直接反序列化
	payload, err := json.Marshal(callback)
	if err != nil {
		return fmt.Errorf("marshal notification failed: %w", err)
	}

	if err := s.pubsub.Publish(ctx, channel, payload); err != nil {
		return fmt.Errorf("publish to redis failed: %w", err)
	}

	s.logger.Infof(ctx, "Redis notification sent: report_id=%s, channel=%s",
		callback.ReportID, channel)

	return nil
}
