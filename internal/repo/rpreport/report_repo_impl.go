package rpreport

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/entity"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/model"
)

// ReportRepositoryImpl 报告仓储实现（MySQL）
type ReportRepositoryImpl struct {
	db *gorm.DB
}

// NewReportRepository 创建报告仓储实例
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

// Create 创建报告记录
func (r *ReportRepositoryImpl) Create(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// GetByID 根据 ID 查询报告，未找到时返回 (nil, nil)
func (r *ReportRepositoryImpl) GetByID(ctx context.Context, reportID string) (*entity.Report, error) {
	var report entity.Report
	err := r.db.WithContext(ctx).Where("id = ?", reportID).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

// UpdateResult 写入处理结果（支持成功/失败两种情况）
func (r *ReportRepositoryImpl) UpdateResult(ctx context.Context, reportID string, result *model.ReportResultData, status string, errorMsg string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}

	if result != nil {
		resultJSON, err := json.Marshal(result)
		if err != nil {
			return err
		}
		updates["result"] = resultJSON
	}

	if errorMsg != "" {
		updates["error_message"] = errorMsg
	}

	return r.db.WithContext(ctx).
		Model(&entity.Report{}).
		Where("id = ?", reportID).
		Updates(updates).Error
}

// List 按工具分页查询报告列表
func (r *ReportRepositoryImpl) List(ctx context.Context, tool string, page, limit int) ([]*entity.Report, int64, error) {
	var total int64
	var reports []*entity.Report

	query := r.db.WithContext(ctx).Model(&entity.Report{})
	if tool != "" {
		query = query.Where("tool = ?", tool)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}
