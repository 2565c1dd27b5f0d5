package rpreport

import (
	"context"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/entity"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/model"
)

// ReportRepository 报告仓储接口（只定义，不实现）
type ReportRepository interface {
	// Create 创建报告记录
	Create(ctx context.Context, report *entity.Report) error

	// GetByID 根据 ID 查询报告
	GetByID(ctx context.Context, reportID string) (*entity.Report, error)

	// UpdateResult 写入处理结果（成功传 result，失败传 errorMsg）
	UpdateResult(ctx context.Context, reportID string, result *model.ReportResultData, status string, errorMsg string) error

	// List 按工具分页查询报告列表
	List(ctx context.Context, tool string, page, limit int) ([]*entity.Report, int64, error)
}
