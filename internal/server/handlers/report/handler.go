package report

import (
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/services/svreport"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/logger"
)

// ReportHandler 报告接口 Handler
type ReportHandler struct {
	reportService *svreport.ReportService
	logger        logger.Logger
}

// NewReportHandler 创建报告 Handler
func NewReportHandler(reportService *svreport.ReportService, log logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        log,
	}
}
