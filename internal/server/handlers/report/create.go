package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/server/apimodel/request"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/ginx"
)

// Create 创建报告接口
// POST /api/v1/reports?wait=10
func (h *ReportHandler) Create(c *gin.Context) {
	waitSeconds := 0
	if waitStr := c.Query("wait"); waitStr != "" {
		if w, err := strconv.Atoi(waitStr); err == nil && w > 0 {
			waitSeconds = w
		}
	}

	var req request.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	report, callback, err := h.reportService.CreateReport(
		c.Request.Context(), req.Tool, req.FileName, req.CSVData, waitSeconds)
	if err != nil {
		// 数据问题（未知工具、空文件、缺列）是客户端错误
		if isDataError(err) {
			ginx.BadRequest(c, err.Error())
			return
		}
		h.logger.Errorf(c.Request.Context(), "create report failed: %v", err)
		ginx.InternalError(c, err.Error())
		return
	}

	// Smart Wait 拿到结果则直接返回（成功与失败均为终态）
	if callback != nil {
		ginx.Success(c, callback)
		return
	}

	// 未等待或等待超时：返回 Processing，客户端轮询
	pollURL := fmt.Sprintf("/api/v1/reports/%s", report.ID)
	ginx.Processing(c, report.ID, pollURL)
}

// isDataError 判断是否为确定性数据错误
func isDataError(err error) bool {
	var missing *pipeline.MissingColumnsError
	if errors.As(err, &missing) {
		return true
	}
	if errors.Is(err, pipeline.ErrEmptyFile) {
		return true
	}
	// 未知工具名
	return strings.HasPrefix(err.Error(), "unknown tool")
}
