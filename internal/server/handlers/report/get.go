package report

import (
	"github.com/gin-gonic/gin"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/server/apimodel/response"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/ginx"
)

// Get 查询报告接口
// GET /api/v1/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	reportID := c.Param("id")
	if reportID == "" {
		ginx.BadRequest(c, "report id is required")
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), reportID)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "get report failed: report_id=%s, error=%v", reportID, err)
		ginx.InternalError(c, err.Error())
		return
	}

	if report == nil {
		ginx.NotFound(c, "report not found")
		return
	}

	ginx.Success(c, response.FromReportEntity(report))
}
