package amazon

import (
	"fmt"
	"math"

	"github.com/gin-gonic/gin"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/numeric"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/server/apimodel/request"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/ginx"
)

// 库存状态常量
const (
	StockStatusCritical   = "CRITICAL"
	StockStatusReorderNow = "REORDER_NOW"
	StockStatusMonitor    = "MONITOR"
	StockStatusHealthy    = "HEALTHY"
)

// monitorBand 库存高于补货点但低于该倍数时进入观察状态
const monitorBand = 1.5

// InventoryResult 单个 SKU 的库存分析结果
type InventoryResult struct {
	SKU     string `json:"sku"`
	Product string `json:"product"`

	DaysOfStock     numeric.Ratio `json:"days_of_stock"`
	ReorderPoint    float64       `json:"reorder_point"`
	ReorderQuantity float64       `json:"reorder_quantity"`
	Status          string        `json:"status"`
	Analysis        string        `json:"analysis"`
}

// Inventory 库存分析接口
// POST /api/amazon/inventory
func (h *AmazonHandler) Inventory(c *gin.Context) {
	var req request.InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	results := make([]InventoryResult, 0, len(req.Items))
	for _, item := range req.Items {
		results = append(results, analyzeItem(item))
	}

	ginx.Success(c, gin.H{"items": results})
}

// analyzeItem 单个 SKU 库存分析
// 补货点 = 日均销量 ×（备货周期 + 安全天数），目标库存为补货点的两倍
func analyzeItem(item request.InventoryItem) InventoryResult {
	reorderPoint := numeric.Round2(item.AvgDailySales * (item.LeadTimeDays + item.SafetyDays))

	result := InventoryResult{
		SKU:          item.SKU,
		Product:      item.Product,
		DaysOfStock:  numeric.RatioOf(item.CurrentStock, item.AvgDailySales),
		ReorderPoint: reorderPoint,
	}

	switch {
	case item.CurrentStock <= 0:
		result.Status = StockStatusCritical
		result.Analysis = "Out of stock: listing is losing sales and organic rank"

	case item.CurrentStock <= reorderPoint:
		result.Status = StockStatusReorderNow
		result.Analysis = fmt.Sprintf(
			"Stock at or below reorder point (%.2f units): place a purchase order now", reorderPoint)

	case item.CurrentStock <= reorderPoint*monitorBand:
		result.Status = StockStatusMonitor
		result.Analysis = "Stock approaching reorder point: review supplier lead times"

	default:
		result.Status = StockStatusHealthy
		result.Analysis = "Stock level is healthy"
	}

	// 目标库存缺口即建议采购量
	if result.Status == StockStatusCritical || result.Status == StockStatusReorderNow {
		qty := math.Ceil(reorderPoint*2 - item.CurrentStock)
		if qty < 0 {
			qty = 0
		}
		result.ReorderQuantity = qty
	}

	return result
}
