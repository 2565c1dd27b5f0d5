package request

// InventoryRequest 库存分析请求
type InventoryRequest struct {
	Items []InventoryItem `json:"items" binding:"required,min=1,dive"`
}

// InventoryItem 单个 SKU 的库存信息
type InventoryItem struct {
	SKU           string  `json:"sku" binding:"required"`
	Product       string  `json:"product" binding:"required"`
	CurrentStock  float64 `json:"current_stock" binding:"gte=0"`
	AvgDailySales float64 `json:"avg_daily_sales" binding:"gte=0"`
	LeadTimeDays  float64 `json:"lead_time_days" binding:"gte=0"`
	SafetyDays    float64 `json:"safety_days" binding:"gte=0"`
}

// PricingRequest 定价分析请求
// cost/current_price 必须为正，沿用手动录入的严格约束
type PricingRequest struct {
	Product          string    `json:"product" binding:"required"`
	Cost             float64   `json:"cost" binding:"gt=0"`
	Fees             float64   `json:"fees" binding:"gte=0"`
	CurrentPrice     float64   `json:"current_price" binding:"gt=0"`
	CompetitorPrices []float64 `json:"competitor_prices" binding:"omitempty,dive,gt=0"`
}
