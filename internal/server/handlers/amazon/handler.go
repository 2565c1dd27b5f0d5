package amazon

import (
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/logger"
)

// AmazonHandler 同步计算器接口 Handler
// 库存与定价分析为纯计算，不入队不落库
type AmazonHandler struct {
	logger logger.Logger
}

// NewAmazonHandler 创建同步计算器 Handler
func NewAmazonHandler(log logger.Logger) *AmazonHandler {
	return &AmazonHandler{logger: log}
}
