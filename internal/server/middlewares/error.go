package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/ginx"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// 捕获 panic 并兜底返回 500，业务错误由各 Handler 自行响应
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(c.Request.Context(), "panic recovered: %v", r)
				ginx.InternalError(c, "internal server error")
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			ginx.InternalError(c, c.Errors.Last().Error())
		}
	}
}
