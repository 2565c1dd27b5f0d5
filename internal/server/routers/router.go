package routers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/server/handlers/amazon"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/server/handlers/report"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/server/middlewares"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/infra/redis"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/logger"
)

// RateLimitConfig 路由级限流参数
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	reportHandler *report.ReportHandler,
	amazonHandler *amazon.AmazonHandler,
	pubsub *redis.PubSub,
	rateLimit RateLimitConfig,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "sellsmart",
			"message": "Service is running",
		})
	})

	v1 := r.Group("/api/v1")
	if rateLimit.Requests > 0 && rateLimit.Window > 0 {
		v1.Use(middlewares.RateLimit(pubsub, rateLimit.Requests, rateLimit.Window, log))
	}
	{
		reports := v1.Group("/reports")
		{
			reports.POST("", reportHandler.Create)
			reports.GET("/:id", reportHandler.Get)
		}
	}

	amazonGroup := r.Group("/api/amazon")
	if rateLimit.Requests > 0 && rateLimit.Window > 0 {
		amazonGroup.Use(middlewares.RateLimit(pubsub, rateLimit.Requests, rateLimit.Window, log))
	}
	{
		amazonGroup.POST("/inventory", amazonHandler.Inventory)
		amazonGroup.POST("/pricing", amazonHandler.Pricing)
	}

	return r
}
