package middlewares

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/ginx"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/infra/redis"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/logger"
)

// RateLimit 固定窗口限流中间件（Redis 计数器，按客户端 IP 限流）
// Redis 故障时放行，限流不应成为单点
func RateLimit(pubsub *redis.PubSub, requests int, window time.Duration, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(window.Seconds()))

		count, err := pubsub.IncrWindow(c.Request.Context(), key, window)
		if err != nil {
			log.Warnf(c.Request.Context(), "rate limit check failed: %v", err)
			c.Next()
			return
		}

		if count > int64(requests) {
			ginx.TooManyRequests(c, "rate limit exceeded, please retry later")
			c.Abort()
			return
		}

		c.Next()
	}
}
