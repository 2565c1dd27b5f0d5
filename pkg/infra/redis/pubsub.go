package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PubSub Redis 客户端封装（发布/订阅 + 限流计数器）
type PubSub struct {
	client *redis.Client
}

// NewPubSub 创建 PubSub 实例，支持密码认证
func NewPubSub(addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 测试连接
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &PubSub{
		client: client,
	}, nil
}

// ReportChannel 报告结果独立频道名称
func ReportChannel(reportID string) string {
	return fmt.Sprintf("report:result:%s", reportID)
}

// Publish 向指定 channel 发布消息
func (p *PubSub) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Subscription 单频道订阅句柄
// Smart Wait 必须先订阅再发布任务，否则 worker 在订阅建立前完成时通知会丢失
type Subscription interface {
	// Wait 阻塞等待一条消息，超时返回 context.DeadlineExceeded
	Wait(ctx context.Context, timeout time.Duration) (string, error)

	// Close 取消订阅并释放连接
	Close() error
}

type subscription struct {
	sub *redis.PubSub
}

// Subscribe 订阅指定 channel，返回时订阅已在服务端生效
func (p *PubSub) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	sub := p.client.Subscribe(ctx, channel)

	// 等待订阅确认，保证此后发布的消息一定可见
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe to %s failed: %w", channel, err)
	}

	return &subscription{sub: sub}, nil
}

// Wait 实现 Subscription 接口
func (s *subscription) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case msg := <-s.sub.Channel():
		return msg.Payload, nil
	case <-timeoutCtx.Done():
		return "", timeoutCtx.Err()
	}
}

// Close 实现 Subscription 接口
func (s *subscription) Close() error {
	return s.sub.Close()
}

// IncrWindow 固定窗口计数（限流用）：首次计数时设置窗口过期
func (p *PubSub) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := p.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("rate limit incr failed: %w", err)
	}
	if count == 1 {
		if err := p.client.Expire(ctx, key, window).Err(); err != nil {
			return count, fmt.Errorf("rate limit expire failed: %w", err)
		}
	}
	return count, nil
}

// Close 关闭 Redis 连接
func (p *PubSub) Close() error {
	return p.client.Close()
}
