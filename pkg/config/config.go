package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置（apiserver 与 worker 共用同一结构，各自加载自己的 yaml）
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Server  ServerConfig   `mapstructure:"server"`
	MySQL   MySQLConfig    `mapstructure:"mysql"`
	Redis   RedisConfig    `mapstructure:"redis"`
	Lmstfy  LmstfyConfig   `mapstructure:"lmstfy"`
	Workers []WorkerConfig `mapstructure:"workers"`
	Tools   ToolsConfig    `mapstructure:"tools"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port      string          `mapstructure:"port"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig 固定窗口限流配置（Redis 计数器）
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"` // 窗口内允许的请求数
	Window   time.Duration `mapstructure:"window"`   // 窗口长度
}

// MySQLConfig MySQL 配置
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig Lmstfy 配置
type LmstfyConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Namespace     string `mapstructure:"namespace"`
	Token         string `mapstructure:"token"`
	Queue         string `mapstructure:"queue"`          // 报告任务队列
	CallbackQueue string `mapstructure:"callback_queue"` // 回调队列
}

// WorkerConfig Worker 配置
type WorkerConfig struct {
	Name          string           `mapstructure:"name"`
	QueueName     string           `mapstructure:"queue_name"`
	CallbackQueue string           `mapstructure:"callback_queue"`
	Subscriber    SubscriberConfig `mapstructure:"subscriber"`
	Processor     ProcessorConfig  `mapstructure:"processor"`
}

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	Threads      int           `mapstructure:"threads"`       // 并发拉取数
	Rate         time.Duration `mapstructure:"rate"`          // 拉取速率
	Timeout      time.Duration `mapstructure:"timeout"`       // 拉取超时
	TTR          time.Duration `mapstructure:"ttr"`           // Time-To-Run
	ErrorBackoff time.Duration `mapstructure:"error_backoff"` // 错误退避时间
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Threads    int           `mapstructure:"threads"`     // 并发处理数
	BufferSize int           `mapstructure:"buffer_size"` // Channel 缓冲大小
	Timeout    time.Duration `mapstructure:"timeout"`     // 单个任务超时
}

// ToolsConfig 报告工具阈值配置
type ToolsConfig struct {
	PPC PPCThresholds `mapstructure:"ppc"`
}

// PPCThresholds PPC 审计阈值（百分比/次数）
type PPCThresholds struct {
	HighACoS        float64 `mapstructure:"high_acos"`
	LowCTR          float64 `mapstructure:"low_ctr"`
	LowConversion   float64 `mapstructure:"low_conversion"`
	LowClicks       float64 `mapstructure:"low_clicks"`
	AutoHarvestACoS float64 `mapstructure:"auto_harvest_acos"`
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	// 未配置阈值时回填默认值
	cfg.Tools.PPC = cfg.Tools.PPC.withDefaults()

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}

	return &cfg, nil
}

// withDefaults 阈值为零值时使用文档默认值
func (t PPCThresholds) withDefaults() PPCThresholds {
	if t.HighACoS == 0 {
		t.HighACoS = 30
	}
	if t.LowCTR == 0 {
		t.LowCTR = 0.3
	}
	if t.LowConversion == 0 {
		t.LowConversion = 8
	}
	if t.LowClicks == 0 {
		t.LowClicks = 100
	}
	if t.AutoHarvestACoS == 0 {
		t.AutoHarvestACoS = 20
	}
	return t
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}
	return nil
}

// ValidateWorker 验证 worker 端必需配置
func (c *Config) ValidateWorker() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Workers) == 0 {
		return fmt.Errorf("at least one worker is required")
	}
	return nil
}

// ValidateServer 验证 apiserver 端必需配置
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}
	if c.Lmstfy.Queue == "" || c.Lmstfy.CallbackQueue == "" {
		return fmt.Errorf("lmstfy.queue and lmstfy.callback_queue are required")
	}
	return nil
}
