package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/consumer"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/entity"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/repo/rpreport"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/server/handlers/amazon"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/server/handlers/report"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/server/routers"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/services/svcallback"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/services/svreport"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/config"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/infra/redis"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/lmstfy"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/logger"
)

var (
	configPath = flag.String("config", "./config/config.yaml", "配置文件路径")
)

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化 Logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// 3. 初始化基础设施（MySQL / Redis / Lmstfy）
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect mysql: %v", err)
	}
	if err := db.AutoMigrate(&entity.Report{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	pubsub, err := redis.NewPubSub(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	defer pubsub.Close()

	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		log.Fatalf("Failed to create lmstfy client: %v", err)
	}

	// 4. 组装服务
	reportRepo := rpreport.NewReportRepository(db)
	reportService := svreport.NewReportService(reportRepo, lmstfyClient, pubsub, cfg.Lmstfy.Queue, zapLogger)
	callbackService := svcallback.NewCallbackService(reportRepo, pubsub, zapLogger)

	callbackConsumer := consumer.NewCallbackConsumer(lmstfyClient, callbackService, &consumer.Config{
		QueueName:    cfg.Lmstfy.CallbackQueue,
		Timeout:      3 * time.Second,
		TTR:          30 * time.Second,
		PollInterval: time.Second,
	}, zapLogger)

	reportHandler := report.NewReportHandler(reportService, zapLogger)
	amazonHandler := amazon.NewAmazonHandler(zapLogger)

	engine := routers.SetupRoutes(reportHandler, amazonHandler, pubsub, routers.RateLimitConfig{
		Requests: cfg.Server.RateLimit.Requests,
		Window:   cfg.Server.RateLimit.Window,
	}, zapLogger)

	// 5. 创建 HTTP Server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	// 6. 启动回调消费者（后台 goroutine）
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	consumerErrChan := make(chan error, 1)

	go func() {
		log.Printf("Starting callback consumer...")
		consumerErrChan <- callbackConsumer.Start(consumerCtx)
	}()

	// 7. 启动 HTTP Server（后台 goroutine）
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 8. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Println("Received shutdown signal, gracefully shutting down...")
		gracefulShutdown(server, cancelConsumer)
	case err := <-serverErrChan:
		log.Fatalf("HTTP server error: %v", err)
	case err := <-consumerErrChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Consumer error: %v", err)
		}
	}

	log.Println("Application stopped")
}

// gracefulShutdown 优雅停机
func gracefulShutdown(server *http.Server, cancelConsumer context.CancelFunc) {
	// 1. 停止 Consumer
	log.Println("Stopping consumer...")
	cancelConsumer()
	time.Sleep(1 * time.Second) // 等待消费者处理完当前消息

	// 2. 停止 HTTP Server
	log.Println("Stopping HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped gracefully")
	}

	log.Println("All services stopped gracefully")
}
