package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/truths/cs-webhook-go/internal/client"
	"github.com/truths/cs-webhook-go/internal/config"
	"github.com/truths/cs-webhook-go/internal/handler"
	"github.com/truths/cs-webhook-go/internal/middleware"
	"github.com/truths/cs-webhook-go/internal/service"
	"github.com/truths/cs-webhook-go/pkg/logger"
	"github.com/truths/cs-webhook-go/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	// .env 로드 (파일 없으면 무시)
	_ = godotenv.Load()

	// 설정 로드
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/webhook.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// 로그 초기화
	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("로그 초기화 실패: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("cs-webhook 서비스 시작 중...")

	// 외부 클라이언트 초기화
	llmClient := client.NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, zapLogger)
	notionClient := client.NewNotionClient(cfg.Notion.Token, cfg.Notion.DatabaseID, zapLogger)
	slackClient := client.NewSlackClient(cfg.Slack.WebhookURL, zapLogger)

	// 중복 수신 차단 (Redis 미설정 시 비활성)
	var dedup *service.DedupStore
	if cfg.Redis.Addr != "" {
		redisClient, err := redis.NewRedisClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("Redis 연결 실패", zap.Error(err))
		}
		dedup = service.NewDedupStore(redisClient, zapLogger)
		zapLogger.Info("중복 수신 차단 활성화", zap.String("addr", cfg.Redis.Addr))
	}

	// 서비스 조립
	draftService := service.NewDraftService(llmClient, zapLogger)
	inquiryService := service.NewInquiryService(draftService, notionClient, slackClient, zapLogger)
	webhookHandler := handler.NewWebhookHandler(inquiryService, dedup, cfg.Server.Name, cfg.Server.Version, zapLogger)

	// 라우터 초기화
	r := gin.Default()
	r.Use(middleware.RequestID())

	r.GET("/", webhookHandler.Health)
	r.POST("/webhook", webhookHandler.Receive)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 서비스 시작
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zapLogger.Info("cs-webhook 서비스 시작 완료", zap.Int("port", cfg.Server.Port))

	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("서비스 시작 실패", zap.Error(err))
	}
}
