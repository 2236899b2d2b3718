package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/truths/cs-webhook-go/internal/config"
)

// NewRedisClient Redis 클라이언트 생성
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 연결 확인
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	return client, nil
}
