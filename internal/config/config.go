package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 애플리케이션 설정
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Notion    NotionConfig    `yaml:"notion"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Slack     SlackConfig     `yaml:"slack"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port    int    `yaml:"port"`
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// NotionConfig 노션 CS 문의 DB 설정
type NotionConfig struct {
	Token      string `yaml:"token"`
	DatabaseID string `yaml:"databaseId"`
}

// AnthropicConfig Claude API 설정
type AnthropicConfig struct {
	APIKey    string `yaml:"apiKey"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"maxTokens"`
}

// SlackConfig 슬랙 웹훅 설정
type SlackConfig struct {
	WebhookURL string `yaml:"webhookUrl"`
}

// RedisConfig Redis 설정 (addr 미설정 시 중복 수신 차단 비활성)
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig 로그 설정
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// LoadConfig 설정 파일 로드 (환경 변수가 파일 값을 덮어씀)
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("설정 파일 파싱 실패: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// applyEnv 환경 변수 오버라이드
func applyEnv(cfg *Config) {
	if v := os.Getenv("NOTION_TOKEN"); v != "" {
		cfg.Notion.Token = v
	}
	if v := os.Getenv("NOTION_DB_ID"); v != "" {
		cfg.Notion.DatabaseID = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Slack.WebhookURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}

// applyDefaults 생략 가능한 항목 기본값
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Name == "" {
		cfg.Server.Name = "CS 문의 자동화 웹훅"
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = "1.0.0"
	}
	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = "claude-sonnet-4-20250514"
	}
	if cfg.Anthropic.MaxTokens == 0 {
		cfg.Anthropic.MaxTokens = 512
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
