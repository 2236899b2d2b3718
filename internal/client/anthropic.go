package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/truths/cs-webhook-go/internal/metrics"
	"go.uber.org/zap"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicClient Claude 메시지 API 클라이언트
type AnthropicClient struct {
	apiKey     string
	model      string
	maxTokens  int
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAnthropicClient Claude 클라이언트 생성
func NewAnthropicClient(apiKey, model string, maxTokens int, logger *zap.Logger) *AnthropicClient {
	return &AnthropicClient{
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		baseURL:    anthropicBaseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Message 대화 메시지
type Message struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

// MessagesRequest 메시지 생성 요청
type MessagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

// ContentBlock 응답 콘텐츠 블록
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MessagesResponse 메시지 생성 응답
type MessagesResponse struct {
	ID         string         `json:"id"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Complete 시스템 프롬프트 + 단일 사용자 메시지로 답변 생성
func (c *AnthropicClient) Complete(systemPrompt, userMessage string) (string, error) {
	reqBody := MessagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages: []Message{
			{Role: "user", Content: userMessage},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("요청 직렬화 실패: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("요청 생성 실패: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.OutboundCallDuration.WithLabelValues("anthropic", "error").Observe(time.Since(start).Seconds())
		return "", fmt.Errorf("요청 실패: %w", err)
	}
	defer resp.Body.Close()
	metrics.OutboundCallDuration.WithLabelValues("anthropic", fmt.Sprintf("%d", resp.StatusCode)).Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("응답 읽기 실패: %w", err)
	}

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("Claude API 오류: %d, body: %s", resp.StatusCode, string(body))
	}

	var msgResp MessagesResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return "", fmt.Errorf("응답 파싱 실패: %w", err)
	}

	for _, block := range msgResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("응답에 텍스트 블록 없음: %s", msgResp.ID)
}
