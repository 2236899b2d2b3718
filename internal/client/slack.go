package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/truths/cs-webhook-go/internal/metrics"
	"github.com/truths/cs-webhook-go/internal/model"
	"go.uber.org/zap"
)

const (
	// 슬랙 메시지 내 발췌 상한 (문자 수)
	slackContentLimit = 300
	slackDraftLimit   = 500
)

// confidenceEmoji 신뢰도별 표시 이모지
var confidenceEmoji = map[string]string{
	model.ConfidenceHigh:   "🟢",
	model.ConfidenceMedium: "🟡",
	model.ConfidenceLow:    "🔴",
}

// SlackClient 슬랙 웹훅 알림 클라이언트
type SlackClient struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSlackClient 슬랙 클라이언트 생성
func NewSlackClient(webhookURL string, logger *zap.Logger) *SlackClient {
	return &SlackClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Block Kit 메시지 구조
type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string        `json:"type"`
	Text     *slackText    `json:"text,omitempty"`
	Fields   []slackText   `json:"fields,omitempty"`
	Elements []slackButton `json:"elements,omitempty"`
}

type slackText struct {
	Type  string `json:"type"` // plain_text, mrkdwn
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type slackButton struct {
	Type  string    `json:"type"`
	Text  slackText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style"`
}

// Notify 새 문의 알림 전송
func (c *SlackClient) Notify(inq *model.Inquiry, draft *model.Draft, notionURL string) error {
	emoji, ok := confidenceEmoji[draft.Confidence]
	if !ok {
		emoji = "⚪"
	}

	qnaNoLabel := "-"
	if inq.QnaNo != nil {
		qnaNoLabel = fmt.Sprintf("%d", *inq.QnaNo)
	}

	message := slackMessage{
		Blocks: []slackBlock{
			{
				Type: "header",
				Text: &slackText{Type: "plain_text", Text: "📩 새 CS 문의 접수", Emoji: true},
			},
			{
				Type: "section",
				Fields: []slackText{
					{Type: "mrkdwn", Text: fmt.Sprintf("*문의번호:*\n#%s", qnaNoLabel)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*채널:*\n%s", inq.Channel)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*고객:*\n%s", inq.WriterName)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*유형:*\n%s", inq.Category)},
				},
			},
			{
				Type: "section",
				Text: &slackText{
					Type: "mrkdwn",
					Text: fmt.Sprintf("*📋 문의 내용:*\n>%s", truncate(inq.Content, slackContentLimit)),
				},
			},
			{Type: "divider"},
			{
				Type: "section",
				Text: &slackText{
					Type: "mrkdwn",
					Text: fmt.Sprintf("*🤖 AI 답변 초안:*  %s %s\n```%s```", emoji, draft.Confidence, truncate(draft.Text, slackDraftLimit)),
				},
			},
			{
				Type: "actions",
				Elements: []slackButton{
					{
						Type:  "button",
						Text:  slackText{Type: "plain_text", Text: "📝 노션에서 확인", Emoji: true},
						URL:   notionURL,
						Style: "primary",
					},
				},
			},
		},
	}

	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("요청 직렬화 실패: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Post(c.webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		metrics.OutboundCallDuration.WithLabelValues("slack", "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("요청 실패: %w", err)
	}
	defer resp.Body.Close()
	metrics.OutboundCallDuration.WithLabelValues("slack", fmt.Sprintf("%d", resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("슬랙 전송 실패: %d, body: %s", resp.StatusCode, string(body))
	}

	c.logger.Info("슬랙 알림 전송 완료")
	return nil
}
