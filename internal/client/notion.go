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
	notionBaseURL = "https://api.notion.com"
	notionVersion = "2022-06-28"

	// rich_text 속성 한 칸의 저장 상한 (문자 수)
	notionTextLimit = 2000
)

// kst 등록일 표기는 한국 시간 기준
var kst = time.FixedZone("KST", 9*60*60)

// categoryMap 문의유형 매핑 (아임웹 → 노션 select)
var categoryMap = map[string]string{
	"배송":   "배송",
	"교환":   "교환반품",
	"반품":   "교환반품",
	"교환반품": "교환반품",
	"상품":   "상품정보",
	"상품정보": "상품정보",
	"결제":   "결제",
	"기타":   "기타",
}

// channelMap 유입 채널 매핑
var channelMap = map[string]string{
	"아임웹Q&A": "아임웹Q&A",
	"아임웹":    "아임웹Q&A",
	"imweb":  "아임웹Q&A",
	"무신사":    "무신사",
	"musinsa": "무신사",
	"채널톡":    "채널톡",
	"channel": "채널톡",
}

// NotionClient 노션 CS 문의 관리 DB 클라이언트
type NotionClient struct {
	token      string
	databaseID string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewNotionClient 노션 클라이언트 생성
func NewNotionClient(token, databaseID string, logger *zap.Logger) *NotionClient {
	return &NotionClient{
		token:      token,
		databaseID: databaseID,
		baseURL:    notionBaseURL,
		httpClient: &http.Client{},
		logger:     logger,
		now:        time.Now,
	}
}

// PageResult 생성된 노션 페이지 정보
type PageResult struct {
	PageID string
	URL    string
}

// CreateInquiryPage CS 문의 관리 DB에 페이지 생성
func (c *NotionClient) CreateInquiryPage(inq *model.Inquiry, draft *model.Draft) (*PageResult, error) {
	registeredAt := c.now().In(kst).Format("2006-01-02")

	properties := map[string]any{
		"문의제목":   titleProp(inq.Title),
		"고객닉네임":  richTextProp(inq.WriterName),
		"문의내용":   richTextProp(truncate(inq.Content, notionTextLimit)),
		"상품코드":   richTextProp(inq.ProductCode),
		"문의유형":   selectProp(mapCategory(inq.Category)),
		"채널":     selectProp(mapChannel(inq.Channel)),
		"AI답변초안": richTextProp(truncate(draft.Text, notionTextLimit)),
		"신뢰도":    selectProp(draft.Confidence),
		"담당자확인":  map[string]any{"checkbox": false},
		"최종발송답변": richTextProp(""),
		"상태":     selectProp("대기"),
		"등록일":    map[string]any{"date": map[string]any{"start": registeredAt}},
	}
	// number 속성은 null을 받지 않으므로 번호가 있을 때만 기록
	if inq.QnaNo != nil {
		properties["qnaNo"] = map[string]any{"number": *inq.QnaNo}
	}

	reqBody := map[string]any{
		"parent":     map[string]any{"database_id": c.databaseID},
		"properties": properties,
	}

	body, status, err := c.call("POST", "/v1/pages", "notion_create", reqBody)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, fmt.Errorf("노션 저장 실패: %d, body: %s", status, string(body))
	}

	var page struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("응답 파싱 실패: %w", err)
	}

	c.logger.Info("노션 저장 완료", zap.String("pageId", page.ID))
	return &PageResult{PageID: page.ID, URL: page.URL}, nil
}

// AttachSelfLink 페이지에 자기 URL 속성 기록 (best-effort)
func (c *NotionClient) AttachSelfLink(pageID, pageURL string) error {
	reqBody := map[string]any{
		"properties": map[string]any{
			"슬랙링크": map[string]any{"url": pageURL},
		},
	}

	body, status, err := c.call("PATCH", "/v1/pages/"+pageID, "notion_patch", reqBody)
	if err != nil {
		return err
	}
	if status != 200 {
		return fmt.Errorf("슬랙링크 업데이트 실패: %d, body: %s", status, string(body))
	}
	return nil
}

// call 노션 API 호출 공통 처리
func (c *NotionClient) call(method, path, target string, reqBody any) ([]byte, int, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("요청 직렬화 실패: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, 0, fmt.Errorf("요청 생성 실패: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.OutboundCallDuration.WithLabelValues(target, "error").Observe(time.Since(start).Seconds())
		return nil, 0, fmt.Errorf("요청 실패: %w", err)
	}
	defer resp.Body.Close()
	metrics.OutboundCallDuration.WithLabelValues(target, fmt.Sprintf("%d", resp.StatusCode)).Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("응답 읽기 실패: %w", err)
	}
	return body, resp.StatusCode, nil
}

// mapCategory 문의유형 매핑 (미등록 값은 기타)
func mapCategory(category string) string {
	if mapped, ok := categoryMap[category]; ok {
		return mapped
	}
	return "기타"
}

// mapChannel 유입 채널 매핑 (미등록 값은 아임웹Q&A)
func mapChannel(channel string) string {
	if mapped, ok := channelMap[channel]; ok {
		return mapped
	}
	return "아임웹Q&A"
}

func titleProp(s string) map[string]any {
	return map[string]any{
		"title": []map[string]any{
			{"text": map[string]any{"content": s}},
		},
	}
}

func richTextProp(s string) map[string]any {
	return map[string]any{
		"rich_text": []map[string]any{
			{"text": map[string]any{"content": s}},
		},
	}
}

func selectProp(s string) map[string]any {
	return map[string]any{"select": map[string]any{"name": s}}
}

// truncate 문자 수 기준 자르기 (바이트가 아니라 rune 기준)
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
