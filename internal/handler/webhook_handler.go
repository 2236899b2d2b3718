package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/truths/cs-webhook-go/internal/metrics"
	"github.com/truths/cs-webhook-go/internal/service"
	"go.uber.org/zap"
)

// WebhookHandler 아임웹 Q&A 웹훅 처리기
type WebhookHandler struct {
	inquiryService *service.InquiryService
	dedup          *service.DedupStore
	serviceName    string
	version        string
	logger         *zap.Logger
}

// NewWebhookHandler 웹훅 처리기 생성
func NewWebhookHandler(
	inquiryService *service.InquiryService,
	dedup *service.DedupStore,
	serviceName, version string,
	logger *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		inquiryService: inquiryService,
		dedup:          dedup,
		serviceName:    serviceName,
		version:        version,
		logger:         logger,
	}
}

// Receive 웹훅 수신 엔드포인트.
// 아임웹에서 전달되는 다양한 형태의 payload를 유연하게 처리한다.
// 본문이 비어 있거나 JSON이 아니면 빈 매핑으로 간주한다.
func (h *WebhookHandler) Receive(c *gin.Context) {
	raw := map[string]any{}
	body, err := io.ReadAll(c.Request.Body)
	if err == nil && len(body) > 0 {
		if jsonErr := json.Unmarshal(body, &raw); jsonErr != nil {
			raw = map[string]any{}
		}
	}

	h.logger.Info("웹훅 수신",
		zap.String("requestId", c.GetString("request_id")),
		zap.Int("bodyBytes", len(body)))

	inq := service.NormalizeInquiry(raw)
	ctx := c.Request.Context()

	// 같은 문의 번호의 재전송이면 외부 호출 없이 바로 응답
	if !h.dedup.Claim(ctx, inq.QnaNo) {
		metrics.WebhookRequests.WithLabelValues("duplicate").Inc()
		h.logger.Info("중복 웹훅 무시", zap.Int64p("qnaNo", inq.QnaNo))
		c.JSON(200, gin.H{
			"success": true,
			"message": "이미 접수된 문의",
			"data":    gin.H{"qna_no": inq.QnaNo},
		})
		return
	}

	result, err := h.inquiryService.Process(inq)
	if err != nil {
		// 502를 받은 송신측은 재전송하므로 선점을 해제해 다시 받는다
		h.dedup.Release(ctx, inq.QnaNo)
		metrics.WebhookRequests.WithLabelValues("store_failed").Inc()
		c.JSON(502, gin.H{"success": false, "message": "노션 저장 실패"})
		return
	}

	metrics.WebhookRequests.WithLabelValues("ok").Inc()
	c.JSON(200, gin.H{
		"success": true,
		"message": "문의 접수 완료",
		"data": gin.H{
			"qna_no":         inq.QnaNo,
			"notion_page_id": result.PageID,
			"notion_url":     result.PageURL,
			"ai_confidence":  result.Draft.Confidence,
		},
	})
}

// Health 헬스 체크
func (h *WebhookHandler) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": h.serviceName,
		"version": h.version,
	})
}
