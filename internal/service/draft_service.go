package service

import (
	"fmt"
	"strings"

	"github.com/truths/cs-webhook-go/internal/metrics"
	"github.com/truths/cs-webhook-go/internal/model"
	"go.uber.org/zap"
)

// draftSystemPrompt CS 상담사 페르소나 시스템 프롬프트
const draftSystemPrompt = `너는 트루스(TRUTHS) 브랜드의 CS 전문 상담사야.
고객 문의에 대해 정중하고 명확한 답변 초안을 작성해.

규칙:
- 존댓말 사용 (합쇼체)
- 200자 이내로 핵심만 간결하게
- 확인이 필요한 사항은 "확인 후 안내드리겠습니다"로 마무리
- 환불/교환은 정책 확인 필요 문구 포함
- 배송 문의는 "영업일 기준 2~3일 이내 출고" 안내
- 불확실한 정보는 추측하지 말고 담당자 확인 필요로 표시

답변 마지막에 신뢰도를 판단해서 아래 형식으로 추가해:
[신뢰도: 높음] — 정책/FAQ로 충분히 답변 가능
[신뢰도: 보통] — 대체로 맞지만 확인 필요
[신뢰도: 낮음] — 담당자 직접 확인 필수`

// FallbackDraft 생성 실패 시 초안 본문
const FallbackDraft = "(AI 답변 생성 실패 — 수동 작성 필요)"

// 모델이 답변에 삽입하는 신뢰도 태그
const (
	tagHigh   = "[신뢰도: 높음]"
	tagMedium = "[신뢰도: 보통]"
	tagLow    = "[신뢰도: 낮음]"
)

// CompletionClient 답변 생성용 LLM 클라이언트
type CompletionClient interface {
	Complete(systemPrompt, userMessage string) (string, error)
}

// DraftService AI 답변 초안 생성 서비스
type DraftService struct {
	llm    CompletionClient
	logger *zap.Logger
}

// NewDraftService 초안 생성 서비스 생성
func NewDraftService(llm CompletionClient, logger *zap.Logger) *DraftService {
	return &DraftService{
		llm:    llm,
		logger: logger,
	}
}

// GenerateDraft 문의에 대한 답변 초안 + 신뢰도 생성.
// 호출 실패는 fallback 초안(신뢰도 낮음)으로 흡수하고 에러를 올리지 않는다.
func (s *DraftService) GenerateDraft(inq *model.Inquiry) *model.Draft {
	userMessage := fmt.Sprintf("[문의 유형] %s\n[문의 제목] %s\n[문의 내용]\n%s",
		inq.Category, inq.Title, inq.Content)

	text, err := s.llm.Complete(draftSystemPrompt, userMessage)
	if err != nil {
		s.logger.Error("Claude API 오류", zap.Error(err))
		metrics.DraftFallbacks.Inc()
		return &model.Draft{Text: FallbackDraft, Confidence: model.ConfidenceLow}
	}

	confidence := parseConfidence(text)
	s.logger.Info("AI 답변 생성 완료", zap.String("confidence", confidence))

	return &model.Draft{
		Text:       stripConfidenceTags(text),
		Confidence: confidence,
	}
}

// parseConfidence 신뢰도 태그 판정.
// 태그가 여러 개면 높음 > 낮음 > 보통 순으로 결정, 없으면 보통.
func parseConfidence(text string) string {
	switch {
	case strings.Contains(text, tagHigh):
		return model.ConfidenceHigh
	case strings.Contains(text, tagLow):
		return model.ConfidenceLow
	case strings.Contains(text, tagMedium):
		return model.ConfidenceMedium
	default:
		return model.ConfidenceMedium
	}
}

// stripConfidenceTags 세 가지 태그를 모두 제거하고 앞뒤 공백 정리
func stripConfidenceTags(text string) string {
	for _, tag := range []string{tagHigh, tagMedium, tagLow} {
		text = strings.ReplaceAll(text, tag, "")
	}
	return strings.TrimSpace(text)
}
