package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truths/cs-webhook-go/internal/model"
	"go.uber.org/zap"
)

// fakeCompletionClient 고정 응답/오류를 돌려주는 LLM 클라이언트
type fakeCompletionClient struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeCompletionClient) Complete(systemPrompt, userMessage string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testInquiry() *model.Inquiry {
	return &model.Inquiry{
		Title:    "배송 언제 되나요",
		Content:  "어제 주문했는데 아직 출고가 안 됐습니다",
		Category: "배송",
		Channel:  model.DefaultChannel,
	}
}

func TestGenerateDraft_Confidence(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "높음 태그",
			response: "영업일 기준 2~3일 이내 출고됩니다.\n[신뢰도: 높음]",
			want:     model.ConfidenceHigh,
		},
		{
			name:     "보통 태그",
			response: "확인 후 안내드리겠습니다.\n[신뢰도: 보통]",
			want:     model.ConfidenceMedium,
		},
		{
			name:     "낮음 태그",
			response: "담당자 확인이 필요합니다.\n[신뢰도: 낮음]",
			want:     model.ConfidenceLow,
		},
		{
			name:     "태그 없음 → 보통",
			response: "답변드립니다.",
			want:     model.ConfidenceMedium,
		},
		{
			name:     "높음+보통 혼재 → 높음",
			response: "[신뢰도: 보통] 답변 [신뢰도: 높음]",
			want:     model.ConfidenceHigh,
		},
		{
			name:     "낮음+보통 혼재 → 낮음",
			response: "[신뢰도: 보통] 답변 [신뢰도: 낮음]",
			want:     model.ConfidenceLow,
		},
		{
			name:     "세 태그 모두 → 높음",
			response: "[신뢰도: 낮음][신뢰도: 보통][신뢰도: 높음] 답변",
			want:     model.ConfidenceHigh,
		},
		{
			name:     "같은 태그 중복",
			response: "[신뢰도: 낮음] 답변 [신뢰도: 낮음]",
			want:     model.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDraftService(&fakeCompletionClient{response: tt.response}, zap.NewNop())

			draft := svc.GenerateDraft(testInquiry())

			assert.Equal(t, tt.want, draft.Confidence)
			for _, tag := range []string{tagHigh, tagMedium, tagLow} {
				assert.NotContains(t, draft.Text, tag, "태그는 본문에서 제거되어야 함")
			}
		})
	}
}

func TestGenerateDraft_StripsAndTrims(t *testing.T) {
	svc := NewDraftService(&fakeCompletionClient{
		response: "  안녕하세요. 확인 후 안내드리겠습니다.\n[신뢰도: 높음]  ",
	}, zap.NewNop())

	draft := svc.GenerateDraft(testInquiry())

	assert.Equal(t, "안녕하세요. 확인 후 안내드리겠습니다.", draft.Text)
	assert.Equal(t, model.ConfidenceHigh, draft.Confidence)
}

func TestGenerateDraft_Fallback(t *testing.T) {
	svc := NewDraftService(&fakeCompletionClient{err: errors.New("connection refused")}, zap.NewNop())

	draft := svc.GenerateDraft(testInquiry())

	assert.Equal(t, FallbackDraft, draft.Text)
	assert.Equal(t, model.ConfidenceLow, draft.Confidence)
}

func TestGenerateDraft_UserMessage(t *testing.T) {
	llm := &fakeCompletionClient{response: "답변 [신뢰도: 보통]"}
	svc := NewDraftService(llm, zap.NewNop())

	svc.GenerateDraft(testInquiry())

	require.NotEmpty(t, llm.lastUser)
	assert.Contains(t, llm.lastUser, "[문의 유형] 배송")
	assert.Contains(t, llm.lastUser, "[문의 제목] 배송 언제 되나요")
	assert.Contains(t, llm.lastUser, "[문의 내용]\n어제 주문했는데")
	assert.True(t, strings.Contains(llm.lastSystem, "트루스(TRUTHS)"))
}
