package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truths/cs-webhook-go/internal/model"
)

func TestNormalizeInquiry_Defaults(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{name: "빈 매핑", raw: map[string]any{}},
		{name: "nil 매핑", raw: nil},
		{name: "모르는 키만 있는 매핑", raw: map[string]any{"foo": "bar", "x": 1.0}},
		{name: "빈 문자열 값", raw: map[string]any{"title": "", "content": "", "category": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inq := NormalizeInquiry(tt.raw)
			require.NotNil(t, inq)

			assert.Nil(t, inq.QnaNo)
			assert.Equal(t, model.DefaultTitle, inq.Title)
			assert.Equal(t, "", inq.Content)
			assert.Equal(t, model.DefaultWriterName, inq.WriterName)
			assert.Equal(t, "", inq.ProductCode)
			assert.Equal(t, model.DefaultCategory, inq.Category)
			assert.Equal(t, model.DefaultChannel, inq.Channel)
		})
	}
}

func TestNormalizeInquiry_AliasPriority(t *testing.T) {
	raw := map[string]any{
		"subject":     "부제목",
		"title":       "제목",
		"question":    "질문",
		"body":        "본문",
		"nickname":    "닉네임",
		"member_name": "회원명",
		"prod_code":   "P-001",
		"type":        "배송",
	}

	inq := NormalizeInquiry(raw)

	assert.Equal(t, "제목", inq.Title, "title이 subject보다 우선")
	assert.Equal(t, "본문", inq.Content, "body가 question보다 우선")
	assert.Equal(t, "닉네임", inq.WriterName, "nickname이 member_name보다 우선")
	assert.Equal(t, "P-001", inq.ProductCode)
	assert.Equal(t, "배송", inq.Category, "category 없으면 type 사용")
}

func TestNormalizeInquiry_AliasFallthrough(t *testing.T) {
	// 우선순위 높은 키가 빈 값이면 다음 별칭으로 넘어간다
	raw := map[string]any{
		"title":   "",
		"subject": "교환 문의드립니다",
		"content": "",
		"body":    "사이즈 교환 가능한가요?",
	}

	inq := NormalizeInquiry(raw)

	assert.Equal(t, "교환 문의드립니다", inq.Title)
	assert.Equal(t, "사이즈 교환 가능한가요?", inq.Content)
}

func TestNormalizeInquiry_QnaNo(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want *int64
	}{
		{name: "qna_no 숫자", raw: map[string]any{"qna_no": float64(123)}, want: ptr(int64(123))},
		{name: "no 별칭", raw: map[string]any{"no": float64(77)}, want: ptr(int64(77))},
		{name: "qnaNo 별칭", raw: map[string]any{"qnaNo": float64(9)}, want: ptr(int64(9))},
		{name: "문자열 숫자", raw: map[string]any{"qna_no": "456"}, want: ptr(int64(456))},
		{name: "0은 없는 값", raw: map[string]any{"qna_no": float64(0), "no": float64(5)}, want: ptr(int64(5))},
		{name: "숫자 아님", raw: map[string]any{"qna_no": "abc"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inq := NormalizeInquiry(tt.raw)
			if tt.want == nil {
				assert.Nil(t, inq.QnaNo)
			} else {
				require.NotNil(t, inq.QnaNo)
				assert.Equal(t, *tt.want, *inq.QnaNo)
			}
		})
	}
}

func TestNormalizeInquiry_RefundScenario(t *testing.T) {
	// 채널 없는 반품 문의 → 채널은 기본 아임웹Q&A
	raw := map[string]any{
		"title":    "환불 문의",
		"content":  "주문한 상품 환불하고 싶습니다",
		"category": "반품",
	}

	inq := NormalizeInquiry(raw)

	assert.Equal(t, "환불 문의", inq.Title)
	assert.Equal(t, "반품", inq.Category)
	assert.Equal(t, model.DefaultChannel, inq.Channel)
}

func ptr[T any](v T) *T {
	return &v
}
