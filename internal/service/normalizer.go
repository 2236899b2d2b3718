package service

import (
	"strconv"
	"strings"

	"github.com/truths/cs-webhook-go/internal/model"
)

// NormalizeInquiry 수신 이벤트를 표준 문의로 정규화.
// 필드별 별칭 키를 우선순위대로 조회하고 전부 없으면 기본값을 쓴다.
// 어떤 입력이 와도 실패하지 않는다.
func NormalizeInquiry(raw map[string]any) *model.Inquiry {
	return &model.Inquiry{
		QnaNo:       intValue(raw, "qna_no", "no", "qnaNo"),
		Title:       stringValue(raw, []string{"title", "subject"}, model.DefaultTitle),
		Content:     stringValue(raw, []string{"content", "body", "question"}, ""),
		WriterName:  stringValue(raw, []string{"writer_name", "nickname", "member_name", "name"}, model.DefaultWriterName),
		ProductCode: stringValue(raw, []string{"product_code", "prod_code", "productCode"}, ""),
		Category:    stringValue(raw, []string{"category", "type"}, model.DefaultCategory),
		Channel:     stringValue(raw, []string{"channel"}, model.DefaultChannel),
	}
}

// stringValue 별칭 키 중 첫 번째로 값이 있는 항목 반환
func stringValue(raw map[string]any, keys []string, def string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return s
			}
		case float64:
			// JSON 숫자로 들어온 값도 문자열 필드로 수용
			if s != 0 {
				return strconv.FormatFloat(s, 'f', -1, 64)
			}
		}
	}
	return def
}

// intValue 별칭 키 중 첫 번째 숫자 값 반환 (0은 없는 것으로 취급)
func intValue(raw map[string]any, keys ...string) *int64 {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			if n != 0 {
				i := int64(n)
				return &i
			}
		case string:
			if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil && i != 0 {
				return &i
			}
		}
	}
	return nil
}
