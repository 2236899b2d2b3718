package model

// Inquiry 정규화된 고객 문의
type Inquiry struct {
	QnaNo       *int64 `json:"qna_no"`       // 아임웹 Q&A 번호 (없을 수 있음)
	Title       string `json:"title"`        // 문의 제목
	Content     string `json:"content"`      // 문의 내용
	WriterName  string `json:"writer_name"`  // 작성자 닉네임
	ProductCode string `json:"product_code"` // 상품 코드
	Category    string `json:"category"`     // 문의 유형
	Channel     string `json:"channel"`      // 유입 채널
}

// 기본값 (정규화 단계에서 사용)
const (
	DefaultTitle      = "(제목 없음)"
	DefaultWriterName = "익명"
	DefaultCategory   = "기타"
	DefaultChannel    = "아임웹Q&A"
)

// 신뢰도 단계
const (
	ConfidenceHigh   = "🟢높음"
	ConfidenceMedium = "🟡보통"
	ConfidenceLow    = "🔴낮음"
)

// Draft AI 답변 초안
type Draft struct {
	Text       string `json:"text"`       // 신뢰도 태그 제거된 답변 본문
	Confidence string `json:"confidence"` // 신뢰도 (높음/보통/낮음)
}
