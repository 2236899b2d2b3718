package service

import (
	"errors"
	"fmt"

	"github.com/truths/cs-webhook-go/internal/client"
	"github.com/truths/cs-webhook-go/internal/model"
	"go.uber.org/zap"
)

// ErrRecordStore 노션 저장 실패. 파이프라인에서 유일하게 요청 전체를 실패시킨다.
var ErrRecordStore = errors.New("노션 저장 실패")

// RecordClient 문의 레코드 저장소 클라이언트
type RecordClient interface {
	CreateInquiryPage(inq *model.Inquiry, draft *model.Draft) (*client.PageResult, error)
	AttachSelfLink(pageID, pageURL string) error
}

// Notifier 팀 채널 알림 클라이언트
type Notifier interface {
	Notify(inq *model.Inquiry, draft *model.Draft, notionURL string) error
}

// InquiryService CS 문의 처리 파이프라인
type InquiryService struct {
	drafts   *DraftService
	records  RecordClient
	notifier Notifier
	logger   *zap.Logger
}

// NewInquiryService 문의 처리 서비스 생성
func NewInquiryService(drafts *DraftService, records RecordClient, notifier Notifier, logger *zap.Logger) *InquiryService {
	return &InquiryService{
		drafts:   drafts,
		records:  records,
		notifier: notifier,
		logger:   logger,
	}
}

// ProcessResult 파이프라인 처리 결과
type ProcessResult struct {
	Inquiry *model.Inquiry
	Draft   *model.Draft
	PageID  string
	PageURL string
}

// Process 문의 1건 처리: 초안 생성 → 노션 저장 → 링크 기록 → 슬랙 알림.
// 노션 저장 외의 실패는 모두 로그만 남기고 진행한다.
func (s *InquiryService) Process(inq *model.Inquiry) (*ProcessResult, error) {
	// ① AI 답변 초안 생성 (실패 시 fallback 초안)
	draft := s.drafts.GenerateDraft(inq)

	// ② 노션 DB 저장 (유일한 치명 단계)
	page, err := s.records.CreateInquiryPage(inq, draft)
	if err != nil {
		s.logger.Error("노션 저장 실패", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	// ③ 노션 페이지에 자기 URL 기록 (실패 무시)
	if err := s.records.AttachSelfLink(page.PageID, page.URL); err != nil {
		s.logger.Warn("슬랙링크 업데이트 실패 (무시)", zap.Error(err))
	}

	// ④ 슬랙 알림 전송 (실패 무시)
	if err := s.notifier.Notify(inq, draft, page.URL); err != nil {
		s.logger.Error("슬랙 전송 실패", zap.Error(err))
	}

	return &ProcessResult{
		Inquiry: inq,
		Draft:   draft,
		PageID:  page.PageID,
		PageURL: page.URL,
	}, nil
}
