package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// dedupTTL 같은 문의 번호의 재전송을 무시하는 기간
const dedupTTL = 24 * time.Hour

// DedupStore 웹훅 중복 수신 차단 스토어.
// 웹훅은 같은 이벤트가 재전송될 수 있으므로 문의 번호를 SETNX로 선점한다.
type DedupStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewDedupStore 중복 수신 차단 스토어 생성
func NewDedupStore(client *redis.Client, logger *zap.Logger) *DedupStore {
	return &DedupStore{
		client: client,
		ttl:    dedupTTL,
		logger: logger,
	}
}

// Claim 문의 번호 선점. 처음 보는 번호면 true, 이미 처리된 번호면 false.
// 스토어 미설정이거나 번호가 없는 문의는 항상 통과시킨다.
func (d *DedupStore) Claim(ctx context.Context, qnaNo *int64) bool {
	if d == nil || d.client == nil || qnaNo == nil {
		return true
	}

	ok, err := d.client.SetNX(ctx, dedupKey(*qnaNo), 1, d.ttl).Result()
	if err != nil {
		// 판정 불가 시 누락보다 중복 처리가 낫다
		d.logger.Warn("중복 확인 실패 (통과 처리)", zap.Error(err))
		return true
	}
	return ok
}

// Release 선점한 문의 번호 해제.
// 저장 실패로 502를 돌려준 문의는 송신측이 재전송하므로 다시 받을 수 있어야 한다.
func (d *DedupStore) Release(ctx context.Context, qnaNo *int64) {
	if d == nil || d.client == nil || qnaNo == nil {
		return
	}

	if err := d.client.Del(ctx, dedupKey(*qnaNo)).Err(); err != nil {
		d.logger.Warn("선점 해제 실패", zap.Error(err))
	}
}

func dedupKey(qnaNo int64) string {
	return fmt.Sprintf("cs:webhook:qna:%d", qnaNo)
}
