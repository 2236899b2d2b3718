package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhookRequests 웹훅 처리 결과 카운터 (result: ok, duplicate, store_failed)
	WebhookRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cs_webhook_requests_total",
			Help: "Total number of processed webhook deliveries by result",
		},
		[]string{"result"},
	)

	// OutboundCallDuration 외부 API 호출 소요 시간
	OutboundCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "cs_outbound_call_duration_seconds",
			Help: "Duration of outbound API calls in seconds",
		},
		[]string{"target", "status"},
	)

	// DraftFallbacks AI 답변 생성 실패로 fallback 초안이 사용된 횟수
	DraftFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cs_draft_fallback_total",
			Help: "Total number of drafts replaced by the fallback text",
		},
	)
)
