package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SyncTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "pathwise", Name: "sync_total", Help: "Number of dual-record sync operations attempted."},
	)
	SyncFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pathwise", Name: "sync_failures_total", Help: "Number of failed sync halves by stage (detail, summary, validation)."},
		[]string{"stage"},
	)
	RenamesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "pathwise", Name: "profile_renames_total", Help: "Number of detail-record key migrations caused by name edits."},
	)
	TrashedAvatars = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "pathwise", Name: "trashed_avatars_total", Help: "Number of avatar references queued for deferred deletion."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pathwise", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "pathwise", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(SyncTotal)
	reg.MustRegister(SyncFailures)
	reg.MustRegister(RenamesTotal)
	reg.MustRegister(TrashedAvatars)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
