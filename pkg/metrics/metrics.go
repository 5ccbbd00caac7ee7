package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "standup", Name: "submissions_total", Help: "Number of standup records stored."},
	)
	ReportsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "standup", Name: "reports_generated_total", Help: "Number of summary reports generated."},
	)
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "standup", Name: "notifications_total", Help: "Number of notification sends by result."},
		[]string{"result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "standup", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "standup", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(SubmissionsTotal)
	reg.MustRegister(ReportsGeneratedTotal)
	reg.MustRegister(NotificationsTotal)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
