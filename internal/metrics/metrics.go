package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Write-pipeline counters. Registered on the default registry and served
// by promhttp from the router.
var (
	CommentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comments_created_total",
		Help: "Comments persisted through the public write path.",
	}, []string{"scope"})

	CommentsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comments_rejected_total",
		Help: "Comment submissions rejected, by reason.",
	}, []string{"reason"})

	HoneypotTrapped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comments_honeypot_trapped_total",
		Help: "Submissions silently dropped because the honeypot field was filled.",
	})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comments_rate_limited_total",
		Help: "Submissions rejected by the per-client rate limiter.",
	})
)
