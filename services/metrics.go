package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	wholesaleTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barrim_admin_wholesale_transitions_total",
		Help: "Wholesale request status transitions, labeled by action and outcome",
	}, []string{"action", "outcome"})

	wholesaleJoinMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barrim_admin_wholesale_join_misses_total",
		Help: "Wholesale requests whose userId matched no user profile",
	})

	attachmentFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barrim_admin_attachment_failures_total",
		Help: "Attachment URL lookups that failed",
	})
)
