// Package metrics defines all custom Prometheus metrics for the choir API.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "choir"

// AuthFailuresTotal counts rejected requests at the authorization gate.
// Label:
//   - reason: "missing_token", "invalid_token", "inactive_account", "forbidden"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the authorization gate.",
	},
	[]string{"reason"},
)

// AttendanceRecordsTotal counts attendance marks written.
// Labels:
//   - status: "present", "late", "absent"
//   - event_type: "rehearsal", "service"
var AttendanceRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_records_total",
		Help:      "Total number of attendance records created.",
	},
	[]string{"status", "event_type"},
)

// EscalationsTotal counts escalation decisions that emitted notifications.
// Label:
//   - kind: "absence" (all-absent window), "late" (lateness punishment),
//     "warning" (self-directed lateness warning)
var EscalationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "escalations_total",
		Help:      "Total number of escalation notifications emitted, by kind.",
	},
	[]string{"kind"},
)

// EscalationEvaluationDuration measures one full escalation evaluation
// (absence window plus lateness count) including repository reads.
var EscalationEvaluationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "escalation_evaluation_duration_seconds",
		Help:      "Duration of a single escalation evaluation.",
		Buckets:   prometheus.DefBuckets,
	},
)

// NotificationsCreatedTotal counts notification records persisted.
var NotificationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notification records persisted.",
	},
)

// NotificationsFailedTotal counts notification writes that failed. Failures
// are best-effort and never fail the triggering request, so this counter is
// the only place they surface besides logs.
var NotificationsFailedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of notification persistence failures.",
	},
)

// NotifyQueueDepth tracks the number of jobs waiting in each dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
