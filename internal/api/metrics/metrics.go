// Package metrics defines and registers all custom Prometheus metrics for
// the access system. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "access"

// ── Role operation metrics ────────────────────────────────────────────────────

// RoleChangesTotal counts completed role mutations.
// Labels:
//   - op: audit type of the operation ("role_change", "bootstrap_admin", "self_sync_role_claim")
//   - role: the new role applied
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of completed role mutations, by operation and new role.",
	},
	[]string{"op", "role"},
)

// AuditWriteFailuresTotal counts audit-log appends that failed after the
// role mutation itself had already succeeded. These are a monitoring gap,
// not a caller-visible failure.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of audit-log writes that failed after a successful role mutation.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationIntentsTotal counts intents entering a dispatch cycle.
// Label:
//   - type: routing type ("repair_assigned", "repair_completed", "maintenance_due")
var NotificationIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_intents_total",
		Help:      "Total number of notification intents entering dispatch cycles.",
	},
	[]string{"type"},
)

// NotificationsDroppedTotal counts intents dropped before reaching the
// gateway. An unregistered device is expected steady state, not a fault,
// but every drop is counted rather than silently discarded.
// Label:
//   - reason: "no_device", "resolve_failed", "duplicate"
var NotificationsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of intents dropped during address resolution or deduplication.",
	},
	[]string{"reason"},
)

// PushBatchesTotal counts batch calls made to the push gateway.
var PushBatchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_batches_total",
		Help:      "Total number of batch calls submitted to the push gateway.",
	},
)

// PushSendFailuresTotal counts delivery failures.
// Label:
//   - scope: "batch" (whole call failed) or "message" (per-message outcome)
var PushSendFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_send_failures_total",
		Help:      "Total number of push delivery failures reported by the gateway.",
	},
	[]string{"scope"},
)

// DispatchCycleDuration measures one full dispatch cycle from address
// resolution to the last gateway call.
var DispatchCycleDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dispatch_cycle_duration_seconds",
		Help:      "Duration of a notification dispatch cycle.",
		Buckets:   prometheus.DefBuckets,
	},
)
