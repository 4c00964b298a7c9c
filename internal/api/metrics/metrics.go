// Package metrics defines and registers all custom Prometheus metrics for the
// CorpSpend expense API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "corpspend"

// ExpensesCreatedTotal counts newly submitted expense requests.
// Label:
//   - category: Travel, Food, Software, Equipment, Marketing, Other
var ExpensesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_created_total",
		Help:      "Total number of expense requests created, by category.",
	},
	[]string{"category"},
)

// ExpenseTransitionsTotal counts approve/reject decisions.
// Label:
//   - status: the status applied by the decision (Approved or Rejected)
var ExpenseTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expense_transitions_total",
		Help:      "Total number of expense status transitions, by resulting status.",
	},
	[]string{"status"},
)

// ReportsSentTotal counts report deliveries.
// Labels:
//   - mode: "smtp" or "preview"
//   - result: "ok" or "error"
var ReportsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_sent_total",
		Help:      "Total number of emailed expense reports, by channel mode and result.",
	},
	[]string{"mode", "result"},
)

// NotificationQueueDepth tracks pending jobs per notification worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1")
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notification jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationsSentTotal counts asynchronous new-expense notifications.
// Label:
//   - result: "ok", "error", or "duplicate"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of new-expense notifications processed, by result.",
	},
	[]string{"result"},
)
