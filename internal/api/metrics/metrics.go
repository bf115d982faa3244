// Package metrics defines all custom Prometheus metrics for the inventory
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "conflict", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RoleChangesTotal counts admin role-change operations.
// Label:
//   - result: "changed" or "noop"
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of successful role-change operations, by result.",
	},
	[]string{"result"},
)

// CategoryDeletesTotal counts category delete attempts.
// Label:
//   - result: "deleted" or "blocked" (items still reference the category)
var CategoryDeletesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "category_deletes_total",
		Help:      "Total number of category delete attempts, by result.",
	},
	[]string{"result"},
)
