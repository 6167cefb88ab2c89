// Package metrics defines and registers all custom Prometheus metrics for
// the billing API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto
// at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "billing"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "not_found", "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// TokenVerificationsTotal counts bearer-token checks at the gate.
// Label:
//   - result: "accepted" or "rejected"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of token verifications at the auth middleware, by result.",
	},
	[]string{"result"},
)

// PasswordUpdatesTotal counts completed password changes.
var PasswordUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_updates_total",
		Help:      "Total number of successful password updates.",
	},
)

// BillsCreatedTotal counts newly registered bills.
// Label:
//   - status: "Paid" or "Unpaid"
var BillsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bills_created_total",
		Help:      "Total number of bills created, by status.",
	},
	[]string{"status"},
)
