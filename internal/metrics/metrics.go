package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the platform.
type Metrics struct {
	Signups      prometheus.Counter
	Logins       prometheus.Counter
	RoleSwitches prometheus.Counter
}

// New creates and registers all counters on the default registry.
func New() *Metrics {
	return &Metrics{
		Signups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tawsila_signups_total",
			Help: "Total number of accounts created",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tawsila_logins_total",
			Help: "Total number of successful logins",
		}),
		RoleSwitches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tawsila_role_switches_total",
			Help: "Total number of active role switches",
		}),
	}
}

// Inc helpers are nil-safe so tests can pass a nil Metrics without touching
// the global registry.

func (m *Metrics) IncSignups() {
	if m == nil {
		return
	}
	m.Signups.Inc()
}

func (m *Metrics) IncLogins() {
	if m == nil {
		return
	}
	m.Logins.Inc()
}

func (m *Metrics) IncRoleSwitches() {
	if m == nil {
		return
	}
	m.RoleSwitches.Inc()
}
