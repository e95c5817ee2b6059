package service

import "github.com/prometheus/client_golang/prometheus"

// Reconciliation phases used as metric labels.
const (
	phaseRelease     = "release"
	phaseAssign      = "assign"
	phaseRefresh     = "refresh"
	phasePrimary     = "primary"
	phaseFallback    = "fallback"
	phaseSweep       = "sweep"
	phaseConsistency = "consistency"
)

// Metrics counts reconciliation outcomes.
type Metrics struct {
	SeatsRepaired    *prometheus.CounterVec
	SeatSaveFailures *prometheus.CounterVec
	MembersDeleted   prometheus.Counter
	PaymentsDeleted  prometheus.Counter
}

// NewMetrics builds the collectors and registers them on reg when it is
// non-nil. Unregistered collectors still count, which keeps tests free
// of global registry state.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SeatsRepaired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "membership",
			Name:      "seats_repaired_total",
			Help:      "Seats rewritten by reconciliation, by phase.",
		}, []string{"phase"}),
		SeatSaveFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "membership",
			Name:      "seat_save_failures_total",
			Help:      "Seat writes that failed during reconciliation, by phase.",
		}, []string{"phase"}),
		MembersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "membership",
			Name:      "members_deleted_total",
			Help:      "Members removed.",
		}),
		PaymentsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "membership",
			Name:      "payments_deleted_total",
			Help:      "Payments removed by the member delete cascade.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.SeatsRepaired, m.SeatSaveFailures, m.MembersDeleted, m.PaymentsDeleted)
	}
	return m
}
