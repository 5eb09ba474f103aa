package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/judgebase/judgebase-api/internal/types"
)

var (
	// Outcome of each best-effort approval step
	SideEffects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "judgebase",
			Name:      "approval_side_effects_total",
			Help:      "Approval side effects by step and outcome",
		},
		[]string{"kind", "step", "status"},
	)
	Invitations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "judgebase",
			Name:      "invitation_emails_total",
			Help:      "Invitation emails by outcome",
		},
		[]string{"outcome"},
	)
	Approvals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "judgebase",
			Name:      "approval_runs_total",
			Help:      "Finished approval runs by kind and final state",
		},
		[]string{"kind", "state"},
	)
	AdminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "judgebase",
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(SideEffects, Invitations, Approvals, AdminLogins)
}

func RecordSideEffects(kind types.ApprovalKind, effects types.SideEffects) {
	for step, status := range effects {
		SideEffects.WithLabelValues(string(kind), string(step), string(status)).Inc()
	}
}

func RecordRun(kind types.ApprovalKind, state types.RunState) {
	Approvals.WithLabelValues(string(kind), string(state)).Inc()
}

func RecordInvitations(success, failed int) {
	Invitations.WithLabelValues("sent").Add(float64(success))
	Invitations.WithLabelValues("failed").Add(float64(failed))
}
