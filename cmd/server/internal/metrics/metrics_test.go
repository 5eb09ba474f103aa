package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judgebase/judgebase-api/cmd/server/internal/metrics"
	"github.com/judgebase/judgebase-api/internal/types"
)

func TestRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	metrics.RecordSideEffects(types.ApprovalKindJudgeApplication, types.SideEffects{
		types.StepAuthCreated: types.StepStatusFailed,
		types.StepNotified:    types.StepStatusDone,
	})
	metrics.RecordRun(types.ApprovalKindJudgeApplication, types.RunStatePartial)
	metrics.RecordInvitations(2, 1)

	assert.InDelta(t, 1, testutil.ToFloat64(
		metrics.SideEffects.WithLabelValues("judge_application", "auth_created", "failed"),
	), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(
		metrics.Approvals.WithLabelValues("judge_application", "partial"),
	), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.Invitations.WithLabelValues("sent")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Invitations.WithLabelValues("failed")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
