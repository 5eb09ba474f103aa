package workflow

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/cmd/server/internal/store"
	"github.com/judgebase/judgebase-api/internal/types"
)

// Dashboard counters, each counted concurrently
func (e *Engine) Stats(ctx context.Context) (*types.StatsResponse, error) {
	ctx, span := tracer.Start(ctx, "Stats")
	defer span.End()

	var stats types.StatsResponse
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int64, n func() (int64, error)) {
		g.Go(func() error {
			v, err := n()
			*dst = v
			return err
		})
	}

	apps := store.New[models.JudgeApplication](e.db)
	judges := store.New[models.Judge](e.db)
	hackathons := store.New[models.Hackathon](e.db)
	invitations := store.New[models.Invitation](e.db)
	runs := store.New[models.ApprovalRun](e.db)

	count(&stats.PendingApplications, func() (int64, error) {
		return apps.Count(ctx, "status = ?", types.ReviewStatusPending)
	})
	count(&stats.ApprovedJudges, func() (int64, error) {
		return judges.Count(ctx, "status = ?", types.ReviewStatusApproved)
	})
	count(&stats.FeaturedJudges, func() (int64, error) {
		return judges.Count(ctx, "status = ? AND featured", types.ReviewStatusApproved)
	})
	count(&stats.PendingHackathons, func() (int64, error) {
		return hackathons.Count(ctx, "status = ?", types.ReviewStatusPending)
	})
	count(&stats.ApprovedHackathons, func() (int64, error) {
		return hackathons.Count(ctx, "status = ?", types.ReviewStatusApproved)
	})
	count(&stats.PendingInvitations, func() (int64, error) {
		return invitations.Count(ctx, "status = ?", types.ResponseStatusPending)
	})
	count(&stats.IncompleteApprovals, func() (int64, error) {
		return runs.Count(ctx, incompleteRuns, e.incompleteRunArgs()...)
	})

	if err := g.Wait(); err != nil {
		return nil, fail(span, err, "failed to count")
	}

	succeed(span, "counted")
	return &stats, nil
}
