package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/cmd/server/internal/store"
	"github.com/judgebase/judgebase-api/internal/authprovider"
	"github.com/judgebase/judgebase-api/internal/notify"
	"github.com/judgebase/judgebase-api/internal/types"
)

type Repair struct {
	Run               *models.ApprovalRun
	GeneratedPassword string
	SideEffects       types.SideEffects
}

// Partial runs, plus running ones old enough that their process must have
// died
const incompleteRuns = "state = ? OR (state = ? AND updated_at < ?)"

func (e *Engine) incompleteRunArgs() []any {
	return []any{types.RunStatePartial, types.RunStateRunning, e.now().Add(-staleRunAfter)}
}

// Incomplete runs oldest first
func (e *Engine) IncompleteApprovals(ctx context.Context) ([]models.ApprovalRun, error) {
	ctx, span := tracer.Start(ctx, "IncompleteApprovals")
	defer span.End()

	runs := []models.ApprovalRun{}
	err := e.db.WithContext(ctx).
		Where(incompleteRuns, e.incompleteRunArgs()...).
		Order("created_at").
		Find(&runs).Error
	if err != nil {
		return nil, fail(span, err, "failed to list runs")
	}

	span.SetAttributes(attribute.Int("count", len(runs)))
	succeed(span, "listed incomplete approvals")
	return runs, nil
}

// Re-issues credentials for an approval whose side effects failed. The old
// password was only ever emailed, so a new one is generated, provisioned and
// sent. The run is updated with the new step outcomes.
func (e *Engine) RepairApproval(ctx context.Context, runID uuid.UUID) (*Repair, error) {
	ctx, span := tracer.Start(ctx, "RepairApproval")
	defer span.End()

	span.SetAttributes(attribute.String("run.id", runID.String()))

	run, err := store.New[models.ApprovalRun](e.db).ByID(ctx, runID)
	if err != nil {
		return nil, fail(span, err, "failed to get run")
	}
	if run.State == types.RunStateCompleted {
		return nil, fail(span, invalidState("approval already completed"), "nothing to repair")
	}
	if st, _ := run.Status(types.StepRecordWritten); st != types.StepStatusDone {
		return nil, fail(span,
			invalidState("approval never wrote its record, approve the %s again", run.Kind),
			"nothing to repair")
	}

	password, hash, err := e.newCredential()
	if err != nil {
		return nil, fail(span, err, "failed to generate credential")
	}
	run.Mark(types.StepCredentialGenerated, types.StepStatusDone, nil, e.now())

	switch run.Kind {
	case types.ApprovalKindJudgeApplication:
		err = e.repairJudge(ctx, run, password, hash)
	case types.ApprovalKindHackathon:
		err = e.repairHackathon(ctx, run, password, hash)
	default:
		err = fmt.Errorf("%w: unknown approval kind %q", srverr.ErrValidation, run.Kind)
	}
	if err != nil {
		return nil, fail(span, err, "failed to repair approval")
	}

	e.finish(ctx, run)

	span.SetAttributes(attribute.String("run.state", string(run.State)))
	succeed(span, "repaired approval")
	return &Repair{
		Run:               run,
		GeneratedPassword: password,
		SideEffects:       run.SideEffects(),
	}, nil
}

func (e *Engine) repairJudge(ctx context.Context, run *models.ApprovalRun, password, hash string) error {
	if run.JudgeID == nil {
		return invalidState("approval has no judge")
	}

	s := store.New[models.Judge](e.db)
	judge, err := s.ByID(ctx, *run.JudgeID)
	if err != nil {
		return err
	}

	var existing authprovider.Handle
	if judge.AuthUserID.Valid {
		existing = authprovider.Handle(judge.AuthUserID.V)
	}

	handle, err := e.provision(ctx, judge.Email, password, existing)
	e.mark(ctx, run, types.StepAuthCreated, err)

	fields := map[string]any{"auth_password_hash": hash}
	if handle != "" {
		fields["auth_user_id"] = string(handle)
	}
	if err := s.UpdateFields(ctx, judge.ID, fields); err != nil {
		return err
	}

	err = e.notifier.Send(ctx, notify.TemplateJudgeCredentials, notify.Recipient{
		Email: judge.Email,
		Name:  judge.Name,
		Data: notify.JudgeCredentialsData{
			JudgeName:  judge.Name,
			Email:      judge.Email,
			Password:   password,
			LoginURL:   e.link("judge", "login"),
			ProfileURL: e.link("judges", judge.Slug),
		},
	})
	e.mark(ctx, run, types.StepNotified, err)

	err = e.syncIndex(ctx, judge)
	e.mark(ctx, run, types.StepIndexed, err)

	return nil
}

func (e *Engine) repairHackathon(ctx context.Context, run *models.ApprovalRun, password, hash string) error {
	s := store.New[models.Hackathon](e.db)
	h, err := s.ByID(ctx, run.SubjectID)
	if err != nil {
		return err
	}
	if h.Status != types.ReviewStatusApproved {
		return invalidState("hackathon is %s", h.Status)
	}

	if err := s.UpdateFields(ctx, h.ID, map[string]any{"auth_password_hash": hash}); err != nil {
		return err
	}

	err = e.sendHackathonApproved(ctx, h, password)
	e.mark(ctx, run, types.StepNotified, err)

	return nil
}
