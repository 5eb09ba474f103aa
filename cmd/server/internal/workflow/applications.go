package workflow

import (
	"context"
	"errors"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/cmd/server/internal/store"
	"github.com/judgebase/judgebase-api/internal/notify"
	"github.com/judgebase/judgebase-api/internal/types"
)

// Result of approving a judge application. GeneratedPassword is the only
// copy of the plaintext password, the database keeps a hash.
type JudgeApproval struct {
	Judge             *models.Judge
	Run               *models.ApprovalRun
	GeneratedPassword string
	SideEffects       types.SideEffects
}

type ApproveOptions struct {
	Featured bool
	Badges   []string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (e *Engine) SubmitApplication(
	ctx context.Context,
	in types.JudgeApplicationSubmission,
) (*models.JudgeApplication, error) {
	ctx, span := tracer.Start(ctx, "SubmitApplication")
	defer span.End()

	app := &models.JudgeApplication{
		Status: types.ReviewStatusPending,
		JudgeProfile: models.JudgeProfile{
			Name:       strings.TrimSpace(in.Name),
			Email:      normalizeEmail(in.Email),
			Role:       in.Role,
			Company:    in.Company,
			LinkedIn:   in.LinkedIn,
			GitHub:     in.GitHub,
			Website:    in.Website,
			Bio:        in.Bio,
			Philosophy: in.Philosophy,
			Format:     in.Format,
			Expertise:  in.Expertise,
			Mentoring:  in.Mentoring,
		},
	}

	if err := store.New[models.JudgeApplication](e.db).Create(ctx, app); err != nil {
		return nil, fail(span, err, "failed to create application")
	}

	span.SetAttributes(attribute.String("application.id", app.ID.String()))
	succeed(span, "submitted application")
	return app, nil
}

// Applications newest first, an empty status lists all of them
func (e *Engine) Applications(
	ctx context.Context,
	status types.ReviewStatus,
) ([]models.JudgeApplication, error) {
	ctx, span := tracer.Start(ctx, "Applications")
	defer span.End()

	s := store.New[models.JudgeApplication](e.db)

	var apps []models.JudgeApplication
	var err error
	if status == "" {
		apps, err = s.List(ctx)
	} else {
		apps, err = s.List(ctx, "status = ?", status)
	}
	if err != nil {
		return nil, fail(span, err, "failed to list applications")
	}

	succeed(span, "listed applications")
	return apps, nil
}

func (e *Engine) Application(ctx context.Context, id uuid.UUID) (*models.JudgeApplication, error) {
	ctx, span := tracer.Start(ctx, "Application")
	defer span.End()

	app, err := store.New[models.JudgeApplication](e.db).ByID(ctx, id)
	if err != nil {
		return nil, fail(span, err, "failed to get application")
	}

	succeed(span, "got application")
	return app, nil
}

// Turns a pending application into an approved judge with portal
// credentials. The judge row, the application status and the run are written
// in one transaction. Identity, email and search are best-effort and
// reported through SideEffects.
func (e *Engine) ApproveJudgeApplication(
	ctx context.Context,
	id uuid.UUID,
	opts ApproveOptions,
) (*JudgeApproval, error) {
	ctx, span := tracer.Start(ctx, "ApproveJudgeApplication")
	defer span.End()

	span.SetAttributes(attribute.String("application.id", id.String()))

	app, run, err := claimRun[models.JudgeApplication](ctx, e, types.ApprovalKindJudgeApplication, id)
	if err != nil {
		return nil, fail(span, err, "failed to claim application")
	}

	password, hash, err := e.newCredential()
	if err != nil {
		e.abandon(ctx, run, err)
		return nil, fail(span, err, "failed to generate credential")
	}
	run.Mark(types.StepCredentialGenerated, types.StepStatusDone, nil, e.now())

	handle, err := e.provision(ctx, app.Email, password, "")
	e.mark(ctx, run, types.StepAuthCreated, err)

	judge := &models.Judge{}
	// two judges with the same name can race for a slug, the loser picks the
	// next free one
	err = retry.Do(ctx, slugBackoff(), func(ctx context.Context) error {
		*judge = models.Judge{
			Status:              types.ReviewStatusApproved,
			JudgeProfile:        app.JudgeProfile,
			Badges:              opts.Badges,
			Featured:            opts.Featured,
			AuthPasswordHash:    models.NewNullFromData(hash),
			SourceApplicationID: &app.ID,
		}
		if handle != "" {
			judge.AuthUserID = models.NewNullFromData(string(handle))
		}

		err := e.writeJudge(ctx, app, judge, run)
		if errors.Is(err, srverr.ErrConflict) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		e.abandon(ctx, run, err)
		return nil, fail(span, err, "failed to write judge")
	}
	app.Status = types.ReviewStatusApproved

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

	e.finish(ctx, run)

	span.SetAttributes(
		attribute.String("judge.id", judge.ID.String()),
		attribute.String("run.state", string(run.State)),
	)
	succeed(span, "approved application")
	return &JudgeApproval{
		Judge:             judge,
		Run:               run,
		GeneratedPassword: password,
		SideEffects:       run.SideEffects(),
	}, nil
}

func slugBackoff() retry.Backoff {
	return retry.WithMaxRetries(3, retry.NewConstant(10*time.Millisecond))
}

// Creates the judge, approves the application and records the step in one
// transaction
func (e *Engine) writeJudge(
	ctx context.Context,
	app *models.JudgeApplication,
	judge *models.Judge,
	run *models.ApprovalRun,
) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(ctx, tx, app.Name)
		if err != nil {
			return err
		}
		judge.Slug = slug

		if err := store.New[models.Judge](tx).Create(ctx, judge); err != nil {
			return err
		}

		result := tx.Model(&models.JudgeApplication{}).
			Where("id = ? AND status = ?", app.ID, types.ReviewStatusPending).
			Update("status", types.ReviewStatusApproved)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invalidState("application was reviewed concurrently")
		}

		saved := *run
		saved.Steps = maps.Clone(run.Steps)
		saved.JudgeID = &judge.ID
		saved.Mark(types.StepRecordWritten, types.StepStatusDone, nil, e.now())
		if err := tx.Save(&saved).Error; err != nil {
			return err
		}

		*run = saved
		return nil
	})
}

// pending -> rejected, rejecting twice is a no-op
func (e *Engine) RejectJudgeApplication(ctx context.Context, id uuid.UUID) (*models.JudgeApplication, error) {
	ctx, span := tracer.Start(ctx, "RejectJudgeApplication")
	defer span.End()

	app, err := store.New[models.JudgeApplication](e.db).Update(ctx, id, func(a *models.JudgeApplication) error {
		switch a.Status {
		case types.ReviewStatusPending, types.ReviewStatusRejected:
			a.Status = types.ReviewStatusRejected
			return nil
		default:
			return invalidState("application is %s", a.Status)
		}
	})
	if err != nil {
		return nil, fail(span, err, "failed to reject application")
	}

	succeed(span, "rejected application")
	return app, nil
}

// rejected -> pending so the application can be reviewed again
func (e *Engine) ReviewAgain(ctx context.Context, id uuid.UUID) (*models.JudgeApplication, error) {
	ctx, span := tracer.Start(ctx, "ReviewAgain")
	defer span.End()

	app, err := store.New[models.JudgeApplication](e.db).Update(ctx, id, func(a *models.JudgeApplication) error {
		if a.Status != types.ReviewStatusRejected {
			return invalidState("application is %s", a.Status)
		}
		a.Status = types.ReviewStatusPending
		return nil
	})
	if err != nil {
		return nil, fail(span, err, "failed to reopen application")
	}

	succeed(span, "reopened application")
	return app, nil
}
