// Package workflow holds the status transitions of applications, judges,
// hackathons, invitations and judging interests, and the credential issuance
// that goes with approving them.
//
// The database is the source of truth. Identity provisioning, email and the
// search index are best-effort: their failures are logged, counted, recorded
// on the approval run and returned to the caller, but never fail the
// operation that triggered them.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	"github.com/judgebase/judgebase-api/cmd/server/internal/metrics"
	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/cmd/server/internal/search"
	"github.com/judgebase/judgebase-api/cmd/server/internal/store"
	"github.com/judgebase/judgebase-api/internal/authprovider"
	"github.com/judgebase/judgebase-api/internal/credential"
	"github.com/judgebase/judgebase-api/internal/logger"
	"github.com/judgebase/judgebase-api/internal/notify"
	"github.com/judgebase/judgebase-api/internal/types"
	"github.com/judgebase/judgebase-api/internal/upload"
)

var tracer = otel.Tracer("github.com/judgebase/judgebase-api/cmd/server/internal/workflow")

const (
	// Validity of presigned photo links handed to the web app
	PhotoURLTTL = 24 * time.Hour
	// Runs still running after this long are assumed to have died mid way
	staleRunAfter = 15 * time.Minute
	searchLimit   = 50
)

// Collaborators of the engine. Nil interfaces fall back to their no-op
// implementation, except Photos which disables photo uploads.
type Deps struct {
	Provisioner authprovider.Provisioner
	Notifier    notify.Notifier
	Indexer     search.Indexer
	Photos      upload.Uploader
	Logger      *slog.Logger
	// Generates portal passwords, credential.Generate by default
	Passwords func() (string, error)
	Clock     func() time.Time
	// Base URL of the web app, used in email links
	AppURL string
}

type Engine struct {
	db          *gorm.DB
	provisioner authprovider.Provisioner
	notifier    notify.Notifier
	indexer     search.Indexer
	photos      upload.Uploader
	logger      *slog.Logger
	passwords   func() (string, error)
	now         func() time.Time
	appURL      string
}

func New(db *gorm.DB, deps Deps) (*Engine, error) {
	e := &Engine{
		db:          db,
		provisioner: deps.Provisioner,
		notifier:    deps.Notifier,
		indexer:     deps.Indexer,
		photos:      deps.Photos,
		logger:      deps.Logger,
		passwords:   deps.Passwords,
		now:         deps.Clock,
		appURL:      strings.TrimSuffix(deps.AppURL, "/"),
	}

	if e.logger == nil {
		e.logger = logger.Component("workflow")
	}
	if e.provisioner == nil {
		e.provisioner = authprovider.NewNoop(e.logger)
	}
	if e.notifier == nil {
		d, err := notify.NewDispatcher(notify.NewNoopMailer(e.logger), "", e.logger)
		if err != nil {
			return nil, err
		}
		e.notifier = d
	}
	if e.indexer == nil {
		e.indexer = search.Noop{}
	}
	if e.passwords == nil {
		e.passwords = credential.Generate
	}
	if e.now == nil {
		e.now = time.Now
	}

	return e, nil
}

func (e *Engine) link(elem ...string) string {
	return e.appURL + "/" + strings.Join(elem, "/")
}

func fail(span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	return err
}

func succeed(span trace.Span, msg string) {
	span.RecordError(nil)
	span.SetStatus(codes.Ok, msg)
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", srverr.ErrInvalidState, fmt.Sprintf(format, args...))
}

// Outcome of a side effect as a step status
func stepStatus(err error) types.StepStatus {
	switch {
	case err == nil:
		return types.StepStatusDone
	case errors.Is(err, authprovider.ErrNotConfigured),
		errors.Is(err, search.ErrNotConfigured):
		return types.StepStatusSkipped
	default:
		return types.StepStatusFailed
	}
}

// Records a best-effort step on the run and logs failures
func (e *Engine) mark(
	ctx context.Context,
	run *models.ApprovalRun,
	step types.StepName,
	err error,
) types.StepStatus {
	status := stepStatus(err)
	run.Mark(step, status, err, e.now())

	span := trace.SpanFromContext(ctx)
	span.AddEvent(string(step) + ":" + string(status))

	if status == types.StepStatusFailed {
		span.RecordError(err)
		e.logger.WarnContext(ctx, "approval side effect failed",
			"run", run.ID,
			"kind", run.Kind,
			"step", step,
			"error", fmt.Errorf("%w: %w", srverr.ErrExternalService, err),
		)
	}

	return status
}

// Marks the run completed or partial and persists it. The run is bookkeeping,
// failing to save it is logged and does not fail the approval.
func (e *Engine) finish(ctx context.Context, run *models.ApprovalRun) {
	run.Finish()
	metrics.RecordSideEffects(run.Kind, run.SideEffects())
	metrics.RecordRun(run.Kind, run.State)

	if err := e.db.WithContext(ctx).Save(run).Error; err != nil {
		e.logger.ErrorContext(ctx, "failed to save approval run", "run", run.ID, "error", err)
	}
}

type reviewable interface {
	models.JudgeBaseModel
	ReviewState() types.ReviewStatus
}

// Locks the subject, checks it is still pending and claims an approval run
// for it before any side effect runs. A running run younger than
// staleRunAfter belongs to an approval in flight and is refused. An older one
// was left by a process that died and is taken over.
func claimRun[T reviewable](
	ctx context.Context,
	e *Engine,
	kind types.ApprovalKind,
	id uuid.UUID,
) (*T, *models.ApprovalRun, error) {
	var subject *T
	var run models.ApprovalRun

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		subject, err = store.New[T](tx.Clauses(clause.Locking{Strength: "UPDATE"})).ByID(ctx, id)
		if err != nil {
			return err
		}
		if st := (*subject).ReviewState(); st != types.ReviewStatusPending {
			return invalidState("%s is %s", kind, st)
		}

		err = tx.Where("kind = ? AND subject_id = ? AND state = ?", kind, id, types.RunStateRunning).
			Order("created_at DESC").
			First(&run).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			run = models.ApprovalRun{Kind: kind, SubjectID: id, State: types.RunStateRunning}
			return tx.Create(&run).Error
		case err != nil:
			return err
		case run.UpdatedAt.After(e.now().Add(-staleRunAfter)):
			return invalidState("%s approval already in progress", kind)
		default:
			e.logger.InfoContext(ctx, "resuming interrupted approval", "run", run.ID, "kind", kind)
			return tx.Save(&run).Error
		}
	})
	if err != nil {
		return nil, nil, err
	}

	return subject, &run, nil
}

// Persists a run whose record write failed so it no longer counts as in
// flight
func (e *Engine) abandon(ctx context.Context, run *models.ApprovalRun, cause error) {
	run.Abandon(cause, e.now())
	metrics.RecordRun(run.Kind, run.State)

	if err := e.db.WithContext(ctx).Save(run).Error; err != nil {
		e.logger.ErrorContext(ctx, "failed to save abandoned approval run", "run", run.ID, "error", err)
	}
}

// Creates the identity for email with password. An existing identity gets the
// new password so the emailed credentials work.
func (e *Engine) provision(
	ctx context.Context,
	email, password string,
	existing authprovider.Handle,
) (authprovider.Handle, error) {
	if existing != "" {
		return existing, e.provisioner.UpdatePassword(ctx, existing, password)
	}

	handle, err := e.provisioner.CreateUser(ctx, email, password)
	if !errors.Is(err, authprovider.ErrUserExists) {
		return handle, err
	}

	handle, err = e.provisioner.LookupUser(ctx, email)
	if err != nil {
		return "", err
	}

	return handle, e.provisioner.UpdatePassword(ctx, handle, password)
}

func (e *Engine) newCredential() (string, string, error) {
	password, err := e.passwords()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate password: %w", err)
	}

	hash, err := credential.Hash(password)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	return password, hash, nil
}

func judgeDocument(j *models.Judge) search.Document {
	return search.Document{
		UpdatedAt: j.UpdatedAt,
		Name:      j.Name,
		Slug:      j.Slug,
		Role:      j.Role,
		Company:   j.Company,
		Bio:       j.Bio,
		Expertise: j.Expertise,
		Badges:    j.Badges,
		Featured:  j.Featured,
	}
}

// Keeps the index in line with the judge, only approved judges are public
func (e *Engine) syncIndex(ctx context.Context, j *models.Judge) error {
	if j.Status != types.ReviewStatusApproved {
		return e.indexer.RemoveJudge(ctx, j.ID)
	}
	return e.indexer.IndexJudge(ctx, j.ID, judgeDocument(j))
}
