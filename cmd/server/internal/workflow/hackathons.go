package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/cmd/server/internal/store"
	"github.com/judgebase/judgebase-api/internal/notify"
	"github.com/judgebase/judgebase-api/internal/types"
)

type HackathonApproval struct {
	Hackathon         *models.Hackathon
	Run               *models.ApprovalRun
	GeneratedPassword string
	SideEffects       types.SideEffects
}

func (e *Engine) SubmitHackathon(
	ctx context.Context,
	in types.HackathonSubmission,
) (*models.Hackathon, error) {
	ctx, span := tracer.Start(ctx, "SubmitHackathon")
	defer span.End()

	start, err := time.Parse(time.RFC3339, in.StartDate)
	if err != nil {
		return nil, fail(span, fmt.Errorf("%w: startDate: %w", srverr.ErrValidation, err), "bad start date")
	}
	end, err := time.Parse(time.RFC3339, in.EndDate)
	if err != nil {
		return nil, fail(span, fmt.Errorf("%w: endDate: %w", srverr.ErrValidation, err), "bad end date")
	}
	if end.Before(start) {
		return nil, fail(span, fmt.Errorf("%w: endDate before startDate", srverr.ErrValidation), "bad dates")
	}

	h := &models.Hackathon{
		Status:           types.ReviewStatusPending,
		OrganizerName:    strings.TrimSpace(in.OrganizerName),
		OrganizerEmail:   normalizeEmail(in.OrganizerEmail),
		Organization:     in.Organization,
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		Website:          in.Website,
		StartDate:        start,
		EndDate:          end,
		Platform:         in.Platform,
		Theme:            in.Theme,
		Domains:          in.Domains,
		ParticipantCount: in.ParticipantCount,
		JudgesNeeded:     in.JudgesNeeded,
		TimeCommitment:   in.TimeCommitment,
		Deliverables:     in.Deliverables,
	}

	if err := store.New[models.Hackathon](e.db).Create(ctx, h); err != nil {
		return nil, fail(span, err, "failed to create hackathon")
	}

	span.SetAttributes(attribute.String("hackathon.id", h.ID.String()))
	succeed(span, "submitted hackathon")
	return h, nil
}

// Hackathons newest first, an empty status lists all of them
func (e *Engine) Hackathons(ctx context.Context, status types.ReviewStatus) ([]models.Hackathon, error) {
	ctx, span := tracer.Start(ctx, "Hackathons")
	defer span.End()

	s := store.New[models.Hackathon](e.db)

	var hackathons []models.Hackathon
	var err error
	if status == "" {
		hackathons, err = s.List(ctx)
	} else {
		hackathons, err = s.List(ctx, "status = ?", status)
	}
	if err != nil {
		return nil, fail(span, err, "failed to list hackathons")
	}

	succeed(span, "listed hackathons")
	return hackathons, nil
}

// Approves the hackathon in place and emails the organizer dashboard
// credentials. Organizers have no identity provider account.
func (e *Engine) ApproveHackathon(ctx context.Context, id uuid.UUID) (*HackathonApproval, error) {
	ctx, span := tracer.Start(ctx, "ApproveHackathon")
	defer span.End()

	span.SetAttributes(attribute.String("hackathon.id", id.String()))

	h, run, err := claimRun[models.Hackathon](ctx, e, types.ApprovalKindHackathon, id)
	if err != nil {
		return nil, fail(span, err, "failed to claim hackathon")
	}

	password, hash, err := e.newCredential()
	if err != nil {
		e.abandon(ctx, run, err)
		return nil, fail(span, err, "failed to generate credential")
	}
	run.Mark(types.StepCredentialGenerated, types.StepStatusDone, nil, e.now())

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Hackathon{}).
			Where("id = ? AND status = ?", h.ID, types.ReviewStatusPending).
			Updates(map[string]any{
				"status":             types.ReviewStatusApproved,
				"auth_password_hash": hash,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return invalidState("hackathon was reviewed concurrently")
		}

		run.Mark(types.StepRecordWritten, types.StepStatusDone, nil, e.now())
		return tx.Save(run).Error
	})
	if err != nil {
		e.abandon(ctx, run, err)
		return nil, fail(span, err, "failed to approve hackathon")
	}
	h.Status = types.ReviewStatusApproved
	h.AuthPasswordHash = models.NewNullFromData(hash)

	err = e.sendHackathonApproved(ctx, h, password)
	e.mark(ctx, run, types.StepNotified, err)

	e.finish(ctx, run)

	succeed(span, "approved hackathon")
	return &HackathonApproval{
		Hackathon:         h,
		Run:               run,
		GeneratedPassword: password,
		SideEffects:       run.SideEffects(),
	}, nil
}

func (e *Engine) sendHackathonApproved(ctx context.Context, h *models.Hackathon, password string) error {
	return e.notifier.Send(ctx, notify.TemplateHackathonApproved, notify.Recipient{
		Email: h.OrganizerEmail,
		Name:  h.OrganizerName,
		Data: notify.HackathonApprovedData{
			OrganizerName: h.OrganizerName,
			HackathonName: h.Name,
			Email:         h.OrganizerEmail,
			Password:      password,
			LoginURL:      e.link("organizer", "login"),
		},
	})
}

// pending -> rejected, rejecting twice is a no-op
func (e *Engine) RejectHackathon(ctx context.Context, id uuid.UUID) (*models.Hackathon, error) {
	ctx, span := tracer.Start(ctx, "RejectHackathon")
	defer span.End()

	h, err := store.New[models.Hackathon](e.db).Update(ctx, id, func(h *models.Hackathon) error {
		switch h.Status {
		case types.ReviewStatusPending, types.ReviewStatusRejected:
			h.Status = types.ReviewStatusRejected
			return nil
		default:
			return invalidState("hackathon is %s", h.Status)
		}
	})
	if err != nil {
		return nil, fail(span, err, "failed to reject hackathon")
	}

	succeed(span, "rejected hackathon")
	return h, nil
}
