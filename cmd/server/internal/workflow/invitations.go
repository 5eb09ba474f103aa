package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	"github.com/judgebase/judgebase-api/cmd/server/internal/metrics"
	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/cmd/server/internal/store"
	"github.com/judgebase/judgebase-api/internal/notify"
	"github.com/judgebase/judgebase-api/internal/types"
)

const dateLayout = "January 2, 2006"

type InviteResult struct {
	SuccessCount int
	FailedCount  int
}

// Emails an invitation to every approved judge among judgeIDs and records an
// invitation row for each, whether or not its email went out. Unknown,
// malformed and non-approved ids are dropped, as are judges who already
// answered an invitation to this hackathon. Sends are sequential.
func (e *Engine) InviteJudgesToHackathon(
	ctx context.Context,
	hackathonID uuid.UUID,
	judgeIDs []string,
	message string,
) (*InviteResult, error) {
	ctx, span := tracer.Start(ctx, "InviteJudgesToHackathon")
	defer span.End()

	span.SetAttributes(attribute.String("hackathon.id", hackathonID.String()))

	h, err := store.New[models.Hackathon](e.db).ByID(ctx, hackathonID)
	if err != nil {
		return nil, fail(span, err, "failed to get hackathon")
	}
	if h.Status != types.ReviewStatusApproved {
		return nil, fail(span, invalidState("hackathon is %s", h.Status), "hackathon not approved")
	}

	ids := make([]uuid.UUID, 0, len(judgeIDs))
	for _, raw := range judgeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			e.logger.DebugContext(ctx, "dropping malformed judge id", "id", raw)
			continue
		}
		ids = append(ids, id)
	}

	judges := []models.Judge{}
	if len(ids) > 0 {
		judges, err = store.New[models.Judge](e.db).List(ctx, "id IN ? AND status = ?", ids, types.ReviewStatusApproved)
		if err != nil {
			return nil, fail(span, err, "failed to load judges")
		}
	}

	answered, err := e.answeredInvitations(ctx, h.ID, ids)
	if err != nil {
		return nil, fail(span, err, "failed to load invitations")
	}

	recipients := make([]notify.Recipient, 0, len(judges))
	for _, j := range judges {
		if answered[j.ID] {
			e.logger.DebugContext(ctx, "judge already answered", "judge", j.ID, "hackathon", h.ID)
			continue
		}
		recipients = append(recipients, notify.Recipient{
			Key:   j.ID.String(),
			Email: j.Email,
			Name:  j.Name,
			Data: notify.JudgeInvitedData{
				JudgeName:     j.Name,
				HackathonName: h.Name,
				Organization:  h.Organization,
				StartDate:     h.StartDate.Format(dateLayout),
				EndDate:       h.EndDate.Format(dateLayout),
				Message:       message,
				PortalURL:     e.link("judge", "dashboard"),
			},
		})
	}

	span.SetAttributes(
		attribute.Int("requested", len(judgeIDs)),
		attribute.Int("recipients", len(recipients)),
	)

	res := e.notifier.SendBulk(ctx, notify.TemplateJudgeInvited, recipients, func(r notify.Recipient, sendErr error) {
		judgeID, err := uuid.Parse(r.Key)
		if err != nil {
			e.logger.ErrorContext(ctx, "invitation recipient without judge id", "key", r.Key, "error", err)
			return
		}
		if err := e.recordInvitation(ctx, judgeID, h.ID, message, sendErr == nil); err != nil {
			e.logger.ErrorContext(ctx, "failed to record invitation",
				"judge", judgeID,
				"hackathon", h.ID,
				"error", err,
			)
		}
	})

	metrics.RecordInvitations(res.Success, res.Failed)

	succeed(span, "invited judges")
	return &InviteResult{SuccessCount: res.Success, FailedCount: res.Failed}, nil
}

// Judges among ids whose invitation to the hackathon is accepted or rejected
func (e *Engine) answeredInvitations(
	ctx context.Context,
	hackathonID uuid.UUID,
	ids []uuid.UUID,
) (map[uuid.UUID]bool, error) {
	answered := map[uuid.UUID]bool{}
	if len(ids) == 0 {
		return answered, nil
	}

	var judgeIDs []uuid.UUID
	err := e.db.WithContext(ctx).Model(&models.Invitation{}).
		Where("hackathon_id = ? AND judge_id IN ? AND status <> ?", hackathonID, ids, types.ResponseStatusPending).
		Pluck("judge_id", &judgeIDs).Error
	if err != nil {
		return nil, err
	}

	for _, id := range judgeIDs {
		answered[id] = true
	}
	return answered, nil
}

// Upserts on (judge, hackathon). Re-inviting keeps the answer and only
// refreshes the message and whether an email ever reached the judge.
func (e *Engine) recordInvitation(
	ctx context.Context,
	judgeID, hackathonID uuid.UUID,
	message string,
	sent bool,
) error {
	inv := &models.Invitation{
		Status:      types.ResponseStatusPending,
		Message:     message,
		JudgeID:     judgeID,
		HackathonID: hackathonID,
		EmailSent:   sent,
	}

	return e.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "judge_id"}, {Name: "hackathon_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"message":    gorm.Expr("excluded.message"),
			"email_sent": gorm.Expr("invitation.email_sent OR excluded.email_sent"),
		}),
	}).Create(inv).Error
}

// Invitations of a judge, newest first
func (e *Engine) JudgeInvitations(ctx context.Context, judgeID uuid.UUID) ([]models.Invitation, error) {
	ctx, span := tracer.Start(ctx, "JudgeInvitations")
	defer span.End()

	invs, err := store.New[models.Invitation](e.db).List(ctx, "judge_id = ?", judgeID)
	if err != nil {
		return nil, fail(span, err, "failed to list invitations")
	}

	succeed(span, "listed invitations")
	return invs, nil
}

// Invitations of a hackathon, newest first
func (e *Engine) HackathonInvitations(ctx context.Context, hackathonID uuid.UUID) ([]models.Invitation, error) {
	ctx, span := tracer.Start(ctx, "HackathonInvitations")
	defer span.End()

	invs, err := store.New[models.Invitation](e.db).List(ctx, "hackathon_id = ?", hackathonID)
	if err != nil {
		return nil, fail(span, err, "failed to list invitations")
	}

	succeed(span, "listed invitations")
	return invs, nil
}

// Moves pending to a terminal status. Repeating the current terminal status
// is a no-op, any other change is ErrInvalidState.
func respond(current *types.ResponseStatus, next types.ResponseStatus) error {
	if !next.Terminal() {
		return fmt.Errorf("%w: status must be accepted or rejected", srverr.ErrValidation)
	}

	switch *current {
	case types.ResponseStatusPending:
		*current = next
		return nil
	case next:
		return nil
	default:
		return invalidState("already %s", *current)
	}
}

// Judge answering an invitation addressed to them
func (e *Engine) RespondToInvitation(
	ctx context.Context,
	judgeID, invitationID uuid.UUID,
	status types.ResponseStatus,
) (*models.Invitation, error) {
	ctx, span := tracer.Start(ctx, "RespondToInvitation")
	defer span.End()

	span.SetAttributes(
		attribute.String("invitation.id", invitationID.String()),
		attribute.String("status", string(status)),
	)

	inv, err := store.New[models.Invitation](e.db).Update(ctx, invitationID, func(inv *models.Invitation) error {
		// someone else's invitation is reported as missing
		if inv.JudgeID != judgeID {
			return fmt.Errorf("%w: invitation", srverr.ErrNotFound)
		}
		return respond(&inv.Status, status)
	})
	if err != nil {
		return nil, fail(span, err, "failed to respond to invitation")
	}

	succeed(span, "responded to invitation")
	return inv, nil
}

func (e *Engine) approvedJudge(ctx context.Context, id uuid.UUID) (*models.Judge, error) {
	j, err := store.New[models.Judge](e.db).ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.Status != types.ReviewStatusApproved {
		return nil, invalidState("judge is %s", j.Status)
	}
	return j, nil
}

func (e *Engine) approvedHackathon(ctx context.Context, id uuid.UUID) (*models.Hackathon, error) {
	h, err := store.New[models.Hackathon](e.db).ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.Status != types.ReviewStatusApproved {
		return nil, invalidState("hackathon is %s", h.Status)
	}
	return h, nil
}

// Judge volunteering for a hackathon. A judge can express interest in a
// hackathon once.
func (e *Engine) ExpressInterest(
	ctx context.Context,
	judgeID, hackathonID uuid.UUID,
	message string,
) (*models.JudgingInterest, error) {
	ctx, span := tracer.Start(ctx, "ExpressInterest")
	defer span.End()

	span.SetAttributes(
		attribute.String("judge.id", judgeID.String()),
		attribute.String("hackathon.id", hackathonID.String()),
	)

	if _, err := e.approvedJudge(ctx, judgeID); err != nil {
		return nil, fail(span, err, "judge cannot express interest")
	}
	if _, err := e.approvedHackathon(ctx, hackathonID); err != nil {
		return nil, fail(span, err, "hackathon not open for interest")
	}

	interest := &models.JudgingInterest{
		Status:      types.ResponseStatusPending,
		Message:     message,
		JudgeID:     judgeID,
		HackathonID: hackathonID,
	}
	if err := store.New[models.JudgingInterest](e.db).Create(ctx, interest); err != nil {
		return nil, fail(span, err, "failed to create interest")
	}

	succeed(span, "expressed interest")
	return interest, nil
}

// Organizer answering a judge's interest in their hackathon
func (e *Engine) UpdateInterestStatus(
	ctx context.Context,
	judgeID, hackathonID uuid.UUID,
	status types.ResponseStatus,
) (*models.JudgingInterest, error) {
	ctx, span := tracer.Start(ctx, "UpdateInterestStatus")
	defer span.End()

	span.SetAttributes(
		attribute.String("judge.id", judgeID.String()),
		attribute.String("hackathon.id", hackathonID.String()),
		attribute.String("status", string(status)),
	)

	var interest models.JudgingInterest
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("judge_id = ? AND hackathon_id = ?", judgeID, hackathonID).
			First(&interest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: interest", srverr.ErrNotFound)
		}
		if err != nil {
			return err
		}

		before := interest.Status
		if err := respond(&interest.Status, status); err != nil {
			return err
		}
		if before == interest.Status {
			return nil
		}

		return tx.Model(&interest).Update("status", interest.Status).Error
	})
	if err != nil {
		return nil, fail(span, err, "failed to update interest")
	}

	succeed(span, "updated interest")
	return &interest, nil
}

type InterestWithJudge struct {
	Interest models.JudgingInterest
	Judge    models.Judge
}

// Interests expressed in a hackathon along with the judges behind them
func (e *Engine) HackathonInterests(ctx context.Context, hackathonID uuid.UUID) ([]InterestWithJudge, error) {
	ctx, span := tracer.Start(ctx, "HackathonInterests")
	defer span.End()

	interests, err := store.New[models.JudgingInterest](e.db).List(ctx, "hackathon_id = ?", hackathonID)
	if err != nil {
		return nil, fail(span, err, "failed to list interests")
	}

	out := make([]InterestWithJudge, 0, len(interests))
	if len(interests) == 0 {
		succeed(span, "listed interests")
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(interests))
	for _, i := range interests {
		ids = append(ids, i.JudgeID)
	}

	judges, err := store.New[models.Judge](e.db).List(ctx, "id IN ?", ids)
	if err != nil {
		return nil, fail(span, err, "failed to load judges")
	}

	byID := make(map[uuid.UUID]models.Judge, len(judges))
	for _, j := range judges {
		byID[j.ID] = j
	}

	for _, i := range interests {
		out = append(out, InterestWithJudge{Interest: i, Judge: byID[i.JudgeID]})
	}

	succeed(span, "listed interests")
	return out, nil
}
