package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/internal/types"
)

func TestViews(t *testing.T) {
	t.Run("JudgeHidesEmail", func(t *testing.T) {
		j := newJudge("janedoe")
		j.ID = uuid.New()

		public := j.View("https://photos.test/a.png", false)
		assert.Empty(t, public.Email)
		assert.Equal(t, "https://photos.test/a.png", public.PhotoURL)
		assert.Equal(t, []string{}, public.Badges, "nil lists render as empty")

		admin := j.View("", true)
		assert.Equal(t, "janedoe@example.com", admin.Email)
		assert.Equal(t, j.ID.String(), admin.ID)
	})

	t.Run("HackathonHidesOrganizerEmail", func(t *testing.T) {
		h := &models.Hackathon{OrganizerEmail: "org@example.com", Name: "Hack"}
		assert.Empty(t, h.View(false).OrganizerEmail)
		assert.Equal(t, "org@example.com", h.View(true).OrganizerEmail)
	})

	t.Run("ApprovalRunSteps", func(t *testing.T) {
		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		judgeID := uuid.New()
		run := &models.ApprovalRun{Kind: types.ApprovalKindJudgeApplication, JudgeID: &judgeID}
		run.Mark(types.StepNotified, types.StepStatusFailed, assert.AnError, at)

		v := run.View()
		assert.Equal(t, judgeID.String(), v.JudgeID)
		assert.Equal(t, types.StepView{
			At:     at,
			Status: types.StepStatusFailed,
			Error:  assert.AnError.Error(),
		}, v.Steps[types.StepNotified])
	})
}
