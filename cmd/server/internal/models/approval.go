package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/judgebase/judgebase-api/internal/types"
)

type StepRecord struct {
	At     time.Time        `json:"at"`
	Status types.StepStatus `json:"status"`
	Error  string           `json:"error,omitempty"`
}

// Step log of one approval, lets operators find and repair approvals whose
// side effects failed
type ApprovalRun struct {
	Kind  types.ApprovalKind `gorm:"type:text"`
	State types.RunState     `gorm:"type:text;default:'running'"`
	Model
	Steps     map[types.StepName]StepRecord `gorm:"type:jsonb;serializer:json"`
	JudgeID   *uuid.UUID
	SubjectID uuid.UUID
}

func (ApprovalRun) TableName() string {
	return "approval_run"
}

func (r ApprovalRun) GetID() uuid.UUID {
	return r.ID
}

func (r *ApprovalRun) BeforeSave(_ *gorm.DB) error {
	if r.Steps == nil {
		r.Steps = map[types.StepName]StepRecord{}
	}
	return nil
}

// Records the outcome of a step, err is only kept for failed steps
func (r *ApprovalRun) Mark(step types.StepName, status types.StepStatus, err error, at time.Time) {
	if r.Steps == nil {
		r.Steps = map[types.StepName]StepRecord{}
	}

	rec := StepRecord{At: at, Status: status}
	if err != nil && status == types.StepStatusFailed {
		rec.Error = err.Error()
	}
	r.Steps[step] = rec
}

func (r *ApprovalRun) Status(step types.StepName) (types.StepStatus, bool) {
	rec, ok := r.Steps[step]
	return rec.Status, ok
}

// completed when no step failed, partial otherwise
func (r *ApprovalRun) Finish() {
	r.State = types.RunStateCompleted
	for _, rec := range r.Steps {
		if rec.Status == types.StepStatusFailed {
			r.State = types.RunStatePartial
			return
		}
	}
}

// The record write failed so the subject is still pending. Side effects that
// already ran are kept in the log, a later approval starts a new run.
func (r *ApprovalRun) Abandon(err error, at time.Time) {
	r.JudgeID = nil
	r.Mark(types.StepRecordWritten, types.StepStatusFailed, err, at)
	r.State = types.RunStateAbandoned
}

func (r *ApprovalRun) SideEffects() types.SideEffects {
	out := make(types.SideEffects, len(r.Steps))
	for step, rec := range r.Steps {
		out[step] = rec.Status
	}
	return out
}
