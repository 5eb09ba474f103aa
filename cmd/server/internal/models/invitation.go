package models

import (
	"github.com/google/uuid"

	"github.com/judgebase/judgebase-api/internal/types"
)

type (
	// Admin initiated judge to hackathon link
	Invitation struct {
		Status  types.ResponseStatus `gorm:"type:text;default:'pending'"`
		Message string
		Model
		JudgeID     uuid.UUID
		HackathonID uuid.UUID
		EmailSent   bool
	}

	// Judge initiated judge to hackathon link
	JudgingInterest struct {
		Status  types.ResponseStatus `gorm:"type:text;default:'pending'"`
		Message string
		Model
		JudgeID     uuid.UUID
		HackathonID uuid.UUID
	}
)

func (Invitation) TableName() string {
	return "invitation"
}

func (i Invitation) GetID() uuid.UUID {
	return i.ID
}

func (JudgingInterest) TableName() string {
	return "judging_interest"
}

func (i JudgingInterest) GetID() uuid.UUID {
	return i.ID
}
