package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/judgebase/judgebase-api/internal/types"
)

// Profile shared by an application and the judge approved from it
type JudgeProfile struct {
	Name       string
	Email      string
	Role       string
	Company    string
	LinkedIn   string `gorm:"column:linkedin"`
	GitHub     string `gorm:"column:github"`
	Website    string
	Bio        string
	Philosophy string
	Format     types.EventFormat `gorm:"type:text"`
	Expertise  []string          `gorm:"type:jsonb;serializer:json"`
	PhotoKey   datatypes.Null[string]
	Mentoring  bool
}

type (
	JudgeApplication struct {
		Status types.ReviewStatus `gorm:"type:text;default:'pending'"`
		JudgeProfile
		Model
	}

	Judge struct {
		Slug   string
		Status types.ReviewStatus `gorm:"type:text"`
		JudgeProfile
		Model
		Badges []string `gorm:"type:jsonb;serializer:json"`
		// argon2id hash of the generated portal password
		AuthPasswordHash datatypes.Null[string]
		// identity provider handle
		AuthUserID          datatypes.Null[string]
		SourceApplicationID *uuid.UUID
		Featured            bool
	}
)

func (JudgeApplication) TableName() string {
	return "judge_application"
}

func (a JudgeApplication) GetID() uuid.UUID {
	return a.ID
}

func (a JudgeApplication) ReviewState() types.ReviewStatus {
	return a.Status
}

func (a *JudgeApplication) BeforeSave(_ *gorm.DB) error {
	a.Expertise = nonNil(a.Expertise)
	return nil
}

func (Judge) TableName() string {
	return "judge"
}

func (j Judge) GetID() uuid.UUID {
	return j.ID
}

func (j *Judge) BeforeSave(_ *gorm.DB) error {
	j.Expertise = nonNil(j.Expertise)
	j.Badges = nonNil(j.Badges)
	return nil
}
