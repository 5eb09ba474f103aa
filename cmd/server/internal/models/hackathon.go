package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/judgebase/judgebase-api/internal/types"
)

type Hackathon struct {
	StartDate      time.Time
	EndDate        time.Time
	OrganizerName  string
	OrganizerEmail string
	Organization   string
	Name           string
	Description    string
	Website        string
	Theme          string
	TimeCommitment string
	Deliverables   string
	Platform       types.EventFormat  `gorm:"type:text"`
	Status         types.ReviewStatus `gorm:"type:text;default:'pending'"`
	Model
	Domains []string `gorm:"type:jsonb;serializer:json"`
	// set only on approval
	AuthPasswordHash datatypes.Null[string]
	ParticipantCount int
	JudgesNeeded     int
}

func (Hackathon) TableName() string {
	return "hackathon"
}

func (h Hackathon) GetID() uuid.UUID {
	return h.ID
}

func (h Hackathon) ReviewState() types.ReviewStatus {
	return h.Status
}

func (h *Hackathon) BeforeSave(_ *gorm.DB) error {
	h.Domains = nonNil(h.Domains)
	return nil
}
