package models

import (
	"time"

	"github.com/google/uuid"
)

type AdminSession struct {
	ExpiresAt time.Time
	// sha256 of the cookie value
	TokenHash string
	Model
}

func (AdminSession) TableName() string {
	return "admin_session"
}

func (s AdminSession) GetID() uuid.UUID {
	return s.ID
}
