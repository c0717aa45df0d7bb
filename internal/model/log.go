package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records an action performed by an admin.
type AuditLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Admin     string    `json:"admin" gorm:"size:255;not null;index"`
	Action    string    `json:"action" gorm:"size:255;not null"`
	Target    string    `json:"target" gorm:"size:255"`
	IPAddress string    `json:"ip_address" gorm:"size:64"`
	Severity  string    `json:"severity" gorm:"size:16;default:'info'"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
}

// BeforeCreate sets UUID before creating the record.
func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// UserLog records an action performed by an end user.
// All user activity is logged regardless of outcome.
type UserLog struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Action     string    `json:"action" gorm:"size:255;not null"`
	IPAddress  string    `json:"ip_address" gorm:"size:64;not null"`
	DeviceType string    `json:"device_type" gorm:"size:64;not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
}

// BeforeCreate sets UUID before creating the record.
func (l *UserLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
