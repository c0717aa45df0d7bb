package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus represents the status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment records a subscription payment made by a user.
type Payment struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	PlanID    *uuid.UUID      `json:"plan_id" gorm:"type:char(36);index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Currency  string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Method    string          `json:"method" gorm:"size:32"`
	Reference string          `json:"reference" gorm:"size:128"`
	Status    PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PaymentStatusPending
	}
	return nil
}
