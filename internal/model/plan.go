package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultPlanName is assigned to every newly created user.
const DefaultPlanName = "Free Plan"

// Plan is a subscription plan offered to users.
type Plan struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string          `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null;default:0"`
	Color        string          `json:"color" gorm:"size:32"`
	BillingCycle string          `json:"billing_cycle" gorm:"size:32"`
	Popular      bool            `json:"popular"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	Features []PlanFeature `json:"features" gorm:"foreignKey:PlanID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PlanFeature is one line of a plan's feature list.
type PlanFeature struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	PlanID   uuid.UUID `json:"plan_id" gorm:"type:char(36);not null;index"`
	Name     string    `json:"name" gorm:"size:255;not null"`
	Included bool      `json:"included"`
}

// UserSubscription links a user to their current plan.
type UserSubscription struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex"`
	PlanID    uuid.UUID `json:"plan_id" gorm:"type:char(36);not null;index"`
	StartDate time.Time `json:"start_date"`
	Status    string    `json:"status" gorm:"size:32;default:'active'"`

	// Relations
	Plan *Plan `json:"plans,omitempty" gorm:"foreignKey:PlanID"`
}
