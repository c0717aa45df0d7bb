package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// User represents an end-user account of the map application.
type User struct {
	ID                    uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName             string    `json:"first_name" gorm:"size:100"`
	LastName              string    `json:"last_name" gorm:"size:100"`
	Email                 string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone                 *string   `json:"phone" gorm:"uniqueIndex;size:32"`
	PasswordHash          string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Avatar                string    `json:"avatar" gorm:"size:512"`
	Location              string    `json:"location" gorm:"size:255"`
	Status                string    `json:"status" gorm:"size:50;default:'active'"`
	Type                  string    `json:"type" gorm:"size:50"`
	Role                  string    `json:"role" gorm:"size:50;default:'user'"`
	SendInvite            bool      `json:"send_invite"`
	RequirePasswordChange bool      `json:"require_password_change"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	// Relations
	Subscription *UserSubscription `json:"user_subscriptions" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID and default role before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// UserRef is the short user projection embedded in pins and timezone configurations.
type UserRef struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// TableName binds UserRef to the users table.
func (UserRef) TableName() string { return "users" }
