package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timezone is a reference row of the timezone catalogue.
type Timezone struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:128;not null;uniqueIndex"`
	Abbreviation string `json:"abbreviation" gorm:"size:16"`
	UTCOffset    string `json:"utc_offset" gorm:"column:utc_offset;size:8"`
	Country      string `json:"country" gorm:"size:64"`
}

// TimezoneConfiguration is a user's preferred timezone and clock format.
type TimezoneConfiguration struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex"`
	Timezone   string    `json:"timezone" gorm:"size:128;not null"`
	TimeFormat string    `json:"time_format" gorm:"size:8;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	User *UserRef `json:"users,omitempty" gorm:"foreignKey:UserID"`
}

// TableName keeps the table name used by the map application.
func (TimezoneConfiguration) TableName() string { return "user_timezone_configurations" }

// BeforeCreate sets UUID before creating the record.
func (c *TimezoneConfiguration) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
