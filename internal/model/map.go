package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MapPin is a saved location on a user's map.
type MapPin struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	LocationName string    `json:"location_name" gorm:"size:255;not null"`
	Latitude     float64   `json:"latitude" gorm:"not null"`
	Longitude    float64   `json:"longitude" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	User *UserRef `json:"users,omitempty" gorm:"foreignKey:UserID"`
}

// TableName keeps the table name used by the map application.
func (MapPin) TableName() string { return "user_location_pins" }

// BeforeCreate sets UUID before creating the record.
func (p *MapPin) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MapControl holds the per-user toggles of map overlays.
type MapControl struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex"`
	TimeZones   bool      `json:"time_zones"`
	DayNight    bool      `json:"day_night"`
	SunMoon     bool      `json:"sun_moon"`
	MapStyles   bool      `json:"map_styles"`
	Time24Form  bool      `json:"time_24_form" gorm:"column:time_24_form"`
	AboutApp    string    `json:"about_app" gorm:"type:text"`
	Weather     bool      `json:"weather"`
	Earthquakes bool      `json:"earthquakes"`
	AirTraffic  bool      `json:"air_traffic"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
