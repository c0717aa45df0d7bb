package model

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsRowID is the primary key of the single settings row.
const SettingsRowID uint = 1

// Setting is the single row of site-wide settings.
type Setting struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	SiteName          string    `json:"site_name" gorm:"size:255"`
	SiteURL           string    `json:"site_url" gorm:"size:512"`
	SiteDescription   string    `json:"site_description" gorm:"type:text"`
	SiteIcon          string    `json:"site_icon" gorm:"size:512"`
	AdminEmail        string    `json:"admin_email" gorm:"size:255"`
	Timezone          string    `json:"timezone" gorm:"size:64"`
	Language          string    `json:"language" gorm:"size:16"`
	DateFormat        string    `json:"date_format" gorm:"size:32"`
	MaintenanceMode   bool      `json:"maintenance_mode"`
	AllowRegistration bool      `json:"allow_registration"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Address is the postal address shown on the contact page.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// BusinessHour is one "day: time" line of the opening hours.
type BusinessHour struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// BusinessHours is the opening-hours block of the contact page.
type BusinessHours struct {
	Heading    string         `json:"heading"`
	Subheading string         `json:"subheading"`
	Hours      []BusinessHour `json:"hours"`
}

// ContactInfo is the single row backing the contact page.
type ContactInfo struct {
	ID                uint                              `json:"id" gorm:"primaryKey"`
	Heading           string                            `json:"heading" gorm:"size:255"`
	Subheading        string                            `json:"subheading" gorm:"type:text"`
	FormHeading       string                            `json:"form_heading" gorm:"size:255"`
	FormSubheading    string                            `json:"form_subheading" gorm:"type:text"`
	ContactHeading    string                            `json:"contact_heading" gorm:"size:255"`
	ContactSubheading string                            `json:"contact_subheading" gorm:"type:text"`
	Emails            datatypes.JSONSlice[string]       `json:"emails"`
	Phones            datatypes.JSONSlice[string]       `json:"phones"`
	Address           datatypes.JSONType[Address]       `json:"address"`
	BusinessHours     datatypes.JSONType[BusinessHours] `json:"business_hours"`
	UpdatedAt         time.Time                         `json:"updated_at"`
}

// TableName keeps the singular table name used by the dashboard.
func (ContactInfo) TableName() string { return "contact_info" }

// DefaultContactInfo is the content installed by POST /contact and the seeder.
func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Heading:           "Get in Touch",
		Subheading:        "Have questions or need assistance? We're here to help. Fill out the form below or use our contact information.",
		FormHeading:       "Send us a Message",
		FormSubheading:    "Fill out the form below and we'll get back to you as soon as possible.",
		ContactHeading:    "Contact Information",
		ContactSubheading: "Reach out to us directly using the information below.",
		Emails:            datatypes.JSONSlice[string]{"support@niceadmin.com", "info@niceadmin.com"},
		Phones:            datatypes.JSONSlice[string]{"+1 (555) 123-45", "+1 (555) 987-65"},
		Address: datatypes.NewJSONType(Address{
			Street:  "123 Admin Street",
			City:    "Dashboard City",
			Country: "United States",
		}),
		BusinessHours: datatypes.NewJSONType(BusinessHours{
			Heading:    "Business Hours",
			Subheading: "When you can reach our support team.",
			Hours: []BusinessHour{
				{Day: "Monday - Friday", Time: "9:00 AM - 6:00 PM EST"},
				{Day: "Saturday", Time: "10:00 AM - 4:00 PM EST"},
				{Day: "Sunday", Time: "Closed"},
			},
		}),
	}
}

// PrivacyPolicy is the single row backing the privacy page.
type PrivacyPolicy struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Content     string    `json:"content" gorm:"type:text"`
	LastUpdated string    `json:"last_updated" gorm:"size:64"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName keeps the singular table name used by the dashboard.
func (PrivacyPolicy) TableName() string { return "privacy_policy" }
