package model

// FAQMetadataRowID is the primary key of the single FAQ metadata row.
const FAQMetadataRowID uint = 1

// FAQMetadata holds the FAQ page heading block.
type FAQMetadata struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	Heading           string `json:"heading" gorm:"size:255"`
	Subheading        string `json:"subheading" gorm:"type:text"`
	SearchPlaceholder string `json:"search_placeholder" gorm:"size:255"`
}

// TableName keeps the singular table name used by the dashboard.
func (FAQMetadata) TableName() string { return "faq_metadata" }

// FAQCategory groups FAQ questions.
type FAQCategory struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"size:255;not null"`
	Description string        `json:"description" gorm:"type:text"`
	Questions   []FAQQuestion `json:"questions" gorm:"foreignKey:CategoryID"`
}

// FAQQuestion is a single question/answer pair.
type FAQQuestion struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CategoryID uint   `json:"category_id" gorm:"not null;index"`
	Question   string `json:"question" gorm:"type:text;not null"`
	Answer     string `json:"answer" gorm:"type:text;not null"`
}
