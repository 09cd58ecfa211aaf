package models

import "time"

// SEOMeta holds the search and social metadata for one page path
type SEOMeta struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PagePath      string    `gorm:"uniqueIndex;size:255;not null" json:"page_path"`
	Title         string    `gorm:"size:255" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Keywords      string    `gorm:"type:text" json:"keywords"`
	OGTitle       string    `gorm:"size:255" json:"og_title"`
	OGDescription string    `gorm:"type:text" json:"og_description"`
	OGImage       string    `gorm:"size:500" json:"og_image"`
	CanonicalURL  string    `gorm:"size:500" json:"canonical_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name for SEOMeta
func (SEOMeta) TableName() string {
	return "seo_metadata"
}
