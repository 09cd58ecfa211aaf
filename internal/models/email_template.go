package models

import "time"

// Template roles
const (
	TemplateAdmin    = "admin"
	TemplateCustomer = "customer"
)

// EmailTemplate is an admin editable subject/body pair for one form kind and role.
// Body and subject may contain {{placeholder}} tokens.
type EmailTemplate struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FormType     string    `gorm:"size:50;not null;uniqueIndex:idx_template_kind_role" json:"form_type"`
	TemplateType string    `gorm:"size:20;not null;uniqueIndex:idx_template_kind_role" json:"template_type"`
	Subject      string    `gorm:"size:255;not null" json:"subject"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name for EmailTemplate
func (EmailTemplate) TableName() string {
	return "email_templates"
}

// All returns every model managed by the schema bootstrap
func All() []interface{} {
	return []interface{}{
		&Submission{},
		&AdminUser{},
		&SEOMeta{},
		&EmailTemplate{},
	}
}
