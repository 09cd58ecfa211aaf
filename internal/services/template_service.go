package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/forgeline/leaddesk/data"
	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TemplateService stores admin editable email templates
type TemplateService struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewTemplateService creates a TemplateService
func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

// List returns every template, seeding the defaults first when the table is empty
func (s *TemplateService) List(ctx context.Context) ([]models.EmailTemplate, error) {
	if _, err := s.Seed(ctx); err != nil {
		return nil, err
	}

	rows := []models.EmailTemplate{}
	if err := s.db.WithContext(ctx).Order("form_type").Order("template_type").Find(&rows).Error; err != nil {
		return nil, database.Classify(err)
	}
	return rows, nil
}

// Seed inserts the default templates if the table is empty and returns how many were added
func (s *TemplateService) Seed(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.EmailTemplate{}).Count(&count).Error; err != nil {
		return 0, database.Classify(err)
	}
	if count > 0 {
		return 0, nil
	}

	defaults, err := data.DefaultTemplates()
	if err != nil {
		return 0, err
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error; err != nil {
		return 0, database.Classify(err)
	}

	log.Info("seeded default email templates", "count", len(defaults))
	return len(defaults), nil
}

// Find returns the template for a form kind and role
func (s *TemplateService) Find(ctx context.Context, formType, role string) (*models.EmailTemplate, error) {
	var tpl models.EmailTemplate
	err := s.db.WithContext(ctx).
		Where("form_type = ? AND template_type = ?", formType, role).
		First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, database.Classify(err)
	}
	return &tpl, nil
}

// Upsert updates the template with tpl.ID when set, otherwise the one for (form_type, template_type)
func (s *TemplateService) Upsert(ctx context.Context, tpl *models.EmailTemplate) (*models.EmailTemplate, error) {
	tpl.FormType = strings.TrimSpace(tpl.FormType)
	tpl.TemplateType = strings.TrimSpace(tpl.TemplateType)
	if strings.TrimSpace(tpl.Subject) == "" || strings.TrimSpace(tpl.Body) == "" {
		return nil, fmt.Errorf("%w: subject and body are required", ErrInvalid)
	}

	if tpl.ID != 0 {
		var current models.EmailTemplate
		err := s.db.WithContext(ctx).First(&current, tpl.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, database.Classify(err)
		}

		current.Subject = tpl.Subject
		current.Body = tpl.Body
		if err := s.db.WithContext(ctx).Save(&current).Error; err != nil {
			return nil, database.Classify(err)
		}
		return &current, nil
	}

	if tpl.FormType == "" {
		return nil, fmt.Errorf("%w: form_type is required", ErrInvalid)
	}
	if tpl.TemplateType != models.TemplateAdmin && tpl.TemplateType != models.TemplateCustomer {
		return nil, fmt.Errorf("%w: template_type must be admin or customer", ErrInvalid)
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "form_type"}, {Name: "template_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"subject", "body", "updated_at"}),
	}).Create(tpl).Error
	if err != nil {
		return nil, database.Classify(err)
	}

	return s.Find(ctx, tpl.FormType, tpl.TemplateType)
}
