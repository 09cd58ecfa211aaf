package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/models"
	"github.com/powerman/structlog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var log = structlog.New(structlog.KeyUnit, "services")

// ErrInvalid marks input rejected by a service before it reaches the database
var ErrInvalid = errors.New("invalid input")

// SEOService stores per-page search and social metadata
type SEOService struct {
	db   *gorm.DB
	site config.SiteConfig
}

// NewSEOService creates an SEOService
func NewSEOService(db *gorm.DB, site config.SiteConfig) *SEOService {
	return &SEOService{db: db, site: site}
}

// NormalizePath gives every page path a leading slash and no trailing slash
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	path = "/" + strings.Trim(path, "/")
	return path
}

// Default synthesizes the site wide record for a path with no stored metadata
func (s *SEOService) Default(path string) *models.SEOMeta {
	path = NormalizePath(path)
	description := fmt.Sprintf("%s - precision manufacturing, quotes and certifications.", s.site.Name)
	return &models.SEOMeta{
		PagePath:      path,
		Title:         s.site.Name,
		Description:   description,
		OGTitle:       s.site.Name,
		OGDescription: description,
		CanonicalURL:  s.site.URL + path,
	}
}

// Lookup always returns a record: the stored one, or the default when absent or unreadable
func (s *SEOService) Lookup(ctx context.Context, path string) *models.SEOMeta {
	meta, err := s.Get(ctx, path)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn("seo lookup failed, serving default", "path", path, "err", err)
		}
		return s.Default(path)
	}
	return meta
}

// List returns every stored record ordered by path
func (s *SEOService) List(ctx context.Context) ([]models.SEOMeta, error) {
	rows := []models.SEOMeta{}
	if err := s.db.WithContext(ctx).Order("page_path").Find(&rows).Error; err != nil {
		return nil, database.Classify(err)
	}
	return rows, nil
}

// Get returns the stored record for a path
func (s *SEOService) Get(ctx context.Context, path string) (*models.SEOMeta, error) {
	var meta models.SEOMeta
	err := s.db.WithContext(ctx).Where("page_path = ?", NormalizePath(path)).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, database.Classify(err)
	}
	return &meta, nil
}

// Upsert creates or replaces the record for meta.PagePath
func (s *SEOService) Upsert(ctx context.Context, meta *models.SEOMeta) (*models.SEOMeta, error) {
	if strings.TrimSpace(meta.PagePath) == "" {
		return nil, fmt.Errorf("%w: page_path is required", ErrInvalid)
	}
	meta.ID = 0
	meta.PagePath = NormalizePath(meta.PagePath)

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "page_path"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "keywords", "og_title", "og_description", "og_image", "canonical_url", "updated_at",
		}),
	}).Create(meta).Error
	if err != nil {
		return nil, database.Classify(err)
	}

	return s.Get(ctx, meta.PagePath)
}
