// submission_store.go
//
// Lead capture, notification and admin backend for the leaddesk marketing site
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of leaddesk.
// leaddesk is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// leaddesk is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with leaddesk.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/models"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// List defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// sortable maps accepted sortBy values to columns. Anything else falls back to created_at.
var sortable = map[string]string{
	"id":         "id",
	"created_at": "created_at",
	"createdAt":  "created_at",
	"name":       "name",
	"email":      "email",
	"form_type":  "form_type",
	"formType":   "form_type",
}

// SubmissionQuery holds the admin list filters
type SubmissionQuery struct {
	Page       int
	Limit      int
	FormType   string
	Search     string
	DateFilter string // today, week, month
	SortBy     string
	SortOrder  string // asc, desc
}

// Pagination describes one page of results
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// SubmissionPage is one page of submissions
type SubmissionPage struct {
	Data       []models.Submission `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// SubmissionStats holds aggregate counts for the dashboard
type SubmissionStats struct {
	Total      int64            `json:"total"`
	Today      int64            `json:"today"`
	ThisWeek   int64            `json:"thisWeek"`
	ThisMonth  int64            `json:"thisMonth"`
	ByFormType map[string]int64 `json:"byFormType"`
}

// InitRetryInterval is how long a failed schema bootstrap is reported
// without being retried
const InitRetryInterval = 10 * time.Second

// SubmissionStore is the persistence gateway for submissions.
// Every error it returns is a *database.Error or ErrNotFound.
type SubmissionStore struct {
	db        *gorm.DB
	cfg       *config.Config
	now       func() time.Time
	bootstrap func(ctx context.Context) error

	inflight singleflight.Group

	mu       sync.Mutex
	ready    bool
	lastErr  error
	failedAt time.Time
}

// NewSubmissionStore creates the store; call Init (or let the first write do it) to create the schema
func NewSubmissionStore(db *gorm.DB, cfg *config.Config) *SubmissionStore {
	s := &SubmissionStore{db: db, cfg: cfg, now: time.Now}
	s.bootstrap = func(ctx context.Context) error {
		return database.Bootstrap(ctx, s.cfg, s.db)
	}
	return s
}

// Init creates the database and tables if absent. Success is remembered.
// Concurrent callers share one bootstrap attempt, and for InitRetryInterval
// after a failure the last error is returned without dialling again.
func (s *SubmissionStore) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.ready {
		s.mu.Unlock()
		return nil
	}
	if s.lastErr != nil && s.now().Sub(s.failedAt) < InitRetryInterval {
		err := s.lastErr
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	// the attempt runs on the first caller's context
	_, err, _ := s.inflight.Do("init", func() (interface{}, error) {
		err := s.bootstrap(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.lastErr, s.failedAt = err, s.now()
			return nil, err
		}
		s.ready, s.lastErr = true, nil
		return nil, nil
	})
	return err
}

// Ready reports whether Init has succeeded
func (s *SubmissionStore) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Create inserts a submission, initializing the schema first if needed
func (s *SubmissionStore) Create(ctx context.Context, sub *models.Submission) error {
	if err := s.Init(ctx); err != nil {
		return err
	}
	sub.ID = 0
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return database.Classify(err)
	}
	return nil
}

// List returns one filtered, sorted page of submissions
func (s *SubmissionStore) List(ctx context.Context, q SubmissionQuery) (*SubmissionPage, error) {
	q = normalizeQuery(q)

	base := s.filtered(ctx, q)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, database.Classify(err)
	}

	query := base.Session(&gorm.Session{})
	if database.IsMySQL(s.db) {
		query = query.Clauses(hints.New("MAX_EXECUTION_TIME(5000)"))
	}

	rows := []models.Submission{}
	err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortable[q.SortBy]}, Desc: q.SortOrder == "desc"}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: q.SortOrder == "desc"}).
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, database.Classify(err)
	}

	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))

	return &SubmissionPage{
		Data: rows,
		Pagination: Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: pages,
		},
	}, nil
}

func (s *SubmissionStore) filtered(ctx context.Context, q SubmissionQuery) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(&models.Submission{})

	if q.FormType != "" {
		tx = tx.Where("form_type = ?", q.FormType)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("(name LIKE ? OR email LIKE ? OR message LIKE ?)", like, like, like)
	}
	if since, ok := s.windowStart(q.DateFilter); ok {
		tx = tx.Where("created_at >= ?", since)
	}
	return tx
}

// windowStart maps a relative date filter to its lower bound
func (s *SubmissionStore) windowStart(filter string) (time.Time, bool) {
	now := s.now()
	switch filter {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	}
	return time.Time{}, false
}

func normalizeQuery(q SubmissionQuery) SubmissionQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	q.FormType = strings.TrimSpace(q.FormType)
	if q.FormType == "all" {
		q.FormType = ""
	}
	q.Search = strings.TrimSpace(q.Search)
	if _, ok := sortable[q.SortBy]; !ok {
		q.SortBy = "created_at"
	}
	if strings.EqualFold(q.SortOrder, "asc") {
		q.SortOrder = "asc"
	} else {
		q.SortOrder = "desc"
	}
	return q
}

// Get returns one submission by id
func (s *SubmissionStore) Get(ctx context.Context, id uint64) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.WithContext(ctx).First(&sub, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, database.Classify(err)
	}
	return &sub, nil
}

// Delete removes one submission by id. Uploaded files are kept.
func (s *SubmissionStore) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&models.Submission{}, id)
	if res.Error != nil {
		return database.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns aggregate counts
func (s *SubmissionStore) Stats(ctx context.Context) (*SubmissionStats, error) {
	stats := &SubmissionStats{ByFormType: map[string]int64{}}
	tx := s.db.WithContext(ctx).Model(&models.Submission{})

	if err := tx.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, database.Classify(err)
	}

	windows := []struct {
		filter string
		dest   *int64
	}{
		{"today", &stats.Today},
		{"week", &stats.ThisWeek},
		{"month", &stats.ThisMonth},
	}
	for _, w := range windows {
		since, _ := s.windowStart(w.filter)
		if err := tx.Session(&gorm.Session{}).Where("created_at >= ?", since).Count(w.dest).Error; err != nil {
			return nil, database.Classify(err)
		}
	}

	var groups []struct {
		FormType string
		Count    int64
	}
	err := tx.Session(&gorm.Session{}).
		Select("form_type, COUNT(*) AS count").
		Group("form_type").
		Scan(&groups).Error
	if err != nil {
		return nil, database.Classify(err)
	}
	for _, g := range groups {
		stats.ByFormType[g.FormType] = g.Count
	}

	return stats, nil
}
