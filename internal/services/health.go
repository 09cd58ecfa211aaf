package services

import (
	"context"
	"fmt"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/utils"
	"gorm.io/gorm"
)

// Health states
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	SMTP         string            `json:"smtp"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck pings the database and the SMTP relay. A database failure is
// unhealthy; an unreachable mail relay only degrades the service because
// submissions are still stored.
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  StatusHealthy,
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = StatusUnhealthy
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Warn("health check failed", "check", "database", "err", err)
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbErr := database.Classify(err).(*database.Error)
		result.Status = StatusUnhealthy
		result.Database = "unreachable"
		result.Details["database_reason"] = string(dbErr.Reason)
		result.ErrorMessage = "Database ping failed: " + dbErr.Hint()
		log.Warn("health check failed", "check", "database ping", "err", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBName
	}

	// Check SMTP relay reachability
	switch {
	case !cfg.SMTP.Configured():
		result.SMTP = "not_configured"
	default:
		if err := utils.PingSMTP(cfg.SMTP.Host, cfg.SMTP.Port); err != nil {
			if result.Status == StatusHealthy {
				result.Status = StatusDegraded
			}
			result.SMTP = "unreachable"
			result.Details["smtp_error"] = err.Error()
			log.Warn("health check failed", "check", "smtp", "err", err)
		} else {
			result.SMTP = "ok"
			result.Details["smtp_host"] = cfg.SMTP.Host
		}
	}

	if result.Status == StatusHealthy {
		log.Debug("health check passed")
	}

	return result
}
