package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/forgeline/leaddesk/internal/config"
	"gorm.io/gorm"
)

var dbNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// EnsureDatabase creates the configured MySQL schema if it does not exist.
// Other database types are provisioned externally and this is a no-op.
func EnsureDatabase(ctx context.Context, cfg *config.Config) error {
	if !isMySQLType(cfg.DBType) {
		return nil
	}

	if !dbNamePattern.MatchString(cfg.DBName) {
		return fmt.Errorf("invalid database name %q", cfg.DBName)
	}

	// Identifiers cannot be bound as parameters; the name is validated above.
	server, err := sql.Open("mysql", mysqlConfig(cfg, "").FormatDSN())
	if err != nil {
		return err
	}
	defer log.ErrIfFail(server.Close)

	stmt := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", cfg.DBName)
	if _, err := server.ExecContext(ctx, stmt); err != nil {
		return err
	}

	return nil
}

// Bootstrap creates the database (MySQL only) and every table. It is idempotent.
func Bootstrap(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if err := EnsureDatabase(ctx, cfg); err != nil {
		return Classify(err)
	}
	if err := AutoMigrate(db.WithContext(ctx)); err != nil {
		return Classify(err)
	}
	log.Info("schema ready", "name", cfg.DBName)
	return nil
}
