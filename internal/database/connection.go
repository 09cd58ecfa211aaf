// connection.go
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

package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/powerman/structlog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	cgosqlite "gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = structlog.New(structlog.KeyUnit, "database")

// Connect opens the connection pool for the configured DB_TYPE.
// No connection is attempted here, so the service starts while the database is down.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBType {
	case "mysql", "mariadb":
		dialector = gormmysql.New(gormmysql.Config{
			DSN:                       mysqlConfig(cfg, cfg.DBName).FormatDSN(),
			SkipInitializeWithVersion: true,
			DefaultStringSize:         255,
		})

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
		)
		dialector = postgres.Open(dsn)

	case "sqlite":
		// For SQLite, DBName is the file path
		dialector = sqlite.Open(cfg.DBName)

	case "sqlite3":
		// cgo build of the same file format
		dialector = cgosqlite.Open(cfg.DBName)

	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		dialector = sqlserver.Open(dsn)

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}

	logLevel := logger.Warn
	if cfg.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logLevel),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	limit := cfg.DBConnectionLimit
	if limit < 1 {
		limit = 1
	}
	sqlDB.SetMaxOpenConns(limit)
	sqlDB.SetMaxIdleConns(max(1, limit/2))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("database pool ready", "type", cfg.DBType, "host", cfg.DBHost, "name", cfg.DBName, "max_open", limit)

	return db, nil
}

// mysqlConfig builds driver settings for the given schema; an empty dbName
// yields a server level connection.
func mysqlConfig(cfg *config.Config, dbName string) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPassword
	mc.Net = "tcp"
	mc.Addr = cfg.DBHost + ":" + cfg.DBPort
	mc.DBName = dbName
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	mc.Timeout = 5 * time.Second
	return mc
}

// IsMySQL reports whether the pool talks to MySQL or MariaDB
func IsMySQL(db *gorm.DB) bool {
	return db.Dialector.Name() == "mysql"
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isMySQLType(dbType string) bool {
	return strings.EqualFold(dbType, "mysql") || strings.EqualFold(dbType, "mariadb")
}
