package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/models"
)

func TestConnectSQLiteAndBootstrap(t *testing.T) {
	cfg := &config.Config{
		DBType:            "sqlite",
		DBName:            filepath.Join(t.TempDir(), "leads.db"),
		DBConnectionLimit: 2,
	}

	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer Close(db)

	// twice, to prove idempotence
	for i := 0; i < 2; i++ {
		if err := Bootstrap(context.Background(), cfg, db); err != nil {
			t.Fatalf("Bootstrap #%d failed: %v", i+1, err)
		}
	}

	for _, table := range []string{"form_submissions", "admin_users", "seo_metadata", "email_templates"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s", table)
		}
	}

	if IsMySQL(db) {
		t.Error("sqlite pool reported as mysql")
	}

	sub := models.Submission{FormType: "quote", Name: "Jane"}
	if err := db.Create(&sub).Error; err != nil || sub.ID == 0 {
		t.Fatalf("Insert failed: %v", err)
	}
}

func TestConnectUnsupported(t *testing.T) {
	if _, err := Connect(&config.Config{DBType: "oracle"}); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestEnsureDatabaseRejectsBadNames(t *testing.T) {
	cfg := &config.Config{DBType: "mysql", DBName: "leads`; DROP"}
	err := EnsureDatabase(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "invalid database name") {
		t.Errorf("Expected invalid name error, got %v", err)
	}

	// non-mysql types are a no-op
	if err := EnsureDatabase(context.Background(), &config.Config{DBType: "postgres", DBName: "x y"}); err != nil {
		t.Errorf("Expected no-op for postgres, got %v", err)
	}
}

func TestMySQLConfigDSN(t *testing.T) {
	cfg := &config.Config{DBUser: "app", DBPassword: "p@ss", DBHost: "db", DBPort: "3306"}
	dsn := mysqlConfig(cfg, "leads").FormatDSN()
	if !strings.HasPrefix(dsn, "app:p@ss@tcp(db:3306)/leads?") {
		t.Errorf("Unexpected DSN %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("Expected parseTime in DSN %s", dsn)
	}

	if server := mysqlConfig(cfg, "").FormatDSN(); !strings.Contains(server, "tcp(db:3306)/?") {
		t.Errorf("Expected server level DSN, got %s", server)
	}
}
