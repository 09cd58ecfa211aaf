package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "sales@example.com")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Expected default port 5000, got %s", cfg.Port)
	}
	if cfg.DBType != "mysql" || cfg.DBName != "manufacturing_db" {
		t.Errorf("Unexpected database defaults: %s %s", cfg.DBType, cfg.DBName)
	}
	if cfg.Storage.MaxFileSize != 5*1024*1024 {
		t.Errorf("Expected 5MiB upload limit, got %d", cfg.Storage.MaxFileSize)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Expected 24h token ttl, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.SMTP.Configured() {
		t.Error("SMTP should not be configured without host and credentials")
	}
	if cfg.Recaptcha.Enabled() {
		t.Error("Recaptcha should be disabled without a secret")
	}
	if got := cfg.AlertEmail(); got != "sales@example.com" {
		t.Errorf("Expected alert email to fall back to admin email, got %s", got)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_TYPE", "SQLite")
	t.Setenv("DB_NAME", "leads.db")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_SECURE", "true")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("ADMIN_EMAIL", "sales@example.com")
	t.Setenv("DEVELOPER_EMAIL", "dev@example.com")
	t.Setenv("ADMIN_BCC_EMAIL", "a@example.com, ,b@example.com")
	t.Setenv("SITE_URL", "https://example.com/")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Port != "8080" || cfg.DBType != "sqlite" || cfg.DBName != "leads.db" {
		t.Errorf("Unexpected server/database config: %+v", cfg)
	}
	if !cfg.SMTP.Configured() || cfg.SMTP.Port != 465 || !cfg.SMTP.Secure {
		t.Errorf("Unexpected SMTP config: %+v", cfg.SMTP)
	}
	if cfg.SMTP.FromEmail != "mailer@example.com" {
		t.Errorf("Expected from address to default to SMTP_USER, got %s", cfg.SMTP.FromEmail)
	}
	if cfg.AlertEmail() != "dev@example.com" {
		t.Errorf("Expected developer alert address, got %s", cfg.AlertEmail())
	}
	if len(cfg.AdminBCC) != 2 || cfg.AdminBCC[1] != "b@example.com" {
		t.Errorf("Unexpected bcc list: %v", cfg.AdminBCC)
	}
	if cfg.Site.URL != "https://example.com" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.Site.URL)
	}
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown db type", map[string]string{"DB_TYPE": "oracle"}},
		{"unknown upload store", map[string]string{"UPLOAD_STORE": "ftp"}},
		{"minio without endpoint", map[string]string{"UPLOAD_STORE": "minio"}},
		{"production with default secret", map[string]string{"APP_ENV": "production"}},
		{"non-positive upload limit", map[string]string{"MAX_UPLOAD_BYTES": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := FromEnv(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}
