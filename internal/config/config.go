package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "leaddesk-development-secret"

// SMTPConfig holds outbound mail settings
type SMTPConfig struct {
	Host      string
	Port      int
	Secure    bool
	User      string
	Password  string
	FromName  string
	FromEmail string
}

// Configured reports whether every credential required to attempt a send is present
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.User != "" && s.Password != ""
}

// AuthConfig holds admin token settings
type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// StorageConfig holds upload storage settings
type StorageConfig struct {
	Type        string // local, minio
	Dir         string
	MaxFileSize int64

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

// RecaptchaConfig holds server-side captcha verification settings
type RecaptchaConfig struct {
	Secret    string
	MinScore  float64
	VerifyURL string
}

// Enabled reports whether tokens must be verified
func (r RecaptchaConfig) Enabled() bool {
	return r.Secret != ""
}

// SiteConfig describes the public site for SEO defaults and email copy
type SiteConfig struct {
	URL  string
	Name string
}

// Config holds all application configuration.
// It is built once by Load and passed to the components that need it.
type Config struct {
	// Server configuration
	Port            string
	Env             string
	CORSOrigins     string
	StaticDir       string
	SubmitRateLimit int

	// Database configuration
	DBType            string // mysql, mariadb, postgres, sqlite, sqlite3, sqlserver
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBConnectionLimit int

	// Notification addresses
	AdminEmail     string
	DeveloperEmail string
	AdminBCC       []string

	SMTP      SMTPConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Recaptcha RecaptchaConfig
	Site      SiteConfig
}

// Load loads configuration from the environment, reading a .env file first when present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current process environment only
func FromEnv() (*Config, error) {
	siteName := getEnv("SITE_NAME", "Company")
	smtpUser := getEnv("SMTP_USER", "")
	adminEmail := getEnv("ADMIN_EMAIL", "")

	cfg := &Config{
		Port:            getEnv("PORT", "5000"),
		Env:             getEnv("APP_ENV", "development"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		StaticDir:       getEnv("STATIC_DIR", ""),
		SubmitRateLimit: getEnvAsInt("SUBMIT_RATE_LIMIT", 20),

		DBType:            strings.ToLower(getEnv("DB_TYPE", "mysql")),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBUser:            getEnv("DB_USER", "root"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "manufacturing_db"),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 10),

		AdminEmail:     adminEmail,
		DeveloperEmail: getEnv("DEVELOPER_EMAIL", adminEmail),
		AdminBCC:       getEnvAsSlice("ADMIN_BCC_EMAIL"),

		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", ""),
			Port:      getEnvAsInt("SMTP_PORT", 587),
			Secure:    getEnvAsBool("SMTP_SECURE", false),
			User:      smtpUser,
			Password:  getEnv("SMTP_PASS", ""),
			FromName:  getEnv("SMTP_FROM_NAME", siteName),
			FromEmail: getEnv("SMTP_FROM_EMAIL", smtpUser),
		},
		Auth: AuthConfig{
			Secret:   getEnv("JWT_SECRET", defaultJWTSecret),
			TokenTTL: time.Duration(getEnvAsInt("JWT_EXPIRES_HOURS", 24)) * time.Hour,
		},
		Storage: StorageConfig{
			Type:           strings.ToLower(getEnv("UPLOAD_STORE", "local")),
			Dir:            getEnv("UPLOAD_DIR", "./uploads"),
			MaxFileSize:    int64(getEnvAsInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
			MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
			MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
			MinIOBucket:    getEnv("MINIO_BUCKET", "leaddesk-uploads"),
			MinIOUseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		Recaptcha: RecaptchaConfig{
			Secret:    getEnv("RECAPTCHA_SECRET", ""),
			MinScore:  getEnvAsFloat("RECAPTCHA_MIN_SCORE", 0.5),
			VerifyURL: getEnv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
		},
		Site: SiteConfig{
			URL:  strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
			Name: siteName,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AlertEmail is the destination for operator alerts
func (c *Config) AlertEmail() string {
	if c.DeveloperEmail != "" {
		return c.DeveloperEmail
	}
	return c.AdminEmail
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.DBType {
	case "mysql", "mariadb", "postgres", "postgresql", "sqlite", "sqlite3", "sqlserver", "mssql":
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", c.DBType)
	}

	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	switch c.Storage.Type {
	case "local":
		if c.Storage.Dir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for the local upload store")
		}
	case "minio":
		if c.Storage.MinIOEndpoint == "" || c.Storage.MinIOBucket == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET are required for the minio upload store")
		}
	default:
		return fmt.Errorf("unsupported UPLOAD_STORE: %s", c.Storage.Type)
	}

	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	if c.IsProduction() && c.Auth.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice splits a comma-separated variable, dropping empty entries
func getEnvAsSlice(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
