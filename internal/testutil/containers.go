package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/forgeline/leaddesk/internal/config"
	"github.com/powerman/structlog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var log = structlog.New(structlog.KeyUnit, "testutil")

// Container defaults, overridable from the environment
const (
	defaultMySQLImage   = "mysql:8.4"
	defaultMailpitImage = "axllent/mailpit:v1.21"
	mysqlRootPassword   = "leaddesk-root"
	mysqlDatabase       = "leaddesk_test"
	smtpUser            = "leaddesk"
	smtpPassword        = "leaddesk-smtp"
)

// Containers is a running MySQL server plus a Mailpit SMTP sink
type Containers struct {
	MySQL   testcontainers.Container
	Mailpit testcontainers.Container

	DBHost   string
	DBPort   string
	SMTPHost string
	SMTPPort int
	// MailpitURL is the web UI and REST API of the sink
	MailpitURL string
}

// StartContainers starts the backing services. Mailpit is skipped when withMail is false.
// On error every container already started is terminated.
func StartContainers(ctx context.Context, withMail bool) (*Containers, error) {
	tc := &Containers{}

	dbPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, err
	}
	tc.MySQL, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("DB_IMAGE", defaultMySQLImage),
			ExposedPorts: []string{string(dbPort)},
			// no MYSQL_DATABASE: the service must create its own schema
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": mysqlRootPassword,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("ready for connections").WithOccurrence(2),
				wait.ForListeningPort(dbPort),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start mysql: %w", err)
	}

	if tc.DBHost, err = tc.MySQL.Host(ctx); err != nil {
		tc.Terminate(ctx)
		return nil, err
	}
	mapped, err := tc.MySQL.MappedPort(ctx, dbPort)
	if err != nil {
		tc.Terminate(ctx)
		return nil, err
	}
	tc.DBPort = mapped.Port()
	log.Info("mysql container ready", "host", tc.DBHost, "port", tc.DBPort)

	if !withMail {
		return tc, nil
	}

	smtpPort, _ := nat.NewPort("tcp", "1025")
	httpPort, _ := nat.NewPort("tcp", "8025")
	tc.Mailpit, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("MAILPIT_IMAGE", defaultMailpitImage),
			ExposedPorts: []string{string(smtpPort), string(httpPort)},
			Env: map[string]string{
				"MP_SMTP_AUTH_ACCEPT_ANY":     "1",
				"MP_SMTP_AUTH_ALLOW_INSECURE": "1",
			},
			WaitingFor: wait.ForListeningPort(smtpPort).WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		tc.Terminate(ctx)
		return nil, fmt.Errorf("start mailpit: %w", err)
	}

	if tc.SMTPHost, err = tc.Mailpit.Host(ctx); err != nil {
		tc.Terminate(ctx)
		return nil, err
	}
	mappedSMTP, err := tc.Mailpit.MappedPort(ctx, smtpPort)
	if err != nil {
		tc.Terminate(ctx)
		return nil, err
	}
	if tc.SMTPPort, err = strconv.Atoi(mappedSMTP.Port()); err != nil {
		tc.Terminate(ctx)
		return nil, err
	}
	mappedHTTP, err := tc.Mailpit.MappedPort(ctx, httpPort)
	if err != nil {
		tc.Terminate(ctx)
		return nil, err
	}
	tc.MailpitURL = fmt.Sprintf("http://%s:%s", tc.SMTPHost, mappedHTTP.Port())
	log.Info("mailpit container ready", "smtp", fmt.Sprintf("%s:%d", tc.SMTPHost, tc.SMTPPort), "ui", tc.MailpitURL)

	return tc, nil
}

// Config returns a service configuration pointing at the containers
func (tc *Containers) Config() *config.Config {
	cfg := &config.Config{
		Port:              "5000",
		Env:               "test",
		DBType:            "mysql",
		DBHost:            tc.DBHost,
		DBPort:            tc.DBPort,
		DBUser:            "root",
		DBPassword:        mysqlRootPassword,
		DBName:            mysqlDatabase,
		DBConnectionLimit: 5,
		AdminEmail:        "operator@example.com",
		Auth:              config.AuthConfig{Secret: "integration-secret", TokenTTL: time.Hour},
		Storage:           config.StorageConfig{Type: "local", Dir: os.TempDir(), MaxFileSize: 5 * 1024 * 1024},
		Site:              config.SiteConfig{URL: "http://localhost:3000", Name: "Company"},
	}
	if tc.Mailpit != nil {
		cfg.SMTP = config.SMTPConfig{
			Host:      tc.SMTPHost,
			Port:      tc.SMTPPort,
			User:      smtpUser,
			Password:  smtpPassword,
			FromName:  "Company",
			FromEmail: "noreply@example.com",
		}
	}
	return cfg
}

// Env returns the environment variables a separately started server needs
func (tc *Containers) Env() map[string]string {
	cfg := tc.Config()
	env := map[string]string{
		"DB_TYPE":     cfg.DBType,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"ADMIN_EMAIL": cfg.AdminEmail,
	}
	if tc.Mailpit != nil {
		env["SMTP_HOST"] = cfg.SMTP.Host
		env["SMTP_PORT"] = strconv.Itoa(cfg.SMTP.Port)
		env["SMTP_USER"] = cfg.SMTP.User
		env["SMTP_PASS"] = cfg.SMTP.Password
		env["SMTP_FROM_EMAIL"] = cfg.SMTP.FromEmail
	}
	return env
}

// Terminate stops every started container; failures are logged
func (tc *Containers) Terminate(ctx context.Context) {
	var errs []error
	if tc.Mailpit != nil {
		if err := tc.Mailpit.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mailpit: %w", err))
		}
	}
	if tc.MySQL != nil {
		if err := tc.MySQL.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mysql: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		log.PrintErr("failed to terminate containers", "err", err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
