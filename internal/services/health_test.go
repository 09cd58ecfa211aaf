package services

import (
	"context"
	"net"
	"testing"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck_NoSMTP(t *testing.T) {
	cfg := &config.Config{DBType: "sqlite", DBName: ":memory:"}

	result := HealthCheck(context.Background(), cfg, testutil.NewDB(t))
	assert.Equal(t, StatusHealthy, result.Status)
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "not_configured", result.SMTP)
	assert.Empty(t, result.ErrorMessage)
}

func TestHealthCheck_SMTP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port

	cfg := &config.Config{
		DBType: "sqlite",
		DBName: ":memory:",
		SMTP:   config.SMTPConfig{Host: "127.0.0.1", Port: port, User: "u", Password: "p"},
	}
	db := testutil.NewDB(t)

	result := HealthCheck(context.Background(), cfg, db)
	assert.Equal(t, StatusHealthy, result.Status)
	assert.Equal(t, "ok", result.SMTP)

	require.NoError(t, ln.Close())
	result = HealthCheck(context.Background(), cfg, db)
	assert.Equal(t, StatusDegraded, result.Status)
	assert.Equal(t, "unreachable", result.SMTP)
	assert.Equal(t, "ok", result.Database)
}

func TestHealthCheck_DatabaseClosed(t *testing.T) {
	cfg := &config.Config{DBType: "sqlite", DBName: ":memory:"}
	db := testutil.NewDB(t)
	require.NoError(t, database.Close(db))

	result := HealthCheck(context.Background(), cfg, db)
	assert.Equal(t, StatusUnhealthy, result.Status)
	assert.Equal(t, "unreachable", result.Database)
	assert.NotEmpty(t, result.ErrorMessage)
}
