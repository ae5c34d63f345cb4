package config

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("APP_PORT", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("SESSION_SECRET_KEY", "session-secret")
	t.Setenv("SESSION_EXPIRATION_TIME", "")
	t.Setenv("SESSION_COOKIE_SECURE", "")
	t.Setenv("SESSION_PRUNE_INTERVAL", "")
	t.Setenv("DB_MAX_CONNS", "")
	t.Setenv("DB_MIN_CONNS", "")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "http://localhost:3000", cfg.App.FrontendURL)
	assert.Equal(t, 24*time.Hour, cfg.Session.Expiration)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, time.Hour, cfg.Session.PruneInterval)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, int32(5), cfg.Database.MinConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxConnIdleTime)
	assert.Equal(t, database.PoolConfig{MaxConns: 25, MinConns: 5, MaxConnIdleTime: 30 * time.Minute}, cfg.PoolConfig())
}

func TestLoad_PoolSizing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("DB_MIN_CONNS", "2")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, database.PoolConfig{MaxConns: 10, MinConns: 2, MaxConnIdleTime: 5 * time.Minute}, cfg.PoolConfig())
}

func TestLoad_SQLiteWithoutDatabasePassword(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("SQLITE_PATH", "/tmp/ers-test.db")
	t.Setenv("SESSION_EXPIRATION_TIME", "30m")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ers-test.db", cfg.Database.SQLitePath)
	assert.Equal(t, 30*time.Minute, cfg.Session.Expiration)
	assert.True(t, cfg.Session.CookieSecure)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"invalid port", "APP_PORT", "eighty"},
		{"invalid db port", "DB_PORT", "x"},
		{"invalid expiration", "SESSION_EXPIRATION_TIME", "tomorrow"},
		{"invalid cookie flag", "SESSION_COOKIE_SECURE", "maybe"},
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"missing secret", "SESSION_SECRET_KEY", ""},
		{"invalid max conns", "DB_MAX_CONNS", "many"},
		{"zero max conns", "DB_MAX_CONNS", "0"},
		{"min conns above max", "DB_MIN_CONNS", "30"},
		{"invalid idle time", "DB_MAX_CONN_IDLE_TIME", "soon"},
		{"invalid prune interval", "SESSION_PRUNE_INTERVAL", "hourly"},
		{"non-positive prune interval", "SESSION_PRUNE_INTERVAL", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "ers",
		Password: "pw",
		Name:     "ers",
		SSLMode:  "disable",
	}}

	assert.Equal(t, "postgres://ers:pw@db:5433/ers?sslmode=disable", cfg.DatabaseURL())
}
