package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "flights.db", cfg.Database.Path)
	assert.Equal(t, "LHR", cfg.Scheduling.HomeBase)
	assert.Equal(t, 300, cfg.Cache.AirportTTLSeconds)
	assert.Equal(t, "stderr", cfg.Log.Output)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dispatch.yaml")
	body := []byte("db:\n  path: ops.db\nscheduling:\n  home_base: lgw\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("DISPATCH_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ops.db", cfg.Database.Path)
	assert.Equal(t, "LGW", cfg.Scheduling.HomeBase)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "oracle"}}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadHomeBase(t *testing.T) {
	cfg := &Config{
		Database:   DatabaseConfig{Driver: DriverSQLite, Path: "x.db"},
		Scheduling: SchedulingConfig{HomeBase: "HEATHROW"},
	}
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	pg := DatabaseConfig{Driver: DriverPostgres, User: "u", Password: "p", Host: "h", Port: 5432, Name: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", pg.DSN())

	lite := DatabaseConfig{Driver: DriverSQLite, Path: "flights.db"}
	assert.Equal(t, "flights.db?_foreign_keys=on&_busy_timeout=5000", lite.DSN())
}
