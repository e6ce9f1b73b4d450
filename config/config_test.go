package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: postgres
  dsn: host=db
jwt:
  secret: s3cret
  access_ttl: 15m
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DRINKLOG_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=db", cfg.Database.DSN)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"@student.liu.se"}, cfg.Policy.EmailSuffixes)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Driver: "mysql"},
		JWT:      JWTConfig{Secret: "x", AccessTTL: time.Minute},
		Policy:   PolicyConfig{EmailSuffixes: []string{"@x"}},
	}
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = "sqlite"
	assert.NoError(t, cfg.Validate())

	cfg.JWT.Secret = ""
	assert.Error(t, cfg.Validate())
}
