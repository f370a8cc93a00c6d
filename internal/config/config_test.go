package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/gihanotis"
admin:
  username: admin
  password: secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, int64(5), cfg.Server.RequestTimeoutSeconds)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
	assert.Equal(t, int64(8), cfg.Admin.SessionTTLHours)
	assert.False(t, cfg.IsProduction())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidateRequiresAdminCredentials(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/gihanotis"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	path := writeConfig(t, `
admin:
  username: admin
  password: secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsDevSecretInProduction(t *testing.T) {
	path := writeConfig(t, `
server:
  env: production
database:
  url: "postgres://localhost/gihanotis"
admin:
  username: admin
  password: secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Error(t, cfg.Validate())
}

func TestValidateAcceptsExplicitSecretInProduction(t *testing.T) {
	path := writeConfig(t, `
server:
  env: production
database:
  url: "postgres://localhost/gihanotis"
admin:
  username: admin
  password: secret
  session_secret: strong-production-secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
