package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "memory", c.Store.Driver)
	assert.Equal(t, "http://127.0.0.1:8080", c.Client.BaseURL)
	assert.Equal(t, 120, c.JWT.AccessTokenTTLMin)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
app:
  http:
    port: 9090
admin:
  email: ops@lendsqr.com
store:
  driver: gorm
`), 0o600))
	t.Setenv("APP_JWT_SECRET", "s3")
	t.Setenv("APP_STORE_DRIVER", "memory")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.Equal(t, "ops@lendsqr.com", c.Admin.Email)
	assert.Equal(t, "s3", c.JWT.Secret)
	assert.Equal(t, "memory", c.Store.Driver)
}

func TestLoadBadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("app: [unclosed"), 0o600))
	_, err := Load(p)
	assert.Error(t, err)
}
