package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8081
  mode: debug
database:
  driver: sqlite
  path: /tmp/payroll-test.db
jwt:
  secret: file-secret
  expire_minutes: 30
security:
  bcrypt_cost: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	assert.Equal(t, 4, cfg.Security.BcryptCost)
	assert.Equal(t, ":8081", cfg.Addr())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_TOKEN_SECRET", "env-secret")
	path := writeConfig(t, "{}\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "datacentricproject", cfg.Database.Name)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
	assert.Equal(t, 5*time.Second, cfg.Database.Timeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: mongo
  uri: mongodb://file-host:27017
jwt:
  secret: file-secret
`)
	t.Setenv("DB_CONNECTION_STRING", "mongodb://env-host:27017")
	t.Setenv("JWT_TOKEN_SECRET", "env-secret")
	t.Setenv("PAYROLL_SERVER_PORT", "9000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://env-host:27017", cfg.Database.URI)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_TOKEN_SECRET", "")
	t.Setenv("PAYROLL_JWT_SECRET", "")
	path := writeConfig(t, "server:\n  port: 4000\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("JWT_TOKEN_SECRET", "env-secret")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_NoDefaultFile(t *testing.T) {
	t.Setenv("JWT_TOKEN_SECRET", "env-secret")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database: DatabaseConfig{Driver: DriverSQLite, Path: "x.db"},
			JWT:      JWTConfig{Secret: "s", ExpireMinutes: 60},
			Security: SecurityConfig{BcryptCost: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "redis" }, wantErr: true},
		{name: "mongo without uri", mutate: func(c *Config) { c.Database.Driver = DriverMongo }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "cost too low", mutate: func(c *Config) { c.Security.BcryptCost = 1 }, wantErr: true},
		{name: "cost too high", mutate: func(c *Config) { c.Security.BcryptCost = 40 }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.JWT.ExpireMinutes = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
