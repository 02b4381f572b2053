package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sweetshop-api/pkg/config"
)

func TestLoad_SinJWTSecret_RetornaError(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingJWTSecret)
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("JWT_EXPIRATION_MINUTES", "")
	t.Setenv("CATALOG_WRITES_ADMIN_ONLY", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 1440, cfg.JWT.Expiration, "el token dura un día por defecto")
	assert.False(t, cfg.Auth.CatalogWritesAdminOnly)
	assert.False(t, cfg.Admin.Enabled())
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("JWT_EXPIRATION_MINUTES", "30")
	t.Setenv("HTTP_HOST", "127.0.0.1")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CATALOG_WRITES_ADMIN_ONLY", "true")
	t.Setenv("ADMIN_EMAIL", "admin@sweets.test")
	t.Setenv("ADMIN_PASSWORD", "admin123")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.JWT.Expiration)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Auth.CatalogWritesAdminOnly)
	assert.True(t, cfg.Admin.Enabled())
}

func TestLoad_ExpiracionNoPositiva_RetornaError(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("JWT_EXPIRATION_MINUTES", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "sweets", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/sweets?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}
