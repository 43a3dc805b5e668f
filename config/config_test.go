package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("MYSQL_USER", "cancionero")
	t.Setenv("MYSQL_PASSWORD", "secreta")
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3310")
	t.Setenv("MYSQL_DB", "musica_test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "2")

	cfg := Load()

	assert.Equal(t, "cancionero", cfg.DBUser)
	assert.Equal(t, "secreta", cfg.DBPassword)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "3310", cfg.DBPort)
	assert.Equal(t, "musica_test", cfg.DBName)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MYSQL_PORT", "")

	cfg := Load()

	// An empty value counts as set; only a missing variable falls back.
	assert.Equal(t, "", cfg.DBPort)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 60, cfg.CacheTTLSeconds)
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("REDIS_DB", "no-un-numero")

	cfg := Load()
	assert.Equal(t, 0, cfg.RedisDB)
}
