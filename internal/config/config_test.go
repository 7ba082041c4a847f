package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB", "portfolio")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.WSAllowedOrigins)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.ExposeClientID)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.RedisURI)
}

func TestLoadParsesOriginLists(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://portfolio.example.com, https://www.portfolio.example.com ,")
	t.Setenv("WS_ALLOWED_ORIGINS", "https://portfolio.example.com")

	cfg := Load()
	assert.Equal(t, []string{"https://portfolio.example.com", "https://www.portfolio.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"https://portfolio.example.com"}, cfg.WSAllowedOrigins)
}

func TestLoadProductionAndToggles(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", " Production ")
	t.Setenv("EXPOSE_CLIENT_ID", "true")
	t.Setenv("PORT", "8080")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.ExposeClientID)
	assert.Equal(t, "8080", cfg.Port)
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "YES", " on "} {
		assert.True(t, parseBool(s), s)
	}
	for _, s := range []string{"", "0", "false", "off", "nope"} {
		assert.False(t, parseBool(s), s)
	}
}
