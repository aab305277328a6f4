package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		DB:     DBConfig{Host: "localhost", Port: 5432, User: "fitforge", Password: "secret", Name: "fitforge"},
		Redis:  RedisConfig{Host: "localhost", Port: 6379},
		JWT: JWTConfig{
			AccessSecret:  "access-secret-32-chars-long!!!!!",
			RefreshSecret: "refresh-secret-32-chars-long!!!!",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
		},
		AI: AIConfig{
			BaseURL: "https://api.openai.com/v1",
			APIKey:  "sk-test",
			Model:   "gpt-4o-mini",
			Timeout: 45 * time.Second,
		},
		Quota: QuotaConfig{FreeRoutinesPerMonth: 3},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_ShortJWTSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.AccessSecret = "short"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "JWT_ACCESS_SECRET"))
}

func TestValidate_IdenticalSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.RefreshSecret = cfg.JWT.AccessSecret
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "must differ"))
}

func TestValidate_MissingAIKey(t *testing.T) {
	cfg := validConfig()
	cfg.AI.APIKey = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "AI_API_KEY"))
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.DB.Password = ""
	cfg.Server.Port = 0
	cfg.Quota.FreeRoutinesPerMonth = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "DB_PASSWORD"))
	assert.True(t, strings.Contains(err.Error(), "SERVER_PORT"))
	assert.True(t, strings.Contains(err.Error(), "QUOTA_FREE_ROUTINES_PER_MONTH"))
}
