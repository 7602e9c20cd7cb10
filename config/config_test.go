package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable LoadConfig reads so the host environment cannot leak in.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "SERVER_HOST", "SERVER_PORT",
		"OPENAI_API_KEY", "OPENAI_API_KEY_FILE", "OPENAI_API_URL", "OPENAI_TIMEOUT",
		"OPENAI_VISION_MODEL", "OPENAI_RECIPE_MODEL",
		"VISION_MAX_TOKENS", "RECIPE_MAX_TOKENS", "RECIPE_TEMPERATURE",
		"ERROR_MODE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.OpenAIAPIURL)
	assert.Equal(t, time.Duration(0), cfg.OpenAITimeout)
	assert.Equal(t, "gpt-4o", cfg.VisionModel)
	assert.Equal(t, "gpt-4.1-mini", cfg.RecipeModel)
	assert.Equal(t, 300, cfg.VisionMaxTokens)
	assert.Equal(t, 1000, cfg.RecipeMaxTokens)
	assert.InDelta(t, 0.7, cfg.RecipeTemperature, 1e-9)
	assert.Equal(t, ErrorModeLegacy, cfg.ErrorMode)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")
	t.Setenv("OPENAI_API_KEY", "sk-prod")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OPENAI_TIMEOUT", "45s")
	t.Setenv("RECIPE_TEMPERATURE", "1.1")
	t.Setenv("ERROR_MODE", "STATUS")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 45*time.Second, cfg.OpenAITimeout)
	assert.InDelta(t, 1.1, cfg.RecipeTemperature, 1e-9)
	assert.Equal(t, ErrorModeStatus, cfg.ErrorMode)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigAPIKeySources(t *testing.T) {
	t.Run("should read key file", func(t *testing.T) {
		isolate(t)
		keyFile := filepath.Join(t.TempDir(), "key")
		require.NoError(t, os.WriteFile(keyFile, []byte("  sk-file\n"), 0o600))
		t.Setenv("OPENAI_API_KEY_FILE", keyFile)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "sk-file", cfg.OpenAIAPIKey)
	})

	t.Run("should fail on empty key file", func(t *testing.T) {
		isolate(t)
		keyFile := filepath.Join(t.TempDir(), "key")
		require.NoError(t, os.WriteFile(keyFile, []byte("\n"), 0o600))
		t.Setenv("OPENAI_API_KEY_FILE", keyFile)

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key file is empty")
	})

	t.Run("should read docker secret", func(t *testing.T) {
		isolate(t)
		secrets := os.Getenv("SECRETS_DIR")
		require.NoError(t, os.WriteFile(filepath.Join(secrets, "openai_api_key"), []byte("sk-secret"), 0o600))

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "sk-secret", cfg.OpenAIAPIKey)
	})

	t.Run("should read env file", func(t *testing.T) {
		isolate(t)
		envFile := filepath.Join(t.TempDir(), "app.env")
		require.NoError(t, os.WriteFile(envFile, []byte("OPENAI_API_KEY=sk-dotenv\nSERVER_PORT=8123\n"), 0o600))
		t.Setenv("ENV_FILE", envFile)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "sk-dotenv", cfg.OpenAIAPIKey)
		assert.Equal(t, "8123", cfg.ServerPort)
	})

	t.Run("should fail without any key", func(t *testing.T) {
		isolate(t)

		cfg, err := LoadConfig()
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerPort:        "8000",
			OpenAIAPIKey:      "sk",
			OpenAIAPIURL:      "https://api.openai.com/v1/chat/completions",
			VisionModel:       "gpt-4o",
			RecipeModel:       "gpt-4.1-mini",
			VisionMaxTokens:   300,
			RecipeMaxTokens:   1000,
			RecipeTemperature: 0.7,
			ErrorMode:         ErrorModeLegacy,
		}
	}

	assert.NoError(t, ValidateConfig(valid()))

	tests := []struct {
		name  string
		field string
		apply func(*Config)
	}{
		{"bad port", "SERVER_PORT", func(c *Config) { c.ServerPort = "http" }},
		{"bad url", "OPENAI_API_URL", func(c *Config) { c.OpenAIAPIURL = "not a url" }},
		{"zero tokens", "RECIPE_MAX_TOKENS", func(c *Config) { c.RecipeMaxTokens = 0 }},
		{"hot temperature", "RECIPE_TEMPERATURE", func(c *Config) { c.RecipeTemperature = 3 }},
		{"unknown error mode", "ERROR_MODE", func(c *Config) { c.ErrorMode = "loud" }},
		{"negative timeout", "OPENAI_TIMEOUT", func(c *Config) { c.OpenAITimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.apply(cfg)

			err := ValidateConfig(cfg)
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}
