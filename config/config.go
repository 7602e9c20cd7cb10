package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrorMode selects how component failures are reported over HTTP
type ErrorMode string

const (
	// ErrorModeLegacy answers every failure with 200 and an {"error": ...} body
	ErrorModeLegacy ErrorMode = "legacy"
	// ErrorModeStatus keeps the body shape but sets a matching status code
	ErrorModeStatus ErrorMode = "status"
)

const (
	defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"
	defaultSecrets   = "/run/secrets"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string

	// Model provider configuration
	OpenAIAPIKey  string
	OpenAIAPIURL  string
	OpenAITimeout time.Duration
	VisionModel   string
	RecipeModel   string

	// Generation parameters
	VisionMaxTokens   int
	RecipeMaxTokens   int
	RecipeTemperature float64

	ErrorMode ErrorMode
	LogLevel  string
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig creates a new Config from defaults, an optional .env file and the process environment
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	v := newViper(env)

	if err := readEnvFile(v); err != nil {
		return nil, err
	}

	apiKey, err := readAPIKey(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load API key: %w", err)
	}

	cfg := &Config{
		Environment:       env,
		ServerHost:        v.GetString("SERVER_HOST"),
		ServerPort:        v.GetString("SERVER_PORT"),
		OpenAIAPIKey:      apiKey,
		OpenAIAPIURL:      v.GetString("OPENAI_API_URL"),
		OpenAITimeout:     v.GetDuration("OPENAI_TIMEOUT"),
		VisionModel:       v.GetString("OPENAI_VISION_MODEL"),
		RecipeModel:       v.GetString("OPENAI_RECIPE_MODEL"),
		VisionMaxTokens:   v.GetInt("VISION_MAX_TOKENS"),
		RecipeMaxTokens:   v.GetInt("RECIPE_MAX_TOKENS"),
		RecipeTemperature: v.GetFloat64("RECIPE_TEMPERATURE"),
		ErrorMode:         ErrorMode(strings.ToLower(v.GetString("ERROR_MODE"))),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newViper(env Environment) *viper.Viper {
	v := viper.New()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("OPENAI_API_URL", defaultOpenAIURL)
	v.SetDefault("OPENAI_TIMEOUT", "0s")
	v.SetDefault("OPENAI_VISION_MODEL", "gpt-4o")
	v.SetDefault("OPENAI_RECIPE_MODEL", "gpt-4.1-mini")
	v.SetDefault("VISION_MAX_TOKENS", 300)
	v.SetDefault("RECIPE_MAX_TOKENS", 1000)
	v.SetDefault("RECIPE_TEMPERATURE", 0.7)
	v.SetDefault("ERROR_MODE", string(ErrorModeLegacy))
	if env.IsDevelopment() {
		v.SetDefault("LOG_LEVEL", "debug")
	} else {
		v.SetDefault("LOG_LEVEL", "info")
	}

	v.AutomaticEnv()
	return v
}

// readEnvFile merges a dotenv file into v when one exists. The process environment still wins.
func readEnvFile(v *viper.Viper) error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return nil
}

// readAPIKey resolves the provider key from the environment, a key file or a Docker secret
func readAPIKey(v *viper.Viper) (string, error) {
	if key := strings.TrimSpace(v.GetString("OPENAI_API_KEY")); key != "" {
		return key, nil
	}

	if keyFile := v.GetString("OPENAI_API_KEY_FILE"); keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read API key file: %w", err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("API key file is empty")
		}
		return key, nil
	}

	return readSecret("openai_api_key"), nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecrets
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
