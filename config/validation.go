package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a Config
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks the configuration and reports all problems at once
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.OpenAIAPIKey == "" {
		errs = append(errs, ValidationError{"OPENAI_API_KEY", "OPENAI_API_KEY, OPENAI_API_KEY_FILE or the openai_api_key secret must be set"})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if u, err := url.Parse(cfg.OpenAIAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"OPENAI_API_URL", fmt.Sprintf("invalid URL %q", cfg.OpenAIAPIURL)})
	}

	if cfg.VisionModel == "" {
		errs = append(errs, ValidationError{"OPENAI_VISION_MODEL", "must not be empty"})
	}
	if cfg.RecipeModel == "" {
		errs = append(errs, ValidationError{"OPENAI_RECIPE_MODEL", "must not be empty"})
	}

	if cfg.VisionMaxTokens <= 0 {
		errs = append(errs, ValidationError{"VISION_MAX_TOKENS", "must be positive"})
	}
	if cfg.RecipeMaxTokens <= 0 {
		errs = append(errs, ValidationError{"RECIPE_MAX_TOKENS", "must be positive"})
	}
	if cfg.RecipeTemperature < 0 || cfg.RecipeTemperature > 2 {
		errs = append(errs, ValidationError{"RECIPE_TEMPERATURE", "must be between 0 and 2"})
	}
	if cfg.OpenAITimeout < 0 {
		errs = append(errs, ValidationError{"OPENAI_TIMEOUT", "must not be negative"})
	}

	switch cfg.ErrorMode {
	case ErrorModeLegacy, ErrorModeStatus:
	default:
		errs = append(errs, ValidationError{"ERROR_MODE", fmt.Sprintf("unknown mode %q", cfg.ErrorMode)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
