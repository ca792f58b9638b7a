package config

import "strings"

// PlaceholderGeminiAPIKey is the value shipped in example configuration. It is
// treated the same as an absent key.
const PlaceholderGeminiAPIKey = "your_gemini_api_key_here"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=300"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string `mapstructure:"url"               validate:"required,url"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"    validate:"gte=1"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// LLMConfig contains the language model integration settings. An empty
// GeminiAPIKey is valid: the service then runs on catalog content only.
type LLMConfig struct {
	GeminiAPIKey          string `mapstructure:"gemini_api_key"`
	ModelName             string `mapstructure:"model_name"              validate:"required"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gte=1,lte=600"`
}

// ProviderAvailable reports whether a usable credential is configured.
func (c LLMConfig) ProviderAvailable() bool {
	key := strings.TrimSpace(c.GeminiAPIKey)
	return key != "" && key != PlaceholderGeminiAPIKey
}
