package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables read by Load, e.g.
// AMORA_SERVER_PORT or AMORA_ENGINE_GEMINI_API_KEY.
const envPrefix = "AMORA"

// Load reads configuration from environment variables and an optional
// config file (config.yaml in the working directory). Environment
// variables take precedence over file values, which take precedence over
// defaults. Returns a populated Config or an error if loading or
// validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults keep a bare environment runnable with the lua engine.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("engine.kind", "lua")
	v.SetDefault("engine.script_dir", "./engine")
	v.SetDefault("engine.model_name", "gemini-2.5-flash")
	v.SetDefault("engine.gemini_api_key", "")
	v.SetDefault("engine.prompt_template_path", "")
	v.SetDefault("scoring.worker_count", 2)
	v.SetDefault("scoring.queue_size", 64)
	v.SetDefault("ledger.enabled", false)
	v.SetDefault("ledger.rpc_url", "")
	v.SetDefault("ledger.contract_address", "")
	v.SetDefault("ledger.from_address", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
