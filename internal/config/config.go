package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Engine  EngineConfig  `mapstructure:"engine"  validate:"required"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// EngineConfig selects and configures the scoring engine.
//
// The lua engine loads match.lua from ScriptDir; the directory must exist
// when the engine is constructed. The gemini engine needs an API key, a
// model name, and a prompt template file.
type EngineConfig struct {
	Kind               string `mapstructure:"kind"                 validate:"required,oneof=lua gemini"`
	ScriptDir          string `mapstructure:"script_dir"           validate:"required_if=Kind lua"`
	GeminiAPIKey       string `mapstructure:"gemini_api_key"       validate:"required_if=Kind gemini"`
	ModelName          string `mapstructure:"model_name"`
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"required_if=Kind gemini"`
}

// ScoringConfig sizes the dispatcher that isolates blocking engine calls.
type ScoringConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"omitempty,gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"omitempty,gt=0"`
}

// LedgerConfig contains the distributed ledger integration settings.
// When Enabled is false the ledger recording endpoint is not wired.
type LedgerConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	RPCURL          string `mapstructure:"rpc_url"          validate:"required_if=Enabled true,omitempty,url"`
	ContractAddress string `mapstructure:"contract_address" validate:"required_if=Enabled true"`
	FromAddress     string `mapstructure:"from_address"     validate:"required_if=Enabled true"`
}
