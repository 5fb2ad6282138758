package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	TextModel    string `mapstructure:"text_model"     validate:"required"`
	VisionModel  string `mapstructure:"vision_model"   validate:"required"`

	// SystemPromptPath overrides the embedded synthesis system prompt when set.
	SystemPromptPath string `mapstructure:"system_prompt_path"`

	// MaxRetries is the number of extra attempts made for transient upstream
	// failures. Zero means a single attempt.
	MaxRetries        int `mapstructure:"max_retries"         validate:"gte=0,lte=10"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=1"`
}

// GenerationConfig bounds the input accepted by the card generation pipeline.
type GenerationConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"gt=0"`
	MaxTextLength  int   `mapstructure:"max_text_length"  validate:"gt=0"`
}
