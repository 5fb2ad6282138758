package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"google.golang.org/genai"
)

// validateConfig checks the settings every Gemini adapter depends on.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key", "error", "GeminiAPIKey is empty")
		return fmt.Errorf("%w: GeminiAPIKey cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.TextModel == "" {
		return fmt.Errorf("%w: TextModel cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.VisionModel == "" {
		return fmt.Errorf("%w: VisionModel cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.MaxRetries < 0 {
		logger.WarnContext(ctx, "Invalid MaxRetries value",
			"value", cfg.MaxRetries,
			"action", "using a single attempt")
	}

	if cfg.RetryDelaySeconds < 1 {
		logger.WarnContext(ctx, "Invalid RetryDelaySeconds value",
			"value", cfg.RetryDelaySeconds,
			"action", "using default value")
	}

	return nil
}

// NewClient validates cfg and creates a Gemini API client. The client's
// Models service is what NewExtractor and NewSynthesizer expect.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*genai.Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Gemini client initialized",
		"text_model", cfg.TextModel,
		"vision_model", cfg.VisionModel)

	return client, nil
}
