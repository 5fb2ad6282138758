package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-cardgen/internal/api"
	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"github.com/phrazzld/scry-cardgen/internal/platform/gemini"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	pipeline *generation.Pipeline

	generationHandler *api.GenerationHandler
	importHandler     *api.ImportHandler
}

// newApplication creates the Gemini client, the model adapters, the
// generation pipeline and the HTTP handlers.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	client, err := gemini.NewClient(ctx, logger.With("component", "gemini"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	prompts, err := generation.NewPrompts(cfg.LLM.SystemPromptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	extractor, err := gemini.NewExtractor(client.Models, cfg.LLM, logger.With("component", "ocr_extractor"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize text extractor: %w", err)
	}

	synthesizer, err := gemini.NewSynthesizer(client.Models, prompts, cfg.LLM,
		logger.With("component", "card_synthesizer"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize card synthesizer: %w", err)
	}

	return assembleApplication(cfg, logger, extractor, synthesizer)
}

// assembleApplication builds the model-independent part of the application.
func assembleApplication(
	cfg *config.Config,
	logger *slog.Logger,
	extractor generation.TextExtractor,
	synthesizer generation.CardSynthesizer,
) (*application, error) {
	pipeline, err := generation.NewPipeline(extractor, synthesizer, generation.PipelineConfig{
		MaxTextLength: cfg.Generation.MaxTextLength,
	}, logger.With("component", "generation_pipeline"))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation pipeline: %w", err)
	}

	app := &application{
		config:            cfg,
		logger:            logger,
		pipeline:          pipeline,
		generationHandler: api.NewGenerationHandler(pipeline, cfg.Generation.MaxUploadBytes, logger),
		importHandler:     api.NewImportHandler(cfg.Generation.MaxUploadBytes, logger),
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until ctx is canceled or the server
// fails.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
