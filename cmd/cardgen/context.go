package main

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/phrazzld/scry-cardgen/internal/api"
	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"github.com/phrazzld/scry-cardgen/internal/platform/gemini"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
)

// cardGenerator is the part of *generation.Pipeline the commands use.
type cardGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

type commandContext struct {
	debug bool

	// build constructs the generator on first use. Tests replace it.
	build func(ctx context.Context, stderr io.Writer, debug bool) (cardGenerator, error)

	once      sync.Once
	generator cardGenerator
	err       error
}

func newCommandContext() *commandContext {
	return &commandContext{build: buildPipeline}
}

func (c *commandContext) ensureGenerator(ctx context.Context, stderr io.Writer) (cardGenerator, error) {
	c.once.Do(func() {
		c.generator, c.err = c.build(ctx, stderr, c.debug)
	})
	return c.generator, c.err
}

// buildPipeline loads configuration and wires the Gemini-backed pipeline.
func buildPipeline(ctx context.Context, stderr io.Writer, debug bool) (cardGenerator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	serverCfg := cfg.Server
	if debug {
		serverCfg.LogLevel = "debug"
	} else {
		serverCfg.LogLevel = "warn"
	}
	l, err := logger.SetupWithWriter(serverCfg, stderr)
	if err != nil {
		return nil, err
	}

	client, err := gemini.NewClient(ctx, l, cfg.LLM)
	if err != nil {
		return nil, err
	}
	prompts, err := generation.NewPrompts(cfg.LLM.SystemPromptPath)
	if err != nil {
		return nil, err
	}
	extractor, err := gemini.NewExtractor(client.Models, cfg.LLM, l)
	if err != nil {
		return nil, err
	}
	synthesizer, err := gemini.NewSynthesizer(client.Models, prompts, cfg.LLM, l)
	if err != nil {
		return nil, err
	}

	pipeline, err := generation.NewPipeline(extractor, synthesizer, generation.PipelineConfig{
		MaxTextLength: cfg.Generation.MaxTextLength,
	}, l)
	if err != nil {
		return nil, err
	}
	return pipeline, nil
}

// userError turns a pipeline failure into the message shown to the user.
func userError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	return errors.New(api.GetSafeErrorMessage(err))
}
