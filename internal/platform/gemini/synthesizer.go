package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"google.golang.org/genai"
)

const synthesisTemperature float32 = 0.4

// Synthesizer implements generation.CardSynthesizer with a Gemini text model
// constrained to a JSON card schema.
type Synthesizer struct {
	logger  *slog.Logger
	models  modelsAPI
	model   string
	prompts *generation.Prompts
	retry   retryPolicy
}

var _ generation.CardSynthesizer = (*Synthesizer)(nil)

// NewSynthesizer creates a Synthesizer that sends prompts to cfg.TextModel.
// Transient failures are retried cfg.MaxRetries times.
func NewSynthesizer(
	models modelsAPI,
	prompts *generation.Prompts,
	cfg config.LLMConfig,
	logger *slog.Logger,
) (*Synthesizer, error) {
	if models == nil {
		return nil, fmt.Errorf("%w: models API cannot be nil", generation.ErrInvalidConfig)
	}
	if prompts == nil {
		return nil, fmt.Errorf("%w: prompts cannot be nil", generation.ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.TextModel == "" {
		return nil, fmt.Errorf("%w: text model cannot be empty", generation.ErrInvalidConfig)
	}

	return &Synthesizer{
		logger:  logger,
		models:  models,
		model:   cfg.TextModel,
		prompts: prompts,
		retry:   newRetryPolicy(cfg.MaxRetries, cfg.RetryDelaySeconds),
	}, nil
}

// SynthesizeCards asks the text model for cards. The result may hold zero
// cards; admission is the gate's job. Every error wraps
// generation.ErrGenerationFailed.
func (s *Synthesizer) SynthesizeCards(
	ctx context.Context,
	req generation.SynthesisRequest,
) (*domain.GenerationResult, error) {
	prompt, err := s.prompts.User(req)
	if err != nil {
		return nil, failed(err)
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(s.prompts.System(req.LocaleInstruction), genai.RoleUser),
		ResponseMIMEType:  responseMIMEType,
		ResponseSchema:    cardSetSchema,
		Temperature:       genai.Ptr(synthesisTemperature),
	}

	s.logger.DebugContext(ctx, "Requesting card synthesis",
		"model", s.model,
		"prompt_length", len(prompt),
		"locale_instruction", req.LocaleInstruction != "")

	resp, err := s.retry.generate(ctx, s.logger, s.models, s.model, genai.Text(prompt), genConfig)
	if err != nil {
		if isTransient(err) {
			return nil, fmt.Errorf("%w: %w: %w", generation.ErrGenerationFailed, generation.ErrTransientFailure, err)
		}
		return nil, failed(err)
	}
	if resp == nil {
		return nil, failed(fmt.Errorf("%w: nil response", generation.ErrInvalidResponse))
	}

	if reason := blockedReason(resp); reason != "" {
		s.logger.WarnContext(ctx, "Card synthesis blocked by safety filters", "reason", reason)
		return nil, failed(fmt.Errorf("%w: %s", generation.ErrContentBlocked, reason))
	}

	result, err := parseCardSet(ctx, s.logger, resp.Text())
	if err != nil {
		return nil, failed(err)
	}
	return result, nil
}

func failed(err error) error {
	if errors.Is(err, generation.ErrGenerationFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
}
