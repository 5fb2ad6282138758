package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/locale"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/phrazzld/scry-cardgen/internal/redact"
)

// Stage is a state of a single pipeline run.
type Stage string

const (
	StageReceived      Stage = "received"
	StageNormalizing   Stage = "normalizing"
	StageOCRExtracting Stage = "ocr_extracting"
	StageSynthesizing  Stage = "synthesizing"
	StageGating        Stage = "gating"
	StageDone          Stage = "done"
	StageFailed        Stage = "failed"
)

// StageError reports the stage at which a run failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("generation failed during %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// PipelineConfig bounds pipeline input.
type PipelineConfig struct {
	// MaxTextLength limits text mode input in runes. Zero disables the limit.
	MaxTextLength int
}

// Pipeline wires the normalizer, OCR extractor, locale resolver, card
// synthesizer and result gate into one synchronous pass per request. It
// holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	extractor   TextExtractor
	synthesizer CardSynthesizer
	config      PipelineConfig
	logger      *slog.Logger
}

// NewPipeline creates a Pipeline. All collaborators are required.
func NewPipeline(
	extractor TextExtractor,
	synthesizer CardSynthesizer,
	config PipelineConfig,
	logger *slog.Logger,
) (*Pipeline, error) {
	if extractor == nil {
		return nil, fmt.Errorf("%w: text extractor cannot be nil", ErrInvalidConfig)
	}
	if synthesizer == nil {
		return nil, fmt.Errorf("%w: card synthesizer cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Pipeline{
		extractor:   extractor,
		synthesizer: synthesizer,
		config:      config,
		logger:      logger,
	}, nil
}

// Generate runs the full pipeline for req and returns a non-empty card set
// or an error. Errors are *StageError values wrapping one of ErrInvalidInput,
// ErrOCREmptyResult, ErrUpstreamUnavailable, ErrGenerationFailed or
// ErrNoCardsGenerated.
func (p *Pipeline) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	r := p.start(ctx)
	ctx = logger.WithLogger(ctx, r.log)

	r.enter(StageNormalizing)
	input, err := Normalize(req, p.config.MaxTextLength)
	if err != nil {
		return nil, r.fail(err)
	}
	r.log.DebugContext(ctx, "input normalized",
		"mode", input.Mode.String(),
		"text_length", len(input.Text),
		"image_bytes", len(input.Image),
		"mime_type", input.MIMEType)

	sourceText := input.Text
	if input.Mode == ModeImage {
		r.enter(StageOCRExtracting)
		sourceText, err = p.extract(ctx, input)
		if err != nil {
			return nil, r.fail(err)
		}
	}

	instruction := locale.Resolve(req.LanguagePreference)

	r.enter(StageSynthesizing)
	candidate, err := p.synthesizer.SynthesizeCards(ctx, SynthesisRequest{
		SourceText:        sourceText,
		LocaleInstruction: instruction,
		HelperPrompt:      req.HelperPrompt,
	})
	if err != nil {
		return nil, r.fail(ensureWrapped(err, ErrGenerationFailed))
	}

	r.enter(StageGating)
	result, err := Gate(candidate)
	if err != nil {
		return nil, r.fail(err)
	}

	r.enter(StageDone)
	r.log.InfoContext(ctx, "card generation completed",
		"mode", input.Mode.String(),
		"card_count", len(result.Cards),
		"locale_instruction", instruction != "",
		"duration_ms", time.Since(r.started).Milliseconds())

	return result, nil
}

// ExtractText runs only the OCR part of the pipeline: normalizing followed by
// ocr_extracting. It backs the standalone text extraction endpoint.
func (p *Pipeline) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	r := p.start(ctx)
	ctx = logger.WithLogger(ctx, r.log)

	r.enter(StageNormalizing)
	if len(image) == 0 {
		return "", r.fail(fmt.Errorf("%w: no image provided", ErrInvalidInput))
	}
	input, err := Normalize(domain.GenerationRequest{Image: image, ImageMIMEType: mimeType}, 0)
	if err != nil {
		return "", r.fail(err)
	}

	r.enter(StageOCRExtracting)
	text, err := p.extract(ctx, input)
	if err != nil {
		return "", r.fail(err)
	}

	r.enter(StageDone)
	r.log.InfoContext(ctx, "text extraction completed",
		"text_length", len(text),
		"duration_ms", time.Since(r.started).Milliseconds())

	return text, nil
}

func (p *Pipeline) extract(ctx context.Context, input Input) (string, error) {
	text, err := p.extractor.ExtractText(ctx, input.Image, input.MIMEType)
	if err != nil {
		if errors.Is(err, ErrOCREmptyResult) {
			return "", err
		}
		return "", ensureWrapped(err, ErrUpstreamUnavailable)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrOCREmptyResult
	}
	return text, nil
}

// run tracks one pass through the pipeline for logging.
type run struct {
	id      uuid.UUID
	stage   Stage
	started time.Time
	log     *slog.Logger
}

func (p *Pipeline) start(ctx context.Context) *run {
	id := uuid.New()
	r := &run{
		id:      id,
		stage:   StageReceived,
		started: time.Now(),
		log:     logger.FromContextOrDefault(ctx, p.logger).With("generation_id", id.String()),
	}
	r.log.DebugContext(ctx, "generation request received")
	return r
}

func (r *run) enter(stage Stage) {
	r.log.Debug("generation stage entered", "from", string(r.stage), "to", string(stage))
	r.stage = stage
}

// fail moves the run to the failed state and returns the error to hand back
// to the caller.
func (r *run) fail(err error) error {
	failed := r.stage
	r.stage = StageFailed

	level := slog.LevelWarn
	if errors.Is(err, ErrGenerationFailed) || errors.Is(err, ErrUpstreamUnavailable) {
		level = slog.LevelError
	}
	r.log.Log(context.Background(), level, "generation failed",
		"stage", string(failed),
		"error", redact.Error(err),
		"duration_ms", time.Since(r.started).Milliseconds())

	return &StageError{Stage: failed, Err: err}
}

// ensureWrapped returns err unchanged when it already wraps target, and
// err wrapped in target otherwise.
func ensureWrapped(err, target error) error {
	if errors.Is(err, target) {
		return err
	}
	return fmt.Errorf("%w: %w", target, err)
}
