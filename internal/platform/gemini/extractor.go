package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"google.golang.org/genai"
)

// Extractor implements generation.TextExtractor with a Gemini vision model.
type Extractor struct {
	logger *slog.Logger
	models modelsAPI
	model  string
}

var _ generation.TextExtractor = (*Extractor)(nil)

// NewExtractor creates an Extractor that sends images to cfg.VisionModel.
func NewExtractor(models modelsAPI, cfg config.LLMConfig, logger *slog.Logger) (*Extractor, error) {
	if models == nil {
		return nil, fmt.Errorf("%w: models API cannot be nil", generation.ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.VisionModel == "" {
		return nil, fmt.Errorf("%w: vision model cannot be empty", generation.ErrInvalidConfig)
	}

	return &Extractor{logger: logger, models: models, model: cfg.VisionModel}, nil
}

// ExtractText makes exactly one call to the vision model with the image and
// generation.OCRInstruction, and returns the trimmed text of the reply.
func (e *Extractor) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: no image provided", generation.ErrInvalidInput)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(generation.OCRInstruction),
		}, genai.RoleUser),
	}

	e.logger.DebugContext(ctx, "Requesting text extraction",
		"model", e.model,
		"mime_type", mimeType,
		"image_bytes", len(image))

	resp, err := e.models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", generation.ErrUpstreamUnavailable, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrUpstreamUnavailable)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", generation.ErrOCREmptyResult
	}

	e.logger.DebugContext(ctx, "Text extraction succeeded", "text_length", len(text))
	return text, nil
}
